package events

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}

func TestEmitPublishesEvent(t *testing.T) {
	pub := new(MockPublisher)
	var sent []byte
	pub.On("Publish", "catalog.events", CategoryCreated, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(2).([]byte) }).
		Return(nil).Once()

	NewEmitter(pub, "catalog.events", zerolog.Nop()).Emit(CategoryCreated, map[string]string{"name": "Headphones"})
	pub.AssertExpectations(t)

	ev, err := Decode(sent)
	require.NoError(t, err)
	assert.Equal(t, CategoryCreated, ev.Type)
	assert.False(t, ev.OccurredAt.IsZero())
	var data map[string]string
	require.NoError(t, json.Unmarshal(ev.Data, &data))
	assert.Equal(t, "Headphones", data["name"])
}

func TestEmitLogsPublishFailure(t *testing.T) {
	var buf bytes.Buffer
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, ProductDeleted, mock.Anything).Return(errors.New("channel closed")).Once()

	NewEmitter(pub, "x", zerolog.New(&buf)).Emit(ProductDeleted, struct{}{})
	pub.AssertExpectations(t)
	assert.Contains(t, buf.String(), "failed to publish event")
	assert.Contains(t, buf.String(), "channel closed")
}

func TestNilEmitterIsSafe(t *testing.T) {
	var e *Emitter
	assert.NotPanics(t, func() { e.Emit(CategoryDeleted, nil) })
	assert.NotPanics(t, func() { NewEmitter(nil, "x", zerolog.Nop()).Emit(CategoryDeleted, nil) })
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.Error(t, err)
	_, err = Decode([]byte(`{"data":{}}`))
	assert.Error(t, err)
}
