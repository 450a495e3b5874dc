// Package events publishes catalog change notifications.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Routing keys of catalog events.
const (
	CategoryCreated      = "category.created"
	CategoryUpdated      = "category.updated"
	CategoryDeleted      = "category.deleted"
	GroupCategoryCreated = "group_category.created"
	GroupCategoryUpdated = "group_category.updated"
	GroupCategoryDeleted = "group_category.deleted"
	ProductCreated       = "product.created"
	ProductUpdated       = "product.updated"
	ProductDeleted       = "product.deleted"
)

// Event is the message body of every catalog event.
type Event struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Data       json.RawMessage `json:"data"`
}

// Publisher sends a message to an exchange.
type Publisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// Emitter turns domain changes into published events. A nil Emitter or one
// without a Publisher drops events silently.
type Emitter struct {
	pub      Publisher
	exchange string
	log      zerolog.Logger
}

// NewEmitter creates a new Emitter publishing to exchange.
func NewEmitter(pub Publisher, exchange string, log zerolog.Logger) *Emitter {
	return &Emitter{pub: pub, exchange: exchange, log: log}
}

// Emit publishes data under routingKey. Failures are logged and not returned:
// the change they describe is already committed.
func (e *Emitter) Emit(routingKey string, data any) {
	if e == nil || e.pub == nil {
		return
	}
	body, err := Encode(routingKey, data, time.Now().UTC())
	if err != nil {
		e.log.Error().Err(err).Str("event", routingKey).Msg("failed to encode event")
		return
	}
	if err := e.pub.Publish(e.exchange, routingKey, body); err != nil {
		e.log.Warn().Err(err).Str("event", routingKey).Msg("failed to publish event")
		return
	}
	e.log.Debug().Str("event", routingKey).Msg("event published")
}

// Encode builds the JSON body of an event.
func Encode(routingKey string, data any, at time.Time) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", routingKey, err)
	}
	return json.Marshal(Event{Type: routingKey, OccurredAt: at, Data: raw})
}

// Decode parses an event body.
func Decode(body []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return Event{}, fmt.Errorf("failed to decode event: %w", err)
	}
	if ev.Type == "" {
		return Event{}, fmt.Errorf("failed to decode event: missing type")
	}
	return ev, nil
}
