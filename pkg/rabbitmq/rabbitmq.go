// Package rabbitmq wraps an AMQP connection used to publish and consume catalog events.
package rabbitmq

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	amqp "github.com/streadway/amqp"
)

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex // guards channel for concurrent publishers
	log     zerolog.Logger
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL      string
	Exchange string
	Logger   zerolog.Logger
}

// NewClient connects to RabbitMQ, opens a channel and declares the durable
// topic exchange events are published to.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // kind
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	cfg.Logger.Info().Str("exchange", cfg.Exchange).Msg("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
		log:     cfg.Logger,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
		c.channel = nil
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
		c.conn = nil
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish sends a persistent JSON message to exchange under routingKey.
func (c *Client) Publish(exchange, routingKey string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}
	err := c.channel.Publish(
		exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}
	return nil
}

// ConsumeEvents binds queue to exchange for every binding key and hands each
// delivery to handler. A nil error acks the message; otherwise it is nacked
// without requeue. The returned channel is closed when the delivery stream ends.
func (c *Client) ConsumeEvents(exchange, queue string, bindingKeys []string, handler func(msg amqp.Delivery) error) (<-chan struct{}, error) {
	c.mu.Lock()
	ch := c.channel
	c.mu.Unlock()
	if ch == nil {
		return nil, fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}
	for _, key := range bindingKeys {
		if err := ch.QueueBind(q.Name, key, exchange, false, nil); err != nil {
			return nil, fmt.Errorf("failed to bind %s to %s: %w", key, q.Name, err)
		}
	}

	msgs, err := ch.Consume(
		q.Name,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register consumer: %w", err)
	}

	c.log.Info().Str("queue", q.Name).Strs("bindings", bindingKeys).Msg("waiting for catalog events")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			if err := handler(msg); err != nil {
				c.log.Error().Err(err).Uint64("tag", msg.DeliveryTag).Msg("failed to process message")
				if nackErr := msg.Nack(false, false); nackErr != nil {
					c.log.Error().Err(nackErr).Uint64("tag", msg.DeliveryTag).Msg("failed to nack message")
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				c.log.Error().Err(ackErr).Uint64("tag", msg.DeliveryTag).Msg("failed to ack message")
			}
		}
	}()
	return done, nil
}
