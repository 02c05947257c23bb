// Package amqp fans ledger events out to a RabbitMQ topic exchange.
package amqp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/leandrochavesf/gofinances/ledger-backend/internal/websocket"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 5 * time.Second

// channel is the subset of *amqp091.Channel the publisher needs
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher implements websocket.EventPublisher on a RabbitMQ exchange.
// Each event is routed by its type, e.g. "transaction.created".
type Publisher struct {
	conn     *amqp091.Connection
	channel  channel
	exchange string
	mu       sync.Mutex
}

// Ensure Publisher implements EventPublisher
var _ websocket.EventPublisher = (*Publisher)(nil)

// NewPublisher dials the broker and declares a durable topic exchange
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	p := newPublisher(ch, exchange)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange string) *Publisher {
	return &Publisher{
		channel:  ch,
		exchange: exchange,
	}
}

// Publish sends the event as a persistent JSON message. Failures are logged only.
func (p *Publisher) Publish(event websocket.Event) {
	if err := p.publish(context.Background(), event); err != nil {
		log.Warn().
			Err(err).
			Str("event_type", event.Type).
			Str("exchange", p.exchange).
			Msg("Failed to publish event to broker")
	}
}

func (p *Publisher) publish(ctx context.Context, event websocket.Event) error {
	body, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	// amqp091 channels must not be shared across goroutines while publishing
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange, // exchange
		event.Type, // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    event.Timestamp,
			Type:         event.Type,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	log.Debug().
		Str("event_type", event.Type).
		Str("exchange", p.exchange).
		Msg("Published event to broker")

	return nil
}

// Close closes the channel and the connection
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
