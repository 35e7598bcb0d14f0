// Package rmqgath streams grading progress to a RabbitMQ queue.
package rmqgath

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/programme-lv/autograder/internal/gatherer/wire"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// Publisher is the subset of *amqp.Channel the gatherer uses.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Gatherer struct {
	*wire.Stream
	ch    Publisher
	queue string

	conn *amqp.Connection
}

func New(ch Publisher, runUuid string, queue string) *Gatherer {
	g := &Gatherer{ch: ch, queue: queue}
	g.Stream = wire.NewStream(runUuid, g.send)
	return g
}

// Connect dials url, declares a durable queue and returns a gatherer
// publishing to it through the default exchange.
func Connect(url string, runUuid string, queue string) (*Gatherer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}
	g := New(ch, runUuid, queue)
	g.conn = conn
	return g, nil
}

func (g *Gatherer) send(msg any) {
	body, err := wire.EncodeSnappy(msg)
	if err != nil {
		slog.Error("failed to encode progress message", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	err = g.ch.PublishWithContext(ctx, "", g.queue, false, false, amqp.Publishing{
		ContentType:     "application/json",
		ContentEncoding: wire.EncodingSnappy,
		DeliveryMode:    amqp.Persistent,
		CorrelationId:   g.RunUuid(),
		Timestamp:       time.Now(),
		Body:            body,
	})
	if err != nil {
		slog.Error("failed to publish message to RabbitMQ", "queue", g.queue, "error", err)
	}
}

// Close closes the connection opened by Connect. Closing the connection
// also closes its channel.
func (g *Gatherer) Close() error {
	if g.conn == nil {
		return nil
	}
	return g.conn.Close()
}
