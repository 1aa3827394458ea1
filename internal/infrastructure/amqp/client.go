package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"expensync/internal/domain/event"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// Client publishes and consumes transaction events over a durable direct
// exchange bound to a single queue.
type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string

	mu sync.Mutex
}

func NewClient(url, exchangeName, queueName string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// Routing key is the queue name.
	if err := c.channel.QueueBind(c.queueName, c.queueName, c.exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// Publish implements event.Publisher.
func (c *Client) Publish(ctx context.Context, e event.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	c.mu.Lock()
	err = c.channel.PublishWithContext(ctx,
		c.exchangeName,
		c.queueName,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    e.ID,
			Type:         string(e.Type),
			Timestamp:    e.OccurredAt,
			Body:         body,
		},
	)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	zap.L().Debug("event published",
		zap.String("type", string(e.Type)),
		zap.String("event_id", e.ID),
		zap.String("exchange", c.exchangeName),
	)
	return nil
}

// Handler processes one event. Returning an error requeues the message.
type Handler func(ctx context.Context, e event.Event) error

// Consume delivers events to handler until ctx is cancelled or the broker
// closes the channel.
func (c *Client) Consume(ctx context.Context, handler Handler) error {
	msgs, err := c.channel.Consume(
		c.queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	zap.L().Info("consuming events", zap.String("queue", c.queueName))

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("stopping event consumption", zap.Error(ctx.Err()))
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			process(ctx, d.Body, d.Redelivered, d, handler)
		}
	}
}

type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type outcome int

const (
	acked outcome = iota
	rejected
	requeued
)

// process drops malformed payloads and acks handled ones. A handler failure
// is requeued once; a message that fails again after redelivery is dropped.
func process(ctx context.Context, body []byte, redelivered bool, ack acknowledger, handler Handler) outcome {
	var e event.Event
	if err := json.Unmarshal(body, &e); err != nil {
		zap.L().Error("failed to unmarshal event", zap.Error(err))
		if err := ack.Nack(false, false); err != nil {
			zap.L().Warn("nack failed", zap.Error(err))
		}
		return rejected
	}

	if err := handler(ctx, e); err != nil {
		zap.L().Error("failed to handle event",
			zap.String("type", string(e.Type)),
			zap.String("event_id", e.ID),
			zap.Bool("redelivered", redelivered),
			zap.Error(err),
		)
		if err := ack.Nack(false, !redelivered); err != nil {
			zap.L().Warn("nack failed", zap.Error(err))
		}
		if redelivered {
			return rejected
		}
		return requeued
	}

	if err := ack.Ack(false); err != nil {
		zap.L().Warn("ack failed", zap.Error(err))
	}
	return acked
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
