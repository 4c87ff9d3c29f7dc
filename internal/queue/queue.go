// Package queue wraps the RabbitMQ connection: topology setup, JSON
// publishing and the retrying consumer behind the reporting pipeline.
package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// EventsExchange is the topic exchange all reservation and feedback
	// events are published to.
	EventsExchange = "greentasty.events"
	// ReportsQueue feeds the statistics aggregator.
	ReportsQueue = "greentasty.reports"
)

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func New(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &Client{conn: conn, ch: ch}, nil
}

func (c *Client) Close() error {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// SetupTopology declares the events exchange, the reports queue and the
// bindings for the given routing keys. Declarations are idempotent.
func (c *Client) SetupTopology(routingKeys ...string) error {
	if err := c.ch.ExchangeDeclare(EventsExchange, "topic", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := c.ch.QueueDeclare(ReportsQueue, true, false, false, false, nil); err != nil {
		return err
	}
	for _, key := range routingKeys {
		if err := c.ch.QueueBind(ReportsQueue, key, EventsExchange, false, nil); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) PublishJSON(ctx context.Context, exchange, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.ch.PublishWithContext(ctx, exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
		Timestamp:   time.Now(),
	})
}

// Publish sends a payload to the events exchange, satisfying
// events.Publisher.
func (c *Client) Publish(ctx context.Context, routingKey string, payload any) error {
	return c.PublishJSON(ctx, EventsExchange, routingKey, payload)
}
