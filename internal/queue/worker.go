package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"greentasty-reservation-services/internal/events"
	"greentasty-reservation-services/internal/reports"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, routingKey string, body []byte) error

// ConsumeWithRetry drains the queue, requeueing failed deliveries with an
// incremented retry header until maxRetries is reached.
func (c *Client) ConsumeWithRetry(queue string, handler HandlerFunc, maxRetries int, retryDelay time.Duration) error {
	msgs, err := c.ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for msg := range msgs {
		ctx := context.Background()
		err := handler(ctx, msg.RoutingKey, msg.Body)
		if err == nil {
			_ = msg.Ack(false)
			continue
		}

		retryCount := getRetryCount(msg.Headers)
		if retryCount >= maxRetries {
			_ = msg.Nack(false, false)
			continue
		}

		retryCount++
		headers := msg.Headers
		if headers == nil {
			headers = amqp.Table{}
		}
		headers["x-retry-count"] = retryCount

		time.Sleep(retryDelay)
		_ = c.ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
			ContentType: msg.ContentType,
			Body:        msg.Body,
			Headers:     headers,
			Timestamp:   time.Now(),
		})
		_ = msg.Ack(false)
	}

	return errors.New("consumer closed")
}

func getRetryCount(headers amqp.Table) int {
	if headers == nil {
		return 0
	}
	if v, ok := headers["x-retry-count"]; ok {
		switch t := v.(type) {
		case int32:
			return int(t)
		case int64:
			return int(t)
		case int:
			return t
		}
	}
	return 0
}

// ReportsHandler routes reporting events into the statistics aggregator.
func ReportsHandler(aggregator *reports.Aggregator, logger *zap.Logger) HandlerFunc {
	return func(ctx context.Context, routingKey string, body []byte) error {
		switch routingKey {
		case events.RouteReservationCompleted:
			var ev events.ReservationCompleted
			if err := json.Unmarshal(body, &ev); err != nil {
				logger.Error("bad completion payload", zap.Error(err))
				return nil
			}
			return aggregator.ApplyCompletion(ctx, ev)
		case events.RouteFeedbackPosted:
			var ev events.FeedbackPosted
			if err := json.Unmarshal(body, &ev); err != nil {
				logger.Error("bad feedback payload", zap.Error(err))
				return nil
			}
			return aggregator.ApplyFeedbackPosted(ctx, ev)
		case events.RouteFeedbackUpdated:
			var ev events.FeedbackUpdated
			if err := json.Unmarshal(body, &ev); err != nil {
				logger.Error("bad feedback update payload", zap.Error(err))
				return nil
			}
			return aggregator.ApplyFeedbackUpdate(ctx, ev)
		default:
			logger.Warn("unhandled routing key", zap.String("routingKey", routingKey))
			return nil
		}
	}
}
