package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"tableside/internal/logger"
	syncpkg "tableside/internal/sync"
)

// Notifier publishes and consumes collection-change events over the fanout
// exchange. It satisfies the sync.Notifier interface.
type Notifier struct {
	conn      *Connection
	logger    *logger.Logger
	queueName string
}

// NewNotifier creates a notifier for one session. queueName must be unique per
// session; it names the exclusive queue the session consumes from.
func NewNotifier(conn *Connection, log *logger.Logger, queueName string) *Notifier {
	return &Notifier{
		conn:      conn,
		logger:    log,
		queueName: queueName,
	}
}

// Publish announces a collection change to every other session.
func (n *Notifier) Publish(ctx context.Context, ev syncpkg.Event) error {
	if n.conn.IsClosed() {
		if err := n.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	publishing := amqp091.Publishing{
		ContentType: "application/json",
		Body:        body,
		Timestamp:   time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = n.conn.Channel().PublishWithContext(
		ctx,
		ExchangeName, // exchange
		"",           // routing key (ignored for fanout)
		false,        // mandatory
		false,        // immediate
		publishing,
	)
	if err != nil {
		n.logger.Error("event_publish_failed",
			fmt.Sprintf("Failed to publish change event for key %s", ev.Key),
			err, map[string]any{"key": ev.Key})
		return fmt.Errorf("failed to publish event: %w", err)
	}

	n.logger.Debug("event_published", "Published collection change event", map[string]any{
		"key":          ev.Key,
		"message_size": len(body),
	})
	return nil
}

// Subscribe consumes change events until ctx is done. The session's queue is
// exclusive and auto-deleted, created fresh on every subscribe: a session that was
// offline has no use for stale whole-value announcements, it reloads instead.
func (n *Notifier) Subscribe(ctx context.Context, handler func(syncpkg.Event)) error {
	if n.conn.IsClosed() {
		if err := n.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	queue, err := n.conn.Channel().QueueDeclare(
		n.queueName, // name
		false,       // durable
		true,        // delete when unused
		true,        // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare session queue: %w", err)
	}

	err = n.conn.Channel().QueueBind(
		queue.Name,   // queue name
		"",           // routing key (ignored for fanout)
		ExchangeName, // exchange
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to bind session queue: %w", err)
	}

	msgs, err := n.conn.Channel().Consume(
		queue.Name, // queue
		"",         // consumer
		false,      // auto-ack (we ack manually)
		true,       // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	n.logger.Info("subscriber_started", "Consuming collection change events", map[string]any{
		"queue": queue.Name,
	})

	for {
		select {
		case <-ctx.Done():
			n.logger.Info("subscriber_stopped", "Subscriber stopped by context", nil)
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				n.logger.Error("subscriber_channel_closed", "Message channel closed, reconnecting", nil, nil)
				if err := n.conn.Reconnect(); err != nil {
					return fmt.Errorf("failed to reconnect after channel closed: %w", err)
				}
				return n.Subscribe(ctx, handler)
			}
			n.dispatch(d, handler)
		}
	}
}

// dispatch parses one delivery and hands it to the handler. Malformed events are
// acked and dropped; requeueing them could never succeed.
func (n *Notifier) dispatch(delivery amqp091.Delivery, handler func(syncpkg.Event)) {
	var ev syncpkg.Event
	if err := json.Unmarshal(delivery.Body, &ev); err != nil {
		n.logger.Error("event_parse_failed", "Failed to parse change event, dropping", err, map[string]any{
			"message_size": len(delivery.Body),
		})
		if ackErr := delivery.Ack(false); ackErr != nil {
			n.logger.Error("event_ack_failed", "Failed to ack malformed event", ackErr, nil)
		}
		return
	}

	handler(ev)

	if err := delivery.Ack(false); err != nil {
		n.logger.Error("event_ack_failed", "Failed to ack event", err, nil)
	}
}
