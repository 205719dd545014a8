package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/rdrx/rdrx/internal/model"
)

// ClickSink is where consumed events land; satisfied by the gateway's
// ClickRepo.
type ClickSink interface {
	Insert(ctx context.Context, e model.ClickEvent) error
}

// StartClickConsumer connects to the broker, declares the durable
// clicks.recorded queue and consumes it, persisting each event via the
// sink. It runs a reconnect loop with capped backoff and never
// returns; run it in its own goroutine. Malformed messages are
// rejected without requeue so one bad payload cannot jam the queue.
func StartClickConsumer(url string, sink ClickSink, log *zap.Logger) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn("click-consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, sink, log); err != nil {
			log.Warn("click-consumer: consume loop ended", zap.Error(err))
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, sink ClickSink, log *zap.Logger) error {
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warn("click-consumer: set QoS failed", zap.Error(err))
	}
	if _, err := ch.QueueDeclare(ClickQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(ClickQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body, sink); err != nil {
			log.Warn("click-consumer: handle message failed", zap.Error(err))
			_ = d.Reject(false)
			continue
		}
		_ = d.Ack(false)
	}
	return fmt.Errorf("delivery channel closed")
}

func handleMessage(body []byte, sink ClickSink) error {
	var ev ClickRecordedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	occurred, err := time.Parse(time.RFC3339, ev.OccurredAt)
	if err != nil {
		occurred = time.Now().UTC()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return sink.Insert(ctx, model.ClickEvent{
		Shortcode:  ev.Shortcode,
		TargetURL:  ev.TargetURL,
		Country:    ev.Country,
		OccurredAt: occurred,
	})
}
