package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher sends click events to the broker. It dials per publish so
// a dropped connection never leaves it wedged; the redirect path calls
// it from a goroutine and ignores the returned error anyway.
type Publisher struct {
	url string
	log *zap.Logger
}

// NewPublisher returns a Publisher, or nil when no broker URL is
// configured — callers treat a nil Publisher as "publish unavailable".
func NewPublisher(url string, log *zap.Logger) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{url: url, log: log}
}

// PublishClick sends one event to the clicks.recorded queue. Messages
// are persistent and the queue declare is idempotent. Every error is
// logged and returned; none panics.
func (p *Publisher) PublishClick(ctx context.Context, event ClickRecordedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("amqp dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("amqp channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(ClickQueueName, true, false, false, false, nil); err != nil {
		p.log.Warn("amqp queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", ClickQueueName, false, false, pub); err != nil {
		p.log.Warn("amqp publish failed", zap.Error(err))
		return err
	}
	return nil
}
