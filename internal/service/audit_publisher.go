// Package service provides functions to publish admin audit events to
// RabbitMQ. Errors are logged and returned so callers can ignore failures
// without interrupting the request that triggered them.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	q "github.com/iliyamo/matrimony-admin/internal/queue"
)

// dialTimeout bounds the broker connect so a dead broker cannot stall the
// admin request that triggered the event.
const dialTimeout = 3 * time.Second

// AuditPublisher publishes q.AdminActionEvent values to a durable queue.
// Each Publish dials its own connection; audit traffic is a handful of
// messages per admin action.
type AuditPublisher struct {
	URL   string
	Queue string
	Log   *zap.Logger
}

// NewAuditPublisher returns a publisher for url and queue.
func NewAuditPublisher(url, queue string, log *zap.Logger) *AuditPublisher {
	if queue == "" {
		queue = q.DefaultQueueName
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AuditPublisher{URL: url, Queue: queue, Log: log}
}

// Publish sends event as a persistent JSON message via the default
// exchange, routed by queue name.
func (p *AuditPublisher) Publish(ctx context.Context, event q.AdminActionEvent) error {
	conn, err := amqp.DialConfig(p.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(dialTimeout),
	})
	if err != nil {
		p.Log.Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Log.Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		p.Queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		p.Log.Warn("rabbitmq: queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Type:         event.Action,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		p.Queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		p.Log.Warn("rabbitmq: publish failed", zap.Error(err))
		return err
	}
	return nil
}
