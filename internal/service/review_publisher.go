// Package service holds side effects that run after a request has been
// served, such as publishing domain events to RabbitMQ.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/restaurant-reviews/internal/queue"
)

// ReviewPublisher publishes ReviewCreatedEvent messages to the review.created
// queue.  A connection is opened per publish, which keeps the type free of
// reconnect state at the cost of a dial per review.
type ReviewPublisher struct {
	URL string
}

// NewReviewPublisher constructs a publisher for the broker at url.
func NewReviewPublisher(url string) *ReviewPublisher {
	return &ReviewPublisher{URL: url}
}

// PublishReviewCreated sends ev as a persistent JSON message.  Errors are
// logged and returned so the caller can choose to ignore them.
func (p *ReviewPublisher) PublishReviewCreated(ctx context.Context, ev q.ReviewCreatedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	dialTimeout := 30 * time.Second
	if dl, ok := ctx.Deadline(); ok {
		dialTimeout = time.Until(dl)
	}
	conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(dialTimeout)})
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(q.ReviewQueueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", q.ReviewQueueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
