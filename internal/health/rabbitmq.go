package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/restaurant-reviews/internal/config"
)

// RabbitMQProbe dials the broker and opens a channel.
type RabbitMQProbe struct {
	Config config.RabbitMQProbeConfig
}

func (RabbitMQProbe) Name() string { return ResourceRabbitMQ }

func (p RabbitMQProbe) Check(ctx context.Context) error {
	dialTimeout := 30 * time.Second
	if dl, ok := ctx.Deadline(); ok {
		dialTimeout = time.Until(dl)
	}
	conn, err := amqp.DialConfig(p.Config.URL(), amqp.Config{
		Dial: amqp.DefaultDial(dialTimeout),
	})
	if err != nil {
		var amqpErr *amqp.Error
		if errors.As(err, &amqpErr) && amqpErr.Code == amqp.AccessRefused {
			return fmt.Errorf("%w: %v", ErrAuth, err)
		}
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	return ch.Close()
}
