package messaging

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/matchmyvibe/roommate-service/internal/core/ports"
	"github.com/matchmyvibe/roommate-service/internal/logger"
)

func (rmq *RabbitMQBroker) PublishMatchConfirmed(ctx context.Context, evt ports.MatchConfirmedEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	if deadline, ok := ctx.Deadline(); ok {
		if time.Until(deadline) <= 0 {
			return ctx.Err()
		}
	}

	_, err = rmq.cb.Execute(func() (interface{}, error) {
		err := rmq.ch.PublishWithContext(
			ctx,
			"",            // exchange (default)
			rmq.queueName, // routing key == queue name
			false,         // mandatory
			false,         // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Type:         ports.EventMatchConfirmed,
				MessageId:    evt.PairKey,
				Timestamp:    evt.ConfirmedAt,
				Body:         body,
			},
		)
		return nil, err
	})
	if err != nil {
		return err
	}

	rmq.logger.Debug("match event published",
		zap.String(logger.FieldPair, evt.PairKey),
		zap.String("queue", rmq.queueName),
	)
	return nil
}
