package kafka_middleware

import (
	"context"
	"time"

	"deskhive/pkg/kafka"
	"deskhive/pkg/logger"
)

// ProducerLogging logs every publish with its outcome and duration.
func ProducerLogging(log *logger.Logger) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)
		if err != nil {
			log.Error("Failed to publish message",
				"key", msg.Key,
				"event_type", msg.Headers[kafka.HeaderEventType],
				"duration_ms", time.Since(start).Milliseconds(),
				"error", err,
			)
			return err
		}
		log.Debug("Message published",
			"key", msg.Key,
			"event_type", msg.Headers[kafka.HeaderEventType],
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}
}

// ConsumerLogging logs every handled message with its outcome and duration.
func ConsumerLogging(log *logger.Logger) kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)
		if err != nil {
			log.Error("Failed to handle message",
				"topic", msg.Topic,
				"key", msg.Key,
				"offset", msg.Offset,
				"duration_ms", time.Since(start).Milliseconds(),
				"error", err,
			)
			return err
		}
		log.Debug("Message handled",
			"topic", msg.Topic,
			"key", msg.Key,
			"offset", msg.Offset,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}
}
