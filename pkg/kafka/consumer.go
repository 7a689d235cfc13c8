package kafka

import (
	"context"
	"errors"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageHandler processes one message. A returned error is logged; the
// consumer moves on to the next message.
type MessageHandler func(ctx context.Context, msg kafkago.Message) error

// Consumer reads a single topic as part of a consumer group.
type Consumer struct {
	reader *kafkago.Reader
	topic  string
	logger *zap.Logger
}

// NewConsumer creates a consumer that starts from the earliest uncommitted offset.
func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	return newConsumer(brokers, groupID, topic, kafkago.FirstOffset, logger)
}

// NewLatestConsumer creates a consumer that ignores messages produced before
// its group first joined. Used for reply topics where old replies are useless.
func NewLatestConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	return newConsumer(brokers, groupID, topic, kafkago.LastOffset, logger)
}

func newConsumer(brokers []string, groupID, topic string, startOffset int64, logger *zap.Logger) *Consumer {
	return &Consumer{
		reader: kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:        brokers,
			GroupID:        groupID,
			Topic:          topic,
			MinBytes:       1,
			MaxBytes:       10e6,
			MaxWait:        250 * time.Millisecond,
			CommitInterval: time.Second,
			StartOffset:    startOffset,
		}),
		topic:  topic,
		logger: logger,
	}
}

// Consume blocks reading messages and passing them to handler until ctx is
// cancelled or the reader is closed.
func (c *Consumer) Consume(ctx context.Context, handler MessageHandler) error {
	c.logger.Info("consumer started", zap.String("topic", c.topic))

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, context.Canceled) {
				return err
			}
			c.logger.Error("failed to read message",
				zap.String("topic", c.topic),
				zap.Error(err),
			)
			return err
		}

		if err := handler(ctx, msg); err != nil {
			c.logger.Warn("message handler failed",
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}
	}
}

// Close closes the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
