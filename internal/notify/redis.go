// Package notify carries board updates between processes over redis pub/sub.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const publishTimeout = 2 * time.Second

var ErrSubscriptionClosed = errors.New("redis subscription closed")

type sink interface {
	Broadcast(ctx context.Context, payload []byte)
}

// Publisher sends every board update to a redis channel.
type Publisher struct {
	logger  *slog.Logger
	client  *redis.Client
	channel string
}

func NewPublisher(logger *slog.Logger, client *redis.Client, channel string) *Publisher {
	return &Publisher{
		logger:  logger.With("component", "publisher", "channel", channel),
		client:  client,
		channel: channel,
	}
}

// Broadcast - publishes the payload. Errors are logged and dropped.
func (that *Publisher) Broadcast(ctx context.Context, payload []byte) {
	// the caller hanging up must not cancel the publish
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	receivers, err := that.client.Publish(ctx, that.channel, payload).Result()
	if err != nil {
		that.logger.Error("failed to publish board", "error", err)
		return
	}

	that.logger.Debug("board published", "receivers", receivers)
}

// Relay forwards board updates from a redis channel to a local sink.
type Relay struct {
	logger  *slog.Logger
	client  *redis.Client
	channel string
	sink    sink
}

func NewRelay(logger *slog.Logger, client *redis.Client, channel string, sink sink) *Relay {
	return &Relay{
		logger:  logger.With("component", "relay", "channel", channel),
		client:  client,
		channel: channel,
		sink:    sink,
	}
}

// Run - subscribes and forwards messages until ctx is done.
func (that *Relay) Run(ctx context.Context) error {
	pubsub := that.client.Subscribe(ctx, that.channel)
	defer func() {
		if err := pubsub.Close(); err != nil {
			that.logger.Error("failed to close subscription", "error", err)
		}
	}()

	// wait for the subscription to be confirmed so no publish is missed after Run starts
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	that.logger.Info("relay subscribed")

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return ErrSubscriptionClosed
			}

			that.sink.Broadcast(ctx, []byte(msg.Payload))
		}
	}
}
