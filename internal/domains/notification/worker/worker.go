package worker

import (
	"context"
	"fmt"

	"studio/config"
	"studio/infras/kafka"
	"studio/internal/domains/notification/model"
	"studio/internal/domains/notification/service"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Worker consumes published notifications and delivers them.
type Worker struct {
	cfg       *config.Config
	client    kafka.Client
	deliverer service.Deliverer
}

func New(cfg *config.Config, client kafka.Client, deliverer service.Deliverer) *Worker {
	return &Worker{
		cfg:       cfg,
		client:    client,
		deliverer: deliverer,
	}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	log.Info().Str("topic", w.cfg.Notification.Topic).Msg("Notification worker started")

	if err := w.client.Consume(ctx, w.cfg.Kafka.ConsumerGroup, w.cfg.Notification.Topic, w.Handle); err != nil {
		return fmt.Errorf("notification consumer stopped: %w", err)
	}

	return nil
}

// Handle delivers one message. Undecodable payloads are dropped so they do not block the partition.
func (w *Worker) Handle(ctx context.Context, message kafkaGo.Message) error {
	msg, err := kafka.Decode[model.Message](message)
	if err != nil {
		log.Error().Err(err).Str("key", string(message.Key)).Msg("dropping malformed notification")

		return nil
	}

	return w.deliverer.Deliver(ctx, msg)
}

func (w *Worker) Close() error {
	return w.client.Close()
}
