package service

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=../mocks/notifier_mock.go -package=mocks

import (
	"context"
	"sync"

	"studio/config"
	"studio/infras/kafka"
	"studio/infras/otel"
	"studio/internal/domains/notification/model"
	"studio/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	DriverAsync = "async"
	DriverKafka = "kafka"
)

// Notifier dispatches messages without blocking the caller. Failures are logged, never returned.
type Notifier interface {
	Notify(ctx context.Context, messages ...model.Message)
	// Wait blocks until every dispatch started by Notify has finished or ctx is done.
	Wait(ctx context.Context) error
}

// New picks the dispatch driver from config. The kafka driver only publishes; cmd/worker delivers.
func New(cfg *config.Config, deliverer Deliverer, client kafka.Client, otel otel.Otel) Notifier {
	if cfg.Notification.Driver == DriverKafka {
		return &kafkaNotifier{cfg: cfg, client: client, otel: otel}
	}

	return &asyncNotifier{deliverer: deliverer}
}

// inflight tracks dispatch goroutines so shutdown can drain them.
type inflight struct {
	wg sync.WaitGroup
}

func (f *inflight) run(fn func()) {
	f.wg.Add(1)

	go func() {
		defer f.wg.Done()
		fn()
	}()
}

func (f *inflight) Wait(ctx context.Context) error {
	done := make(chan struct{})

	go func() {
		f.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type asyncNotifier struct {
	inflight
	deliverer Deliverer
}

func (n *asyncNotifier) Notify(ctx context.Context, messages ...model.Message) {
	if len(messages) == 0 {
		return
	}

	n.run(func() {
		c := context.WithoutCancel(ctx)

		for _, msg := range messages {
			if err := n.deliverer.Deliver(c, msg); err != nil {
				log.Error().Err(err).Str("template", msg.Template).Str("channel", msg.Channel).Msg("failed to deliver notification")
			}
		}
	})
}

type kafkaNotifier struct {
	inflight
	cfg    *config.Config
	client kafka.Client
	otel   otel.Otel
}

func (n *kafkaNotifier) Notify(ctx context.Context, messages ...model.Message) {
	if len(messages) == 0 {
		return
	}

	n.run(func() {
		c, scope := n.otel.NewScope(context.WithoutCancel(ctx), constant.OtelEventScopeName, constant.OtelEventScopeName+".notification.Publish")
		defer scope.End()

		payloads := make([]kafka.Message, len(messages))
		for i, msg := range messages {
			payloads[i] = kafka.Message{Key: msg.Key(), Value: msg}
		}

		if err := n.client.SendMessages(c, n.cfg.Notification.Topic, payloads...); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Int("count", len(messages)).Msg("failed to publish notifications")
		}
	})
}
