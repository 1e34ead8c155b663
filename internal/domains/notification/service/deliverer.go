package service

//go:generate go run go.uber.org/mock/mockgen -source=./deliverer.go -destination=../mocks/deliverer_mock.go -package=mocks

import (
	"context"
	"fmt"
	"maps"
	"time"

	"studio/config"
	"studio/infras/mailer"
	"studio/infras/metrics"
	"studio/infras/otel"
	"studio/infras/sms"
	"studio/internal/domains/notification/model"
	"studio/shared/constant"

	"github.com/rs/zerolog/log"
)

// Deliverer sends one message through its channel. Decorators wrap it, see NewRetrying.
type Deliverer interface {
	Deliver(ctx context.Context, msg model.Message) error
}

type delivererImpl struct {
	cfg      *config.Config
	renderer *Renderer
	mailer   mailer.Mailer
	sms      sms.Sender
	otel     otel.Otel
}

func NewDeliverer(cfg *config.Config, mailer mailer.Mailer, sms sms.Sender, otel otel.Otel) (Deliverer, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	var deliverer Deliverer = &delivererImpl{
		cfg:      cfg,
		renderer: renderer,
		mailer:   mailer,
		sms:      sms,
		otel:     otel,
	}

	if attempts := cfg.Notification.MaxAttempts; attempts > 1 {
		deliverer = NewRetrying(deliverer, attempts, time.Duration(cfg.Notification.RetryWaitSeconds)*time.Second)
	}

	return deliverer, nil
}

func (d *delivererImpl) Deliver(ctx context.Context, msg model.Message) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".notification.Deliver")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		"notification.template": msg.Template,
		"notification.channel":  msg.Channel,
	})

	defer func() {
		metrics.RecordNotification(msg.Template, msg.Channel, err)
	}()

	data := maps.Clone(msg.Data)
	if data == nil {
		data = map[string]string{}
	}

	if data[model.KeyStudio] == "" {
		data[model.KeyStudio] = d.cfg.Notification.StudioName
	}

	rendered, err := d.renderer.Render(msg.Template, data)
	if err != nil {
		return err
	}

	switch msg.Channel {
	case model.ChannelEmail, "":
		err = d.mailer.Send(ctx, mailer.Mail{
			To:      msg.To,
			Subject: rendered.Subject,
			HTML:    rendered.HTML,
			Text:    rendered.Text,
		})
	case model.ChannelSMS:
		err = d.sms.Send(ctx, msg.To, rendered.Text)
	default:
		err = fmt.Errorf("unsupported notification channel: %s", msg.Channel)
	}

	if err != nil {
		return fmt.Errorf("failed to deliver %s via %s: %w", msg.Template, msg.Channel, err)
	}

	log.Debug().Str("template", msg.Template).Str("channel", msg.Channel).Msg("notification delivered")

	return nil
}

type retrying struct {
	next     Deliverer
	attempts int
	wait     time.Duration
}

// NewRetrying retries failed deliveries with a fixed wait between attempts.
func NewRetrying(next Deliverer, attempts int, wait time.Duration) Deliverer {
	return &retrying{next: next, attempts: max(attempts, 1), wait: wait}
}

func (r *retrying) Deliver(ctx context.Context, msg model.Message) error {
	var err error

	for attempt := 1; attempt <= r.attempts; attempt++ {
		if err = r.next.Deliver(ctx, msg); err == nil {
			return nil
		}

		if attempt == r.attempts {
			break
		}

		log.Warn().Err(err).Int("attempt", attempt).Str("template", msg.Template).Msg("notification delivery failed, retrying")

		select {
		case <-ctx.Done():
			return fmt.Errorf("notification retry aborted: %w", ctx.Err())
		case <-time.After(r.wait):
		}
	}

	return err
}
