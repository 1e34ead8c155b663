package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"studio/config"
	"studio/infras/otel"
	"studio/shared/constant"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

var ErrMissingRecipient = errors.New("mail recipient is empty")

// Mail is one outgoing message. Text is the plain alternative of HTML.
type Mail struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

type mailerImpl struct {
	cfg    *config.Config
	dialer *gomail.Dialer
	otel   otel.Otel
}

// New returns an SMTP mailer. With MAIL_ENABLE=false messages are only logged.
func New(cfg *config.Config, otl otel.Otel) Mailer {
	dialer := gomail.NewDialer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password)
	dialer.SSL = cfg.Mail.Port == 465

	if cfg.Mail.Enable {
		log.Info().Str("host", cfg.Mail.Host).Int("port", cfg.Mail.Port).Msg("Mailer configured")
	}

	return &mailerImpl{
		cfg:    cfg,
		dialer: dialer,
		otel:   otl,
	}
}

func (m *mailerImpl) from() string {
	if m.cfg.Mail.From != "" {
		return m.cfg.Mail.From
	}

	return m.cfg.Mail.Username
}

func (m *mailerImpl) Send(ctx context.Context, mail Mail) (err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".mailer.Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	if mail.To == "" {
		return ErrMissingRecipient
	}

	scope.SetAttribute("mail.subject", mail.Subject)

	if !m.cfg.Mail.Enable {
		log.Info().Str("to", mail.To).Str("subject", mail.Subject).Msg("[MAIL] delivery disabled, message dropped")

		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from())
	msg.SetHeader("To", mail.To)
	msg.SetHeader("Subject", mail.Subject)

	if mail.Text != "" {
		msg.SetBody("text/plain", mail.Text)

		if mail.HTML != "" {
			msg.AddAlternative("text/html", mail.HTML)
		}
	} else {
		msg.SetBody("text/html", mail.HTML)
	}

	if err = m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}
