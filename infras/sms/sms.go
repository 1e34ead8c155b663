package sms

//go:generate go run go.uber.org/mock/mockgen -source=./sms.go -destination=./mocks/sms_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"studio/config"
	"studio/infras/otel"
	"studio/shared/constant"

	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

var (
	ErrMissingRecipient = errors.New("sms recipient is empty")
	ErrNotConfigured    = errors.New("twilio is not properly configured")
)

type Sender interface {
	Send(ctx context.Context, to, body string) error
}

type twilioImpl struct {
	cfg    *config.Config
	client *twilio.RestClient
	otel   otel.Otel
}

// New returns a Twilio sender. With EXTERNAL_TWILIO_ENABLE=false messages are only logged.
func New(cfg *config.Config, otl otel.Otel) Sender {
	return &twilioImpl{
		cfg: cfg,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.External.Twilio.AccountSID,
			Password: cfg.External.Twilio.AuthToken,
		}),
		otel: otl,
	}
}

// Normalize prefixes a bare number with "+".
func Normalize(phone string) string {
	phone = strings.Join(strings.Fields(phone), "")
	if phone == "" || strings.HasPrefix(phone, "+") {
		return phone
	}

	return "+" + phone
}

func (s *twilioImpl) Send(ctx context.Context, to, body string) (err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".sms.Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	to = Normalize(to)
	if to == "" {
		return ErrMissingRecipient
	}

	twilioCfg := s.cfg.External.Twilio
	if !twilioCfg.Enable {
		log.Info().Str("to", to).Msg("[SMS] delivery disabled, message dropped")

		return nil
	}

	if twilioCfg.AccountSID == "" || twilioCfg.AuthToken == "" || twilioCfg.FromNumber == "" {
		return ErrNotConfigured
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(twilioCfg.FromNumber)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}

	if resp.Sid != nil {
		scope.SetAttribute("sms.sid", *resp.Sid)
	}

	return nil
}
