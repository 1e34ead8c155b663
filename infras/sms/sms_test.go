package sms_test

import (
	"context"
	"testing"

	"studio/config"
	"studio/infras/otel/mocks"
	"studio/infras/sms"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "+919876543210", sms.Normalize("91 98765 43210"))
	assert.Equal(t, "+15550100", sms.Normalize("+15550100"))
	assert.Empty(t, sms.Normalize("  "))
}

func TestSend(t *testing.T) {
	cfg := &config.Config{}
	sender := sms.New(cfg, mocks.NewOtel())

	assert.ErrorIs(t, sender.Send(context.Background(), "", "hi"), sms.ErrMissingRecipient)
	assert.NoError(t, sender.Send(context.Background(), "+15550100", "hi"))

	cfg.External.Twilio.Enable = true
	assert.ErrorIs(t, sender.Send(context.Background(), "+15550100", "hi"), sms.ErrNotConfigured)
}
