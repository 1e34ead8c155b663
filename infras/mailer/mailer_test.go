package mailer_test

import (
	"context"
	"testing"

	"studio/config"
	"studio/infras/mailer"
	"studio/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
)

func TestSend(t *testing.T) {
	cfg := &config.Config{}
	cfg.Mail.Host = "localhost"
	cfg.Mail.Port = 2525

	m := mailer.New(cfg, mocks.NewOtel())

	tests := []struct {
		name    string
		mail    mailer.Mail
		wantErr error
	}{
		{
			name:    "missing recipient",
			mail:    mailer.Mail{Subject: "hello"},
			wantErr: mailer.ErrMissingRecipient,
		},
		{
			name: "disabled delivery is dropped",
			mail: mailer.Mail{To: "client@example.com", Subject: "hello", Text: "hi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Send(context.Background(), tt.mail)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}
