package http

import (
	"context"
	"testing"
	"time"

	"studio/config"
	notificationMocks "studio/internal/domains/notification/mocks"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestDrainNotifications(t *testing.T) {
	tests := []struct {
		name          string
		cleanupPeriod int64
		maxWait       time.Duration
		waitErr       error
	}{
		{
			name:          "waits within the cleanup period",
			cleanupPeriod: 3,
			maxWait:       3 * time.Second,
		},
		{
			name:          "falls back to the default timeout",
			cleanupPeriod: 0,
			maxWait:       readHeaderTimeout,
		},
		{
			name:          "gives up when notifications outlive the deadline",
			cleanupPeriod: 1,
			maxWait:       time.Second,
			waitErr:       context.DeadlineExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			cfg := &config.Config{}
			cfg.Server.Shutdown.CleanupPeriodSeconds = tt.cleanupPeriod

			notifier := notificationMocks.NewMockNotifier(ctrl)
			notifier.EXPECT().
				Wait(gomock.Any()).
				DoAndReturn(func(ctx context.Context) error {
					deadline, ok := ctx.Deadline()
					assert.True(t, ok)
					assert.WithinDuration(t, time.Now().Add(tt.maxWait), deadline, 500*time.Millisecond)

					return tt.waitErr
				})

			h := &HTTP{Config: cfg, notifier: notifier}
			h.drainNotifications()
		})
	}
}
