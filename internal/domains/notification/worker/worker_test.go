package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"studio/config"
	kafkaInfra "studio/infras/kafka"
	kafkaMocks "studio/infras/kafka/mocks"
	notificationMocks "studio/internal/domains/notification/mocks"
	"studio/internal/domains/notification/model"
	"studio/internal/domains/notification/worker"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestWorker_Handle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deliverer := notificationMocks.NewMockDeliverer(ctrl)
	w := worker.New(&config.Config{}, nil, deliverer)

	msg := model.Email(model.TemplateBookingAlert, "studio@example.com", map[string]string{model.KeyName: "Asha"})
	payload, err := json.Marshal(msg)
	require.NoError(t, err)

	deliverer.EXPECT().Deliver(gomock.Any(), msg).Return(nil)
	assert.NoError(t, w.Handle(context.Background(), kafkaGo.Message{Value: payload}))

	deliverer.EXPECT().Deliver(gomock.Any(), msg).Return(errors.New("smtp down"))
	assert.Error(t, w.Handle(context.Background(), kafkaGo.Message{Value: payload}))

	assert.NoError(t, w.Handle(context.Background(), kafkaGo.Message{Value: []byte("{broken")}))
}

func TestWorker_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.ConsumerGroup = "studio-worker"
	cfg.Notification.Topic = "studio.notifications"

	client.EXPECT().
		Consume(gomock.Any(), "studio-worker", "studio.notifications", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, _ kafkaInfra.Handler) error {
			return nil
		})

	assert.NoError(t, worker.New(cfg, client, nil).Run(context.Background()))
}
