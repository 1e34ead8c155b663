package service_test

import (
	"context"
	"errors"
	"testing"

	"studio/config"
	"studio/infras/otel/mocks"
	inquiryMocks "studio/internal/domains/inquiry/mocks"
	"studio/internal/domains/inquiry/model"
	"studio/internal/domains/inquiry/model/dto"
	"studio/internal/domains/inquiry/service"
	notificationMocks "studio/internal/domains/notification/mocks"
	notificationModel "studio/internal/domains/notification/model"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	gRepo "studio/shared/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const inquiryID = "0c4e1f3a-5a8b-4b6e-9d0f-3e2a1b7c9d10"

func newService(t *testing.T) (service.Inquiry, *inquiryMocks.MockInquiry, *notificationMocks.MockNotifier, *config.Config) {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := inquiryMocks.NewMockInquiry(ctrl)
	notifier := notificationMocks.NewMockNotifier(ctrl)

	cfg := &config.Config{}
	cfg.Notification.StudioEmail = "studio@example.com"

	return service.New(repo, cfg, notifier, mocks.NewOtel()), repo, notifier, cfg
}

func TestInquiryService_Create(t *testing.T) {
	t.Run("stored as pending and both parties are notified", func(t *testing.T) {
		svc, repo, notifier, _ := newService(t)

		repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, inquiry model.Inquiry) error {
				assert.Equal(t, model.StatusPending, inquiry.Status)
				assert.Equal(t, "Ravi", inquiry.Name)

				return nil
			})
		notifier.EXPECT().
			Notify(gomock.Any(), gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, messages ...notificationModel.Message) {
				assert.Equal(t, notificationModel.TemplateInquiryAlert, messages[0].Template)
				assert.Equal(t, "studio@example.com", messages[0].To)
				assert.Equal(t, notificationModel.TemplateInquiryReceipt, messages[1].Template)
				assert.Equal(t, "ravi@example.com", messages[1].To)
				assert.Equal(t, "Do you shoot at night?", messages[1].Data[notificationModel.KeyMessage])
			})

		res, err := svc.Create(context.Background(), dto.CreateInquiryRequest{
			Name:    " Ravi ",
			Email:   "ravi@example.com",
			Message: "Do you shoot at night?",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, string(model.StatusPending), res.Status)
	})

	t.Run("no studio mailbox only sends the receipt", func(t *testing.T) {
		svc, repo, notifier, cfg := newService(t)
		cfg.Notification.StudioEmail = ""

		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		notifier.EXPECT().
			Notify(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, messages ...notificationModel.Message) {
				assert.Equal(t, notificationModel.TemplateInquiryReceipt, messages[0].Template)
			})

		_, err := svc.Create(context.Background(), dto.CreateInquiryRequest{
			Name: "Ravi", Email: "ravi@example.com", Message: "hello",
		})
		assert.NoError(t, err)
	})

	t.Run("blank field", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		_, err := svc.Create(context.Background(), dto.CreateInquiryRequest{Name: "Ravi", Email: "ravi@example.com", Message: "   "})

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
		assert.Equal(t, dto.MessageRequired, err.Error())
	})

	t.Run("storage error skips notifications", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		_, err := svc.Create(context.Background(), dto.CreateInquiryRequest{
			Name: "Ravi", Email: "ravi@example.com", Message: "hello",
		})

		require.Error(t, err)
		assert.Equal(t, 500, failure.GetCode(err))
	})
}

func TestInquiryService_GetAll(t *testing.T) {
	svc, repo, _, _ := newService(t)

	repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Inquiry, error) {
			require.Len(t, params.Sort, 1)
			assert.Equal(t, constant.FieldCreatedAt, params.Sort[0].Field)
			assert.Equal(t, gDto.SortDirDesc, params.Sort[0].Dir)
			assert.Zero(t, params.Limit)

			return []model.Inquiry{{ID: inquiryID, Status: model.StatusClosed}}, nil
		})

	res, err := svc.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "closed", res[0].Status)
}

func TestInquiryService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		status    model.Status
		setupMock func(repo *inquiryMocks.MockInquiry)
		wantCode  int
	}{
		{
			name:   "responded",
			id:     inquiryID,
			status: model.StatusResponded,
			setupMock: func(repo *inquiryMocks.MockInquiry) {
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, model.StatusResponded, fields[model.FieldStatus])
						assert.Contains(t, fields, constant.FieldModifiedAt)

						return 1, nil
					})
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Inquiry{ID: inquiryID, Status: model.StatusResponded}, nil)
			},
		},
		{
			name:     "unknown status",
			id:       inquiryID,
			status:   "archived",
			wantCode: 400,
		},
		{
			name:     "malformed id",
			id:       "not-an-id",
			status:   model.StatusClosed,
			wantCode: 404,
		},
		{
			name:   "no such inquiry",
			id:     inquiryID,
			status: model.StatusClosed,
			setupMock: func(repo *inquiryMocks.MockInquiry) {
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
			},
			wantCode: 404,
		},
		{
			name:   "removed between update and read",
			id:     inquiryID,
			status: model.StatusClosed,
			setupMock: func(repo *inquiryMocks.MockInquiry) {
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Inquiry{}, gRepo.ErrNotFound)
			},
			wantCode: 404,
		},
		{
			name:   "storage error",
			id:     inquiryID,
			status: model.StatusClosed,
			setupMock: func(repo *inquiryMocks.MockInquiry) {
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection reset"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _ := newService(t)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			res, err := svc.UpdateStatus(context.Background(), tt.id, dto.UpdateStatusRequest{Status: tt.status})

			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, string(tt.status), res.Status)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}
