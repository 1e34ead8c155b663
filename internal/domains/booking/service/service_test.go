package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"studio/config"
	"studio/infras/otel/mocks"
	bookingMocks "studio/internal/domains/booking/mocks"
	"studio/internal/domains/booking/model"
	"studio/internal/domains/booking/model/dto"
	"studio/internal/domains/booking/service"
	notificationMocks "studio/internal/domains/notification/mocks"
	notificationModel "studio/internal/domains/notification/model"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	gRepo "studio/shared/repository"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const bookingID = "7b0d5c0e-2f1a-4d39-9e43-7a1f0f7a2b11"

func createRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		Name:        "Asha",
		Email:       "asha@example.com",
		Date:        "2026-11-02",
		Time:        "10:30",
		TypeOfShoot: "Wedding",
		Phone:       "+919876543210",
		Location:    "Goa",
	}
}

func newService(t *testing.T) (service.Booking, *bookingMocks.MockBooking, *notificationMocks.MockNotifier, *config.Config) {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := bookingMocks.NewMockBooking(ctrl)
	notifier := notificationMocks.NewMockNotifier(ctrl)

	cfg := &config.Config{}
	cfg.Notification.StudioEmail = "studio@example.com"

	return service.New(repo, cfg, notifier, mocks.NewOtel()), repo, notifier, cfg
}

func TestBookingService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(repo *bookingMocks.MockBooking, notifier *notificationMocks.MockNotifier)
		wantCode  int
	}{
		{
			name: "free slot is reserved and both parties are notified",
			req:  createRequest(),
			setupMock: func(repo *bookingMocks.MockBooking, notifier *notificationMocks.MockNotifier) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, model.StatusPending, booking.Status)
						assert.Equal(t, "2026-11-02", booking.Date)
						assert.Equal(t, "10:30", booking.Time)
						assert.Equal(t, constant.ContextGuest, booking.CreatedBy)

						return nil
					})
				notifier.EXPECT().
					Notify(gomock.Any(), gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, messages ...notificationModel.Message) {
						assert.Equal(t, notificationModel.TemplateBookingConfirmation, messages[0].Template)
						assert.Equal(t, "asha@example.com", messages[0].To)
						assert.Equal(t, notificationModel.TemplateBookingAlert, messages[1].Template)
						assert.Equal(t, "studio@example.com", messages[1].To)
					})
			},
		},
		{
			name: "taken slot is rejected without insert or notification",
			req:  createRequest(),
			setupMock: func(repo *bookingMocks.MockBooking, _ *notificationMocks.MockNotifier) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: 400,
		},
		{
			name: "concurrent reservation caught by the unique index",
			req:  createRequest(),
			setupMock: func(repo *bookingMocks.MockBooking, _ *notificationMocks.MockNotifier) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to insert data (booking): %w", &pq.Error{Code: constant.PqErrorCodeUniqueViolation}))
			},
			wantCode: 400,
		},
		{
			name: "storage error",
			req:  createRequest(),
			setupMock: func(repo *bookingMocks.MockBooking, _ *notificationMocks.MockNotifier) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			wantCode: 500,
		},
		{
			name: "slot check error",
			req:  createRequest(),
			setupMock: func(repo *bookingMocks.MockBooking, _ *notificationMocks.MockNotifier) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("connection reset"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, notifier, _ := newService(t)
			tt.setupMock(repo, notifier)

			res, err := svc.Create(context.Background(), tt.req)

			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, string(model.StatusPending), res.Status)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantCode == 400 {
				assert.Equal(t, dto.MessageSlotTaken, err.Error())
			}
		})
	}
}

func TestBookingService_Create_SlotFilter(t *testing.T) {
	svc, repo, _, _ := newService(t)

	req := createRequest()
	req.Date = " 2026-11-02 "
	req.Time = ""

	repo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
			where, args := filter.GetWhereClause()

			assert.Equal(t, "(date = :date AND time = :time)", where)
			assert.Equal(t, "2026-11-02", args["date"])
			assert.Equal(t, "", args["time"])

			return true, nil
		})

	_, err := svc.Create(context.Background(), req)
	assert.True(t, failure.Is(err, 400))
}

func TestBookingService_Create_StudioSMS(t *testing.T) {
	svc, repo, notifier, cfg := newService(t)
	cfg.Notification.StudioPhone = "+15550100"

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	notifier.EXPECT().
		Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, messages ...notificationModel.Message) {
			assert.Equal(t, notificationModel.ChannelSMS, messages[2].Channel)
			assert.Equal(t, "+15550100", messages[2].To)
		})

	_, err := svc.Create(context.Background(), createRequest())
	assert.NoError(t, err)
}

func TestBookingService_GetAll(t *testing.T) {
	tests := []struct {
		name            string
		page            int
		total           int
		wantPage        int
		wantTotalPages  int
		wantOffset      int
		wantErrFromRepo error
	}{
		{name: "first page", page: 1, total: 21, wantPage: 1, wantTotalPages: 3, wantOffset: 0},
		{name: "page below one is clamped", page: 0, total: 5, wantPage: 1, wantTotalPages: 1, wantOffset: 0},
		{name: "third page", page: 3, total: 21, wantPage: 3, wantTotalPages: 3, wantOffset: 20},
		{name: "no bookings", page: 1, total: 0, wantPage: 1, wantTotalPages: 0, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _ := newService(t)

			repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(tt.total, nil)
			repo.EXPECT().
				GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
					assert.Equal(t, dto.PageSize, params.Limit)
					assert.Equal(t, tt.wantOffset, params.Offset())
					assert.Equal(t, []gDto.Sort{
						{Field: model.FieldDate, Dir: gDto.SortDirDesc},
						{Field: model.FieldTime, Dir: gDto.SortDirDesc},
					}, params.Sort)

					return []model.Booking{{ID: bookingID, Date: "2026-11-02"}}, nil
				})

			res, err := svc.GetAll(context.Background(), tt.page)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPage, res.CurrentPage)
			assert.Equal(t, tt.wantTotalPages, res.TotalPages)
			assert.Len(t, res.Bookings, 1)
		})
	}
}

func TestBookingService_GetAll_CountError(t *testing.T) {
	svc, repo, _, _ := newService(t)

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("boom"))

	_, err := svc.GetAll(context.Background(), 1)
	assert.Error(t, err)
}

func TestBookingService_UpdateStatus(t *testing.T) {
	notes := "called the client"

	tests := []struct {
		name      string
		id        string
		req       dto.UpdateStatusRequest
		setupMock func(repo *bookingMocks.MockBooking)
		wantCode  int
	}{
		{
			name: "confirmed with notes",
			id:   bookingID,
			req:  dto.UpdateStatusRequest{Status: model.StatusConfirmed, AdminNotes: &notes},
			setupMock: func(repo *bookingMocks.MockBooking) {
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, model.StatusConfirmed, fields[model.FieldStatus])
						assert.Equal(t, notes, fields[model.FieldAdminNotes])
						assert.Contains(t, fields, constant.FieldModifiedAt)

						return 1, nil
					})
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: bookingID, Status: model.StatusConfirmed, AdminNotes: notes}, nil)
			},
		},
		{
			name: "any known status may follow any other",
			id:   bookingID,
			req:  dto.UpdateStatusRequest{Status: model.StatusPending},
			setupMock: func(repo *bookingMocks.MockBooking) {
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: bookingID, Status: model.StatusPending}, nil)
			},
		},
		{
			name:      "unknown status",
			id:        bookingID,
			req:       dto.UpdateStatusRequest{Status: "archived"},
			setupMock: func(*bookingMocks.MockBooking) {},
			wantCode:  400,
		},
		{
			name:      "malformed id",
			id:        "42",
			req:       dto.UpdateStatusRequest{Status: model.StatusConfirmed},
			setupMock: func(*bookingMocks.MockBooking) {},
			wantCode:  404,
		},
		{
			name: "unknown id",
			id:   bookingID,
			req:  dto.UpdateStatusRequest{Status: model.StatusConfirmed},
			setupMock: func(repo *bookingMocks.MockBooking) {
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
			},
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _ := newService(t)
			tt.setupMock(repo)

			res, err := svc.UpdateStatus(context.Background(), tt.id, tt.req)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, string(tt.req.Status), res.Status)
		})
	}
}

func TestBookingService_UpdatePayment(t *testing.T) {
	amount := dto.Amount(1500.5)
	negative := dto.Amount(-1)

	t.Run("stores the amount", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.InDelta(t, 1500.5, fields[model.FieldPayment], 0.0001)

				return 1, nil
			})
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: bookingID, Payment: 1500.5}, nil)

		res, err := svc.UpdatePayment(context.Background(), bookingID, dto.UpdatePaymentRequest{Payment: &amount})
		require.NoError(t, err)
		assert.InDelta(t, 1500.5, res.Payment, 0.0001)
	})

	t.Run("negative amount", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		_, err := svc.UpdatePayment(context.Background(), bookingID, dto.UpdatePaymentRequest{Payment: &negative})
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("record removed between update and read", func(t *testing.T) {
		svc, repo, _, _ := newService(t)

		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, gRepo.ErrNotFound)

		_, err := svc.UpdatePayment(context.Background(), bookingID, dto.UpdatePaymentRequest{Payment: &amount})
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestBookingService_Availability(t *testing.T) {
	svc, repo, _, _ := newService(t)

	repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any(), model.FieldDate, model.FieldTime).
		Return([]model.Booking{
			{Date: "2026-11-02", Time: "10:30"},
			{Date: "2026-11-03", Time: ""},
		}, nil)

	slots, err := svc.Availability(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []dto.SlotResponse{
		{Date: "2026-11-02", Time: "10:30"},
		{Date: "2026-11-03", Time: ""},
	}, slots)
}

func TestBookingService_Get(t *testing.T) {
	svc, repo, _, _ := newService(t)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, gRepo.ErrNotFound)

	_, err := svc.Get(context.Background(), bookingID)
	assert.Equal(t, 404, failure.GetCode(err))
	assert.Equal(t, "booking not found", err.Error())

	_, err = svc.Get(context.Background(), "not-a-uuid")
	assert.Equal(t, 404, failure.GetCode(err))
}
