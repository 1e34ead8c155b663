package booking_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"studio/config"
	otelMocks "studio/infras/otel/mocks"
	bookingMocks "studio/internal/domains/booking/mocks"
	"studio/internal/domains/booking/model"
	"studio/internal/domains/booking/model/dto"
	"studio/internal/domains/booking/service"
	notificationMocks "studio/internal/domains/notification/mocks"
	"studio/internal/handlers/booking"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	middlewareMocks "studio/transport/http/middleware/mocks"
	"studio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const bookingBody = `{
	"name": "Asha",
	"email": "asha@example.com",
	"date": "2026-11-02",
	"time": "10:30",
	"typeOfShoot": "Wedding",
	"phone": "+919876543210",
	"location": "Goa"
}`

func newRouter(t *testing.T) (http.Handler, *bookingMocks.MockBooking, *notificationMocks.MockNotifier) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := bookingMocks.NewMockBooking(ctrl)
	notifier := notificationMocks.NewMockNotifier(ctrl)

	svc := service.New(repo, &config.Config{}, notifier, otelMocks.NewOtel())
	handler := booking.New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router, middlewareMocks.NewAuth(), middlewareMocks.NewAppMiddleware())

	return router, repo, notifier
}

func do(router http.Handler, method, target, body string, authorized bool) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	if authorized {
		request.Header.Set(constant.RequestHeaderAuthorization, "Bearer token")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	return recorder
}

func TestHandler_CreateBooking_SameSlotTwice(t *testing.T) {
	router, repo, notifier := newRouter(t)

	gomock.InOrder(
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil),
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil),
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil),
	)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(1)

	first := do(router, http.MethodPost, "/bookings", bookingBody, false)
	require.Equal(t, http.StatusCreated, first.Code)

	created := dto.CreateBookingResponse{}
	require.NoError(t, json.NewDecoder(first.Body).Decode(&created))
	assert.Equal(t, dto.MessageCreated, created.Message)
	assert.Equal(t, "pending", created.Booking.Status)
	assert.Equal(t, "2026-11-02", created.Booking.Date)
	assert.Equal(t, "10:30", created.Booking.Time)
	assert.NotEmpty(t, created.Booking.ID)

	second := do(router, http.MethodPost, "/bookings", bookingBody, false)
	require.Equal(t, http.StatusBadRequest, second.Code)

	body := response.Error{}
	require.NoError(t, json.NewDecoder(second.Body).Decode(&body))
	assert.Equal(t, dto.MessageSlotTaken, body.Message)
}

func TestHandler_CreateBooking_InvalidBody(t *testing.T) {
	router, _, _ := newRouter(t)

	recorder := do(router, http.MethodPost, "/bookings", `{"name":"Asha"}`, false)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_GetAvailability(t *testing.T) {
	router, repo, _ := newRouter(t)

	repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any(), model.FieldDate, model.FieldTime).
		Return([]model.Booking{{Date: "2026-11-02", Time: "10:30"}, {Date: "2026-11-03"}}, nil)

	recorder := do(router, http.MethodGet, "/bookings/availability", "", false)
	require.Equal(t, http.StatusOK, recorder.Code)

	slots := []map[string]any{}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&slots))
	require.Len(t, slots, 2)
	assert.Equal(t, map[string]any{"date": "2026-11-02", "time": "10:30"}, slots[0])
	assert.Equal(t, map[string]any{"date": "2026-11-03", "time": ""}, slots[1])
}

func TestHandler_GetBookings(t *testing.T) {
	t.Run("requires a token", func(t *testing.T) {
		router, _, _ := newRouter(t)

		recorder := do(router, http.MethodGet, "/bookings", "", false)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("non-numeric page falls back to the first page", func(t *testing.T) {
		router, repo, _ := newRouter(t)

		repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
		repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				assert.Equal(t, 1, params.Page)
				assert.Equal(t, dto.PageSize, params.Limit)

				return []model.Booking{{ID: "b1"}}, nil
			})

		recorder := do(router, http.MethodGet, "/bookings?page=abc", "", true)
		require.Equal(t, http.StatusOK, recorder.Code)

		res := dto.GetBookingsResponse{}
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
		assert.Equal(t, 2, res.TotalPages)
		assert.Equal(t, 1, res.CurrentPage)
		assert.Len(t, res.Bookings, 1)
	})
}

func TestHandler_UpdateBookingPayment(t *testing.T) {
	const id = "7b0d5c0e-2f1a-4d39-9e43-7a1f0f7a2b11"

	tests := []struct {
		name      string
		body      string
		setupMock func(repo *bookingMocks.MockBooking)
		wantCode  int
	}{
		{
			name: "numeric string is accepted",
			body: `{"payment":"1500.50"}`,
			setupMock: func(repo *bookingMocks.MockBooking) {
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.InDelta(t, 1500.50, fields[model.FieldPayment], 0.001)
						assert.Equal(t, middlewareMocks.AdminEmail, fields[constant.FieldModifiedBy])

						return 1, nil
					})
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: id, Payment: 1500.50}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:      "negative amount is rejected",
			body:      `{"payment":-1}`,
			setupMock: func(*bookingMocks.MockBooking) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "non-numeric amount is rejected",
			body:      `{"payment":"abc"}`,
			setupMock: func(*bookingMocks.MockBooking) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, repo, _ := newRouter(t)
			tt.setupMock(repo)

			recorder := do(router, http.MethodPut, "/bookings/"+id+"/payment", tt.body, true)

			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}

func TestHandler_UpdateBookingStatus(t *testing.T) {
	t.Run("unknown status is rejected", func(t *testing.T) {
		router, _, _ := newRouter(t)

		recorder := do(router, http.MethodPut, "/bookings/7b0d5c0e-2f1a-4d39-9e43-7a1f0f7a2b11/status", `{"status":"archived"}`, true)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		router, _, _ := newRouter(t)

		recorder := do(router, http.MethodPut, "/bookings/not-an-id/status", `{"status":"confirmed"}`, true)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
