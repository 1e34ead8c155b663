package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"studio/internal/domains/booking/model"
	"studio/shared"
	gDto "studio/shared/dto"
	gModel "studio/shared/model"
	"studio/shared/timezone"

	"github.com/google/uuid"
)

const (
	PageSize = 10

	MessageCreated   = "Booking successful"
	MessageSlotTaken = "Slot already booked. Please choose another time."
)

var ErrInvalidAmount = errors.New("payment must be a number")

type CreateBookingRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Email       string `json:"email"       validate:"required,email,max=100"`
	Date        string `json:"date"        validate:"required,datetime=2006-01-02"`
	Time        string `json:"time"        validate:"omitempty,datetime=15:04"`
	TypeOfShoot string `json:"typeOfShoot" validate:"required,max=100"`
	Phone       string `json:"phone"       validate:"required,max=20"`
	Location    string `json:"location"    validate:"required,max=200"`
	Message     string `json:"message"     validate:"omitempty,max=2000"`
}

// Normalize trims the slot fields so " 10:00" and "10:00" name the same slot.
func (c *CreateBookingRequest) Normalize() {
	c.Date = strings.TrimSpace(c.Date)
	c.Time = strings.TrimSpace(c.Time)
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
}

func (c *CreateBookingRequest) ToModel(user string) model.Booking {
	now := timezone.Now()

	return model.Booking{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Email:       c.Email,
		Date:        c.Date,
		Time:        c.Time,
		TypeOfShoot: c.TypeOfShoot,
		Phone:       c.Phone,
		Location:    c.Location,
		Message:     c.Message,
		Status:      model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateStatusRequest struct {
	Status     model.Status `db:"status"      json:"status"     validate:"required,oneof=pending confirmed rejected completed cancelled"`
	AdminNotes *string      `db:"admin_notes" json:"adminNotes" validate:"omitempty,max=2000"`
}

// Amount accepts a JSON number or a numeric string.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))

	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return ErrInvalidAmount
		}

		raw = strings.TrimSpace(unquoted)
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return ErrInvalidAmount
	}

	*a = Amount(value)

	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(a))
}

type UpdatePaymentRequest struct {
	Payment *Amount `json:"payment" swaggertype:"number" validate:"required,gte=0"`
}

type BookingResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	TypeOfShoot string  `json:"typeOfShoot"`
	Phone       string  `json:"phone"`
	Location    string  `json:"location"`
	Message     string  `json:"message"`
	Status      string  `json:"status"`
	AdminNotes  string  `json:"adminNotes"`
	Payment     float64 `json:"payment"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Date = model.Date
	r.Time = model.Time
	r.TypeOfShoot = model.TypeOfShoot
	r.Phone = model.Phone
	r.Location = model.Location
	r.Message = model.Message
	r.Status = string(model.Status)
	r.AdminNotes = model.AdminNotes
	r.Payment = model.Payment
	r.Metadata.FromModel(model.Metadata)
}

type CreateBookingResponse struct {
	Message string          `json:"message"`
	Booking BookingResponse `json:"booking"`
}

type GetBookingsResponse struct {
	Bookings    []BookingResponse `json:"bookings"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, page int) {
	r.TotalPages = shared.CalculateTotalPage(totalData, PageSize)
	r.CurrentPage = page

	r.Bookings = make([]BookingResponse, len(models))
	for i, m := range models {
		r.Bookings[i].FromModel(m)
	}
}

// SlotResponse is the public view of a booking: the taken slot only.
type SlotResponse struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func FromModelsToSlots(models []model.Booking) []SlotResponse {
	slots := make([]SlotResponse, len(models))
	for i, m := range models {
		slots[i] = SlotResponse{Date: m.Date, Time: m.Time}
	}

	return slots
}
