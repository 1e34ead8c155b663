package model

import (
	"slices"

	"studio/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "Booking"

	FieldID          = "id"
	FieldName        = "name"
	FieldEmail       = "email"
	FieldDate        = "date"
	FieldTime        = "time"
	FieldTypeOfShoot = "type_of_shoot"
	FieldPhone       = "phone"
	FieldLocation    = "location"
	FieldMessage     = "message"
	FieldStatus      = "status"
	FieldAdminNotes  = "admin_notes"
	FieldPayment     = "payment"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var Statuses = []Status{StatusPending, StatusConfirmed, StatusRejected, StatusCompleted, StatusCancelled}

func (s Status) IsValid() bool {
	return slices.Contains(Statuses, s)
}

// Booking reserves one (Date, Time) slot. Time is "" for an all-day booking.
type Booking struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Email       string  `db:"email"`
	Date        string  `db:"date"`
	Time        string  `db:"time"`
	TypeOfShoot string  `db:"type_of_shoot"`
	Phone       string  `db:"phone"`
	Location    string  `db:"location"`
	Message     string  `db:"message"`
	Status      Status  `db:"status"`
	AdminNotes  string  `db:"admin_notes"`
	Payment     float64 `db:"payment"`
	model.Metadata
}
