package model

import (
	"slices"

	"studio/shared/model"
)

const (
	TableName  = "inquiries"
	EntityName = "Inquiry"

	FieldID      = "id"
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
	FieldStatus  = "status"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusResponded Status = "responded"
	StatusClosed    Status = "closed"
)

var Statuses = []Status{StatusPending, StatusResponded, StatusClosed}

func (s Status) IsValid() bool {
	return slices.Contains(Statuses, s)
}

type Inquiry struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Email   string `db:"email"`
	Message string `db:"message"`
	Status  Status `db:"status"`
	model.Metadata
}
