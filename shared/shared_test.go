package shared_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"studio/shared"
	"studio/shared/constant"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "no rows", total: 0, limit: 10, expected: 0},
		{name: "one partial page", total: 3, limit: 10, expected: 1},
		{name: "exact pages", total: 20, limit: 10, expected: 2},
		{name: "rounds up", total: 21, limit: 10, expected: 3},
		{name: "invalid limit", total: 21, limit: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

type statusUpdate struct {
	Status     string   `db:"status"`
	AdminNotes *string  `db:"admin_notes"`
	Payment    *float64 `db:"payment"`
	Ignored    string
}

func TestTransformFields(t *testing.T) {
	empty := ""
	zero := 0.0

	fields := shared.TransformFields(statusUpdate{
		Status:     "confirmed",
		AdminNotes: &empty,
		Payment:    &zero,
		Ignored:    "x",
	}, "admin@example.com")

	assert.Equal(t, "confirmed", fields["status"])
	assert.Equal(t, "", fields["admin_notes"])
	assert.Equal(t, 0.0, fields["payment"])
	assert.Equal(t, "admin@example.com", fields[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, fields[constant.FieldModifiedAt])
	assert.Len(t, fields, 5)
}

func TestTransformFieldsSkipsUnset(t *testing.T) {
	fields := shared.TransformFields(&statusUpdate{}, "guest")

	assert.NotContains(t, fields, "status")
	assert.NotContains(t, fields, "admin_notes")
	assert.NotContains(t, fields, "payment")
	assert.Len(t, fields, 2)
}

func TestActor(t *testing.T) {
	assert.Equal(t, constant.ContextGuest, shared.Actor(context.Background()))

	ctx := context.WithValue(context.Background(), constant.ContextKeyAdminEmail, "owner@studio.test")
	assert.Equal(t, "owner@studio.test", shared.Actor(ctx))
}

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("failed to insert data (booking): %w", &pq.Error{Code: "23505"})

	assert.True(t, shared.IsUniqueViolation(wrapped))
	assert.False(t, shared.IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, shared.IsUniqueViolation(errors.New("boom")))
	assert.False(t, shared.IsUniqueViolation(nil))
}

func TestIsValidID(t *testing.T) {
	assert.True(t, shared.IsValidID("7b0d5c0e-2f1a-4d39-9e43-7a1f0f7a2b11"))
	assert.False(t, shared.IsValidID("not-an-id"))
	assert.False(t, shared.IsValidID(""))
}
