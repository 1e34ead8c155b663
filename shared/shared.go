package shared

import (
	"context"
	"errors"
	"math"
	"reflect"

	"studio/shared/constant"
	"studio/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CalculateTotalPage returns ceil(total/limit); zero rows means zero pages.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}

	return int(math.Ceil(float64(total) / float64(limit)))
}

// TransformFields turns an update request into a column map keyed by `db` tags.
// Nil pointers and zero non-pointer values are skipped; a non-nil pointer is always kept,
// which is how a caller sets a column back to its zero value.
func TransformFields(data any, username string) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(data))
	typ := val.Type()

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		field := val.Field(index)

		switch {
		case field.Kind() == reflect.Pointer:
			if field.IsNil() {
				continue
			}

			updatedFields[fieldName] = field.Elem().Interface()
		case field.IsZero():
			continue
		default:
			updatedFields[fieldName] = field.Interface()
		}
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

// Actor names who performs a write: the signed-in admin's email, or guest.
func Actor(ctx context.Context) string {
	if email, ok := ctx.Value(constant.ContextKeyAdminEmail).(string); ok && email != "" {
		return email
	}

	return constant.ContextGuest
}

// IsUniqueViolation reports whether err carries a Postgres unique_violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
}

// IsValidID reports whether id is a well-formed record id.
func IsValidID(id string) bool {
	return uuid.Validate(id) == nil
}
