package failure

import (
	"errors"
	"net/http"
)

// Failure is a client-visible error: its Message is safe to return in a response body.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	ErrInvalidCredentials = newFailure(http.StatusUnauthorized, "Invalid credentials")
	ErrMissingToken       = newFailure(http.StatusUnauthorized, "No token provided")
	ErrInvalidToken       = newFailure(http.StatusUnauthorized, "Invalid or expired token")
	ErrRegistrationClosed = newFailure(http.StatusForbidden, "Admin registration is disabled")
)

func newFailure(code int, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

func (e *Failure) Error() string {
	return e.Message
}

// BadRequest turns a validation error into a 400. A nil error stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, msg)
}

// NotFound reports a missing entity as "<entityName> not found".
func NotFound(entityName string) error {
	return newFailure(http.StatusNotFound, entityName+" not found")
}

// Conflict is a rejected write that collides with existing state.
// The slot guard reports it to clients as 400, see SlotTaken.
func Conflict(message string) error {
	return newFailure(http.StatusConflict, message)
}

// SlotTaken is the conflict raised when a booking slot is already reserved.
func SlotTaken(message string) error {
	return newFailure(http.StatusBadRequest, message)
}

// Processing reports a media transform failure.
func Processing(message string) error {
	return newFailure(http.StatusInternalServerError, message)
}

// GetCode returns the HTTP status carried by err, 500 when err is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// Is reports whether err carries a Failure with the given code.
func Is(err error, code int) bool {
	var fail *Failure

	return errors.As(err, &fail) && fail.Code == code
}
