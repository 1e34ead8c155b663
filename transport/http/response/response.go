package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"studio/shared/constant"
	"studio/shared/failure"
	"studio/shared/logger"

	"github.com/rs/zerolog/log"
)

type Message struct {
	Message string `json:"message"`
}

// Error is the body of every failed request.
type Error struct {
	Message string `json:"message"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: message})
}

// WithJSON sends payload as the response body
func WithJSON(writer http.ResponseWriter, code int, payload any) {
	response(writer, code, payload)
}

// WithError sends the message of a failure.Failure with its code.
// Any other error is logged and answered with 500 and fallback, so internals never reach the client.
func WithError(writer http.ResponseWriter, err error, fallback string) {
	var fail *failure.Failure
	if errors.As(err, &fail) {
		response(writer, fail.Code, Error{Message: fail.Message})

		return
	}

	log.Error().Err(err).Msg(fallback)

	if fallback == "" {
		fallback = constant.ResponseErrorInternal
	}

	response(writer, http.StatusInternalServerError, Error{Message: fallback})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(response); err != nil {
		logger.ErrorWithStack(err)
	}
}
