package request

import (
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"studio/shared/constant"
	"studio/shared/failure"
)

// ParseMultipart caps the body at maxMB and parses the form. Parts beyond
// constant.RequestMaxMemory are spooled to disk by the standard library.
func ParseMultipart(writer http.ResponseWriter, request *http.Request, maxMB int) error {
	request.Body = http.MaxBytesReader(writer, request.Body, int64(maxMB)*constant.MegaByte)

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return failure.BadRequestFromString(fmt.Sprintf("file exceeds the %d MB limit", maxMB))
		}

		return failure.BadRequest(fmt.Errorf("failed to parse multipart form: %w", err))
	}

	return nil
}

// OptionalFile returns the file part named field, or nils when the form has none.
func OptionalFile(request *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := request.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}

	if err != nil {
		return nil, nil, failure.BadRequest(fmt.Errorf("failed to read %s: %w", field, err))
	}

	return file, header, nil
}

// Cleanup removes the temporary files ParseMultipart may have created.
func Cleanup(request *http.Request) {
	if request.MultipartForm != nil {
		_ = request.MultipartForm.RemoveAll()
	}
}

// FormValue is nil when the form does not carry key at all, so updates can tell
// "leave unchanged" from "set to empty".
func FormValue(request *http.Request, key string) *string {
	if request.MultipartForm == nil {
		return nil
	}

	values, ok := request.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}

	return &values[0]
}

// IntValue parses the form field key as an integer; nil when absent or blank.
func IntValue(request *http.Request, key string) (*int, error) {
	raw := FormValue(request, key)
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		return nil, failure.BadRequestFromString(key + " must be a whole number")
	}

	return &value, nil
}

// FloatValue parses the form field key as a number; nil when absent or blank.
func FloatValue(request *http.Request, key string) (*float64, error) {
	raw := FormValue(request, key)
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, failure.BadRequestFromString(key + " must be a number")
	}

	return &value, nil
}
