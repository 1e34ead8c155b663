package validator_test

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"studio/shared/validator"

	"github.com/stretchr/testify/assert"
)

type bookingForm struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Date  string `json:"date"  validate:"required,datetime=2006-01-02"`
	Time  string `json:"time"  validate:"omitempty,datetime=15:04"`
	Kind  string `json:"kind"  validate:"omitempty,oneof=wedding portrait"`
}

type uploadForm struct {
	File *multipart.FileHeader `form:"image" validate:"required,mimetypes=image/jpeg image/png,maxfilesize=1"`
}

func TestValidateStruct(t *testing.T) {
	valid := bookingForm{Name: "Asha", Email: "asha@example.com", Date: "2024-05-01", Time: "14:00"}

	tests := []struct {
		name    string
		mutate  func(f *bookingForm)
		message string
	}{
		{name: "valid struct", mutate: func(*bookingForm) {}},
		{name: "empty time is allowed", mutate: func(f *bookingForm) { f.Time = "" }},
		{name: "missing name", mutate: func(f *bookingForm) { f.Name = "" }, message: "name is required"},
		{name: "invalid email", mutate: func(f *bookingForm) { f.Email = "nope" }, message: "email must be a valid email address"},
		{name: "invalid date", mutate: func(f *bookingForm) { f.Date = "01/05/2024" }, message: "date must match the format 2006-01-02"},
		{name: "invalid time", mutate: func(f *bookingForm) { f.Time = "2pm" }, message: "time must match the format 15:04"},
		{name: "invalid kind", mutate: func(f *bookingForm) { f.Kind = "party" }, message: "kind must be one of wedding portrait"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)

			err := validator.ValidateStruct(&form)
			if tt.message == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError bool
	}{
		{name: "valid body", body: `{"name":"Asha","email":"asha@example.com","date":"2024-05-01"}`},
		{name: "malformed body", body: `{"name":`, expectError: true},
		{name: "unknown field", body: `{"name":"Asha","email":"asha@example.com","date":"2024-05-01","status":"confirmed"}`, expectError: true},
		{name: "empty body", body: `{}`, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var form bookingForm

			err := validator.Validate(strings.NewReader(tt.body), &form)
			assert.Equal(t, tt.expectError, err != nil, err)
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar(3, "gte=1,lte=5"))
	assert.Error(t, validator.ValidateVar(6, "gte=1,lte=5"))
	assert.NoError(t, validator.ValidateVar("https://youtu.be/x", "url"))
	assert.Error(t, validator.ValidateVar("not a url", "url"))
}

func TestFileValidation(t *testing.T) {
	header := func(contentType string, size int64) *multipart.FileHeader {
		return &multipart.FileHeader{
			Filename: "photo",
			Header:   textproto.MIMEHeader{"Content-Type": {contentType}},
			Size:     size,
		}
	}

	assert.NoError(t, validator.ValidateStruct(&uploadForm{File: header("image/png", 1024)}))
	assert.Error(t, validator.ValidateStruct(&uploadForm{File: header("application/pdf", 1024)}))
	assert.Error(t, validator.ValidateStruct(&uploadForm{File: header("image/jpeg", 2<<20)}))
	assert.Error(t, validator.ValidateStruct(&uploadForm{}))
}
