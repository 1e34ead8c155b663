package dto_test

import (
	"encoding/json"
	"strings"
	"testing"

	"studio/internal/domains/booking/model/dto"
	"studio/shared/failure"
	"studio/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    float64
		wantErr bool
	}{
		{name: "number", body: `{"payment": 2500}`, want: 2500},
		{name: "numeric string", body: `{"payment": " 1200.75 "}`, want: 1200.75},
		{name: "zero", body: `{"payment": 0}`, want: 0},
		{name: "word", body: `{"payment": "free"}`, wantErr: true},
		{name: "bool", body: `{"payment": true}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.UpdatePaymentRequest

			err := json.Unmarshal([]byte(tt.body), &req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, req.Payment)
			assert.InDelta(t, tt.want, float64(*req.Payment), 0.0001)
		})
	}
}

func TestUpdatePaymentRequest_Validation(t *testing.T) {
	var req dto.UpdatePaymentRequest

	err := validator.Validate(strings.NewReader(`{"payment": "-5"}`), &req)
	assert.Equal(t, 400, failure.GetCode(err))

	err = validator.Validate(strings.NewReader(`{}`), &req)
	assert.Equal(t, 400, failure.GetCode(err))
	assert.Equal(t, "payment is required", err.Error())
}

func TestCreateBookingRequest_Validation(t *testing.T) {
	valid := `{"name":"Asha","email":"asha@example.com","date":"2026-11-02","time":"10:30","typeOfShoot":"Wedding","phone":"+91","location":"Goa"}`

	var req dto.CreateBookingRequest
	require.NoError(t, validator.Validate(strings.NewReader(valid), &req))

	tests := map[string]string{
		"bad date":      strings.Replace(valid, "2026-11-02", "02/11/2026", 1),
		"bad time":      strings.Replace(valid, "10:30", "10.30am", 1),
		"missing email": strings.Replace(valid, `"email":"asha@example.com",`, "", 1),
		"unknown field": strings.Replace(valid, `"name"`, `"nickname":"A","name"`, 1),
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			var req dto.CreateBookingRequest

			assert.Equal(t, 400, failure.GetCode(validator.Validate(strings.NewReader(body), &req)))
		})
	}

	var allDay dto.CreateBookingRequest
	assert.NoError(t, validator.Validate(strings.NewReader(strings.Replace(valid, `"time":"10:30",`, "", 1)), &allDay))
}
