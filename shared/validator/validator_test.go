package validator_test

import (
	"bistro/shared/failure"
	"bistro/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type bookingForm struct {
	TableID string `json:"table_id" validate:"required"`
	Date    string `json:"date"     validate:"required,isodate"`
	Start   string `json:"start"    validate:"required,clock"`
	End     string `json:"end"      validate:"required,clock"`
	Guests  int    `json:"guests"   validate:"gt=0,lte=50"`
	Status  string `json:"status"   validate:"omitempty,oneof=active cancelled"`
}

func validForm() bookingForm {
	return bookingForm{TableID: "t-1", Date: "2024-03-15", Start: "10:00", End: "11:00", Guests: 2}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(f *bookingForm)
		expectError bool
		message     string
	}{
		{
			name:   "valid form",
			mutate: func(_ *bookingForm) {},
		},
		{
			name:        "missing table",
			mutate:      func(f *bookingForm) { f.TableID = "" },
			expectError: true,
			message:     "table_id is required",
		},
		{
			name:        "malformed date",
			mutate:      func(f *bookingForm) { f.Date = "15/03/2024" },
			expectError: true,
			message:     "date must be a date in YYYY-MM-DD format",
		},
		{
			name:        "malformed clock",
			mutate:      func(f *bookingForm) { f.Start = "10h" },
			expectError: true,
			message:     "start must be a time in HH:MM format",
		},
		{
			name:        "out of range clock",
			mutate:      func(f *bookingForm) { f.End = "24:30" },
			expectError: true,
		},
		{
			name:        "zero guests",
			mutate:      func(f *bookingForm) { f.Guests = 0 },
			expectError: true,
			message:     "guests must be greater than 0",
		},
		{
			name:        "unknown status",
			mutate:      func(f *bookingForm) { f.Status = "pending" },
			expectError: true,
			message:     "status must be one of active cancelled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			err := validator.ValidateStruct(&form)

			if !tt.expectError {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, failure.KindInvalidInput, failure.GetKind(err))

			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{name: "valid clock", field: "23:59", tag: "clock"},
		{name: "invalid clock", field: "7pm", tag: "clock", expectError: true},
		{name: "valid date", field: "2024-02-29", tag: "isodate"},
		{name: "invalid date", field: "2023-02-29", tag: "isodate", expectError: true},
		{name: "positive quantity", field: 3, tag: "gt=0"},
		{name: "zero quantity", field: 0, tag: "gt=0", expectError: true},
		{name: "empty allowed", field: "", tag: "empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:     "valid JSON",
			jsonBody: `{"table_id":"t-1","date":"2024-03-15","start":"10:00","end":"11:00","guests":4}`,
		},
		{
			name:        "invalid field",
			jsonBody:    `{"table_id":"t-1","date":"2024-03-15","start":"10:00","end":"11:00","guests":-1}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"table_id":}`,
			expectError: true,
		},
		{
			name:        "empty body",
			jsonBody:    "",
			expectError: true,
		},
		{
			name:        "wrong type",
			jsonBody:    `{"table_id":"t-1","guests":"four"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data bookingForm
			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, failure.KindInvalidInput, failure.GetKind(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_EmptyBodyMessage(t *testing.T) {
	var data bookingForm

	err := validator.Validate(strings.NewReader(""), &data)

	assert.EqualError(t, err, "request body is required")
}

func TestValidateVar_Message(t *testing.T) {
	err := validator.ValidateVar("", "required")

	assert.EqualError(t, err, "value is required")
}
