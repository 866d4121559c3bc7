package failure_test

import (
	"bistro/shared/failure"
	"database/sql/driver"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	assert.Equal(t, "test error message", f.Error())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		kind    failure.Kind
		message string
	}{
		{
			name:    "bad request from string",
			err:     failure.BadRequestFromString("guests must be positive"),
			code:    http.StatusBadRequest,
			kind:    failure.KindInvalidInput,
			message: "guests must be positive",
		},
		{
			name:    "bad request from error",
			err:     failure.BadRequest(errors.New("validation failed")),
			code:    http.StatusBadRequest,
			kind:    failure.KindInvalidInput,
			message: "validation failed",
		},
		{
			name:    "invalid state",
			err:     failure.InvalidState("order is already closed"),
			code:    http.StatusUnprocessableEntity,
			kind:    failure.KindInvalidState,
			message: "order is already closed",
		},
		{
			name:    "insufficient stock",
			err:     failure.InsufficientStock("only 3 left"),
			code:    http.StatusConflict,
			kind:    failure.KindInsufficientStock,
			message: "only 3 left",
		},
		{
			name:    "conflict",
			err:     failure.Conflict("table is booked"),
			code:    http.StatusConflict,
			kind:    failure.KindConflict,
			message: "table is booked",
		},
		{
			name:    "not found",
			err:     failure.NotFound("table not found"),
			code:    http.StatusNotFound,
			kind:    failure.KindNotFound,
			message: "table not found",
		},
		{
			name:    "storage unavailable",
			err:     failure.StorageUnavailable(errors.New("connection refused")),
			code:    http.StatusServiceUnavailable,
			kind:    failure.KindStorageUnavailable,
			message: "connection refused",
		},
		{
			name:    "unauthorized",
			err:     failure.Unauthorized("token expired"),
			code:    http.StatusUnauthorized,
			kind:    failure.KindUnauthorized,
			message: "token expired",
		},
		{
			name:    "forbidden",
			err:     failure.Forbidden("Access denied"),
			code:    http.StatusForbidden,
			kind:    failure.KindForbidden,
			message: "Access denied",
		},
		{
			name:    "internal",
			err:     failure.InternalError(errors.New("boom")),
			code:    http.StatusInternalServerError,
			kind:    failure.KindInternal,
			message: "boom",
		},
		{
			name:    "unimplemented",
			err:     failure.Unimplemented("Export"),
			code:    http.StatusNotImplemented,
			kind:    failure.KindUnimplemented,
			message: "Export",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.kind, failure.GetKind(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
	assert.NoError(t, failure.StorageUnavailable(nil))
	assert.NoError(t, failure.FromStorage(nil, "conflict"))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("saving order: %w", failure.InvalidState("closed")),
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.GetCode(tt.input))
		})
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", failure.InsufficientStock("out of stock"))

	assert.True(t, failure.Is(err, failure.KindInsufficientStock))
	assert.False(t, failure.Is(err, failure.KindConflict))
	assert.False(t, failure.Is(nil, failure.KindInternal))
}

func TestFromStorage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind failure.Kind
	}{
		{
			name: "unique violation",
			err:  &pq.Error{Code: "23505"},
			kind: failure.KindConflict,
		},
		{
			name: "exclusion violation",
			err:  fmt.Errorf("insert: %w", &pq.Error{Code: "23P01"}),
			kind: failure.KindConflict,
		},
		{
			name: "check violation",
			err:  &pq.Error{Code: "23514", Message: "quantity must not be negative"},
			kind: failure.KindInvalidState,
		},
		{
			name: "foreign key violation",
			err:  &pq.Error{Code: "23503", Detail: "Key (id) is still referenced from table \"order_items\"."},
			kind: failure.KindInvalidState,
		},
		{
			name: "connection class",
			err:  &pq.Error{Code: "08006"},
			kind: failure.KindStorageUnavailable,
		},
		{
			name: "bad connection",
			err:  driver.ErrBadConn,
			kind: failure.KindStorageUnavailable,
		},
		{
			name: "existing failure kept",
			err:  failure.NotFound("dish not found"),
			kind: failure.KindNotFound,
		},
		{
			name: "unknown error passes through",
			err:  errors.New("syntax error"),
			kind: failure.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, failure.GetKind(failure.FromStorage(tt.err, "already exists")))
		})
	}
}

func TestNew_UnknownKind(t *testing.T) {
	f := failure.New(failure.Kind("teapot"), "short and stout")

	assert.Equal(t, http.StatusInternalServerError, f.Code)
	assert.Equal(t, failure.Kind("teapot"), f.Kind)
}
