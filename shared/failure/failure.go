package failure

import (
	"database/sql/driver"
	"errors"
	"net"
	"net/http"

	"github.com/lib/pq"
)

// Kind is the machine-readable category carried by every Failure.
type Kind string

const (
	KindInvalidInput       Kind = "invalid_input"
	KindInvalidState       Kind = "invalid_state"
	KindInsufficientStock  Kind = "insufficient_stock"
	KindConflict           Kind = "conflict"
	KindNotFound           Kind = "not_found"
	KindStorageUnavailable Kind = "storage_unavailable"
	KindUnauthorized       Kind = "unauthorized"
	KindForbidden          Kind = "forbidden"
	KindInternal           Kind = "internal"
	KindUnimplemented      Kind = "unimplemented"
)

// statusOf is the HTTP status each kind is answered with.
var statusOf = map[Kind]int{
	KindInvalidInput:       http.StatusBadRequest,
	KindInvalidState:       http.StatusUnprocessableEntity,
	KindInsufficientStock:  http.StatusConflict,
	KindConflict:           http.StatusConflict,
	KindNotFound:           http.StatusNotFound,
	KindStorageUnavailable: http.StatusServiceUnavailable,
	KindUnauthorized:       http.StatusUnauthorized,
	KindForbidden:          http.StatusForbidden,
	KindInternal:           http.StatusInternalServerError,
	KindUnimplemented:      http.StatusNotImplemented,
}

// Postgres SQLSTATE values FromStorage understands.
const (
	sqlUniqueViolation    = "23505"
	sqlExclusionViolation = "23P01"
	sqlCheckViolation     = "23514"
	sqlForeignKey         = "23503"
	sqlClassConnection    = "08"
)

// Failure is an error that knows how it should be reported to a caller.
type Failure struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// ForbiddenError is the stock refusal for a role that lacks a capability.
var ForbiddenError = New(KindForbidden, "You don't have the required permissions")

func (e *Failure) Error() string {
	return e.Message
}

// New builds a Failure of the given kind.
func New(kind Kind, msg string) *Failure {
	code, ok := statusOf[kind]
	if !ok {
		code = http.StatusInternalServerError
	}

	return &Failure{Code: code, Kind: kind, Message: msg}
}

// wrap keeps nil as nil so callers can pass a result straight through.
func wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}

	return New(kind, err.Error())
}

func BadRequest(err error) error { return wrap(KindInvalidInput, err) }

func BadRequestFromString(msg string) error { return New(KindInvalidInput, msg) }

// InvalidState is returned when an action is not permitted from the entity's current state.
func InvalidState(msg string) error { return New(KindInvalidState, msg) }

// InsufficientStock is returned when a requested quantity exceeds what is available.
func InsufficientStock(msg string) error { return New(KindInsufficientStock, msg) }

func StorageUnavailable(err error) error { return wrap(KindStorageUnavailable, err) }

func Unauthorized(msg string) error { return New(KindUnauthorized, msg) }

func InternalError(err error) error { return wrap(KindInternal, err) }

func Unimplemented(method string) error { return New(KindUnimplemented, method) }

func NotFound(msg string) error { return New(KindNotFound, msg) }

func Conflict(msg string) error { return New(KindConflict, msg) }

func Forbidden(msg string) error { return New(KindForbidden, msg) }

// FromStorage translates driver errors. Unique and exclusion violations become Conflict
// with conflictMsg, check and foreign key violations become InvalidState, and a lost
// connection becomes StorageUnavailable. Anything else is returned unchanged.
func FromStorage(err error, conflictMsg string) error {
	if err == nil {
		return nil
	}

	var fail *Failure
	if errors.As(err, &fail) {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case sqlUniqueViolation, sqlExclusionViolation:
			return Conflict(conflictMsg)
		case sqlCheckViolation:
			return InvalidState(pqErr.Message)
		case sqlForeignKey:
			return InvalidState(pqErr.Detail)
		}

		if pqErr.Code.Class() == sqlClassConnection {
			return StorageUnavailable(err)
		}

		return err
	}

	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return StorageUnavailable(err)
	}

	return err
}

func as(err error) (*Failure, bool) {
	var fail *Failure
	ok := errors.As(err, &fail)

	return fail, ok
}

// GetCode returns the HTTP status of err, 500 for anything that is not a Failure.
func GetCode(err error) int {
	if fail, ok := as(err); ok {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the kind of err, KindInternal for foreign errors.
func GetKind(err error) Kind {
	if fail, ok := as(err); ok {
		return fail.Kind
	}

	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && GetKind(err) == kind
}
