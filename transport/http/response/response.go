// Package response writes the JSON envelopes shared by every endpoint: {"data": ...} on
// success, {"message": ...} for plain acknowledgements and {"error", "kind"} on failure.
package response

import (
	"bistro/shared/constant"
	"bistro/shared/failure"
	"bistro/shared/logger"
	"encoding/json"
	"errors"
	"net/http"
)

const errInternal = "internal server error"

type Data[T any] struct {
	Data T `json:"data"`
}

type Error struct {
	Error string       `json:"error"`
	Kind  failure.Kind `json:"kind,omitempty"`
}

type Message struct {
	Message string `json:"message"`
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: payload})
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: message})
}

// WithError maps err onto its status and kind. Anything that is not a *failure.Failure is
// logged and reported as an internal error without its text.
func WithError(writer http.ResponseWriter, err error) {
	body := Error{Error: errInternal, Kind: failure.GetKind(err)}

	var fail *failure.Failure
	if errors.As(err, &fail) {
		body.Error = fail.Message
	} else {
		logger.ErrorWithStack(err)
	}

	write(writer, failure.GetCode(err), body)
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		http.Error(writer, errInternal, http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err := writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
