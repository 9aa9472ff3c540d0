// Package failure carries the HTTP status, user facing message and offending field of an error
// from the services to the response writer.
package failure

import (
	"errors"
	"net/http"

	"coating/shared/constant"
)

type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *Failure) Error() string {
	return e.Message
}

func New(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

var (
	ForbiddenError     = &Failure{Code: http.StatusForbidden, Message: constant.MessageForbidden}
	AdminAccessDenied  = &Failure{Code: http.StatusForbidden, Message: constant.MessageAdminAccessDenied}
	RecordAccessDenied = &Failure{Code: http.StatusForbidden, Message: constant.MessageRecordAccessDenied}
)

// BadRequest exposes err's message with status 400. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

// Validation returns a bad request bound to a single input field.
func Validation(field, msg string) error {
	return &Failure{Code: http.StatusBadRequest, Message: msg, Field: field}
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusInternalServerError, err.Error())
}

// Store hides a record store error behind the generic retry later message.
func Store(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusInternalServerError, constant.MessageStoreFailure)
}

func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

func as(err error) (*Failure, bool) {
	var fail *Failure
	ok := errors.As(err, &fail)

	return fail, ok
}

// GetCode returns the status of err, 500 for anything that is not a Failure.
func GetCode(err error) int {
	if fail, ok := as(err); ok {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetField returns the offending field of a validation failure, or an empty string.
func GetField(err error) string {
	if fail, ok := as(err); ok {
		return fail.Field
	}

	return constant.Empty
}

// GetMessage returns the user facing message. Errors that are not failures are reported
// with the generic store message.
func GetMessage(err error) string {
	if fail, ok := as(err); ok {
		return fail.Message
	}

	return constant.MessageStoreFailure
}
