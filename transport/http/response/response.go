package response

import (
	"encoding/json"
	"net/http"

	"coating/shared/constant"
	"coating/shared/failure"
	"coating/shared/logger"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Title string  `json:"title,omitempty"`
	Error *string `json:"error,omitempty"`
	Field string  `json:"field,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// Notice is the title and description pair shown to the user after a submission.
type Notice[T any] struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Data        *T     `json:"data,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	response(writer, code, Data[any]{Data: &jsonPayload})
}

func WithNotice[T any](writer http.ResponseWriter, code int, title, description string, data *T) {
	response(writer, code, Notice[T]{Title: title, Description: description, Data: data})
}

// WithError renders failures with their own message and hides anything else behind the generic one.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	errMsg := failure.GetMessage(err)
	field := failure.GetField(err)

	title := constant.MessageGenericErrorTitle
	if field != constant.Empty {
		title = constant.MessageInvalidInputTitle
	}

	response(writer, code, Error{Title: title, Error: &errMsg, Field: field})
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

func response(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
