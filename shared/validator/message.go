package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required": "{field} is required",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be less than or equal to {param}",
		"min":      "{field} must be greater than or equal to {param}",
		"email":    "{field} must be a valid email address",
		"eqfield":  "{field} must match {param}",
		"datetime": "{field} must match the format {param}",
		"self":     "{field} has an unsupported value",

		"mimetypes":   "{field} must be one of {param}",
		"maxfilesize": "{field} must not exceed {param} MB",
	}
)

// messenger is implemented by request structs that carry their own user facing messages.
// Keys are "field.tag" for a single rule or "field" for every rule of that field.
type messenger interface {
	ValidationMessages() map[string]string
}

// FieldMessages is a helper type for request structs to declare their message table.
type FieldMessages map[string]string

func (m FieldMessages) lookup(field, tag string) string {
	if msg, ok := m[field+"."+tag]; ok {
		return msg
	}

	return m[field]
}

func message(err error, data any) (field string, msg string) {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return "", err.Error()
	}

	var custom FieldMessages
	if m, ok := data.(messenger); ok {
		custom = m.ValidationMessages()
	}

	for _, valErr := range valErrors {
		field = valErr.Field()
		param := valErr.Param()

		if msg = custom.lookup(field, valErr.Tag()); msg != "" {
			return field, msg
		}

		msg = messages[valErr.Tag()]
		if msg != "" {
			msg = strings.ReplaceAll(msg, "{field}", field)
			msg = strings.ReplaceAll(msg, "{param}", param)

			return field, msg
		}
	}

	return field, valErrors.Error()
}
