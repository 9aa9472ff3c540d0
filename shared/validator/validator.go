package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"coating/shared/constant"
	"coating/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// normalizer is implemented by request structs that clean their input (trim, case) before validation.
type normalizer interface {
	Normalize()
}

// selfValidator is implemented by field types that know their own allowed values.
type selfValidator interface {
	Validate() error
}

// ValidateFile checks an uploaded file against the allowed content types and a size limit in megabytes.
func ValidateFile(field string, header *multipart.FileHeader, allowedTypes []string, maxSizeMB float64) error {
	if header == nil {
		return failure.Validation(field, strings.ReplaceAll(messages["required"], "{field}", field)) //nolint:wrapcheck
	}

	contentType := header.Header.Get(constant.RequestHeaderContentType)
	if !slices.Contains(allowedTypes, contentType) {
		msg := strings.ReplaceAll(messages["mimetypes"], "{field}", field)

		return failure.Validation(field, strings.ReplaceAll(msg, "{param}", strings.Join(allowedTypes, ", "))) //nolint:wrapcheck
	}

	const bytesPerMB = 1024 * 1024
	if float64(header.Size) > maxSizeMB*bytesPerMB {
		msg := strings.ReplaceAll(messages["maxfilesize"], "{field}", field)

		return failure.Validation(field, strings.ReplaceAll(msg, "{param}", strconv.FormatFloat(maxSizeMB, 'f', -1, 64))) //nolint:wrapcheck
	}

	return nil
}

func registerSelfValidation(field val.FieldLevel) bool {
	if !field.Field().CanInterface() {
		return false
	}

	if v, ok := field.Field().Interface().(selfValidator); ok {
		return v.Validate() == nil
	}

	return false
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return constant.Empty
	}

	if name == constant.Empty {
		return field.Name
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	err := validate.RegisterValidation("self", registerSelfValidation)
	if err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

// ValidateStruct normalizes data when it supports it and reports the first violated rule
// in field declaration order as a field bound failure.
func ValidateStruct[T any](data *T) error {
	if n, ok := any(data).(normalizer); ok {
		n.Normalize()
	}

	err := validate.Struct(data)

	if err != nil {
		field, msg := message(err, data)

		return failure.Validation(field, msg) //nolint:wrapcheck
	}

	return nil
}
