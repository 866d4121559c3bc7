// Package validator decodes JSON request bodies and checks them against `validate` tags.
// Failures are invalid-input errors whose message names the offending JSON field.
package validator

import (
	"bistro/shared/constant"
	"bistro/shared/failure"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
)

var validate = newValidate()

func layout(format string) val.Func {
	return func(field val.FieldLevel) bool {
		value, ok := field.Field().Interface().(string)
		if !ok {
			return false
		}

		_, err := time.Parse(format, value)

		return err == nil
	}
}

// jsonName reports fields by their JSON name; "-" fields are skipped.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)

	custom := map[string]val.Func{
		"empty":   func(fl val.FieldLevel) bool { return fl.Field().IsZero() },
		"clock":   layout(constant.ClockFormat),
		"isodate": layout(constant.DateOnlyFormat),
	}

	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}

	return v
}

// Validate decodes one JSON document from r into data and validates it.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		if errors.Is(err, io.EOF) {
			return failure.BadRequestFromString("request body is required") //nolint:wrapcheck
		}

		return failure.BadRequest(fmt.Errorf("malformed request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	return check(validate.Struct(data))
}

// ValidateVar checks a single value, such as a path or query parameter, against tag.
func ValidateVar(field any, tag string) error {
	return check(validate.Var(field, tag))
}

func check(err error) error {
	if err == nil {
		return nil
	}

	return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
}
