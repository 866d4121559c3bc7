package validator

import (
	"errors"
	"fmt"

	val "github.com/go-playground/validator/v10"
)

// describe turns a failed rule into a sentence about the field.
var describe = map[string]func(field, param string) string{
	"required": func(f, _ string) string { return f + " is required" },
	"email":    func(f, _ string) string { return f + " must be a valid email address" },
	"uuid":     func(f, _ string) string { return f + " must be a valid identifier" },
	"clock":    func(f, _ string) string { return f + " must be a time in HH:MM format" },
	"isodate":  func(f, _ string) string { return f + " must be a date in YYYY-MM-DD format" },
	"oneof":    func(f, p string) string { return fmt.Sprintf("%s must be one of %s", f, p) },
	"eqfield":  func(f, p string) string { return fmt.Sprintf("%s must match %s", f, p) },
	"gt":       func(f, p string) string { return fmt.Sprintf("%s must be greater than %s", f, p) },
	"gte":      func(f, p string) string { return fmt.Sprintf("%s must be at least %s", f, p) },
	"min":      func(f, p string) string { return fmt.Sprintf("%s must be at least %s", f, p) },
	"lte":      func(f, p string) string { return fmt.Sprintf("%s must be at most %s", f, p) },
	"max":      func(f, p string) string { return fmt.Sprintf("%s must be at most %s", f, p) },
}

// message reports the first failed rule that has a description.
func message(err error) string {
	var failed val.ValidationErrors
	if !errors.As(err, &failed) {
		return err.Error()
	}

	for _, fe := range failed {
		if text, ok := describe[fe.Tag()]; ok {
			field := fe.Field()
			if field == "" {
				field = "value"
			}

			return text(field, fe.Param())
		}
	}

	return failed.Error()
}
