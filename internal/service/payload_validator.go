package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const visitDateLayout = "2006-01-02"

// payloadValidator checks request payloads declared with `validate` tags and
// reports violations using their JSON field names.
type payloadValidator struct {
	validate *validator.Validate
}

func newPayloadValidator() *payloadValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("visitdate", func(fl validator.FieldLevel) bool {
		_, err := parseVisitDate(fl.Field().String())
		return err == nil
	})
	return &payloadValidator{validate: v}
}

// check validates payload and returns a *ValidationError of the given kind
// listing every failed field.
func (p *payloadValidator) check(kind error, payload any) error {
	err := p.validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", kind, err)
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fieldMessage(fe))
	}
	return newValidationError(kind, messages)
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "url":
		return field + " must be a valid URL"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "visitdate":
		return field + " must be a date (YYYY-MM-DD) or an RFC3339 timestamp"
	default:
		return field + " is invalid"
	}
}

func parseVisitDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(visitDateLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
