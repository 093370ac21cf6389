package usecase

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// messageForTag returns a user-friendly message based on the validation tag.
func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "invalid email"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	default:
		return "invalid value"
	}
}

// validateStruct runs the struct tags of s and collects every failing field
// into an *entity.ValidationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	violations := make([]entity.Violation, 0, len(errs))
	for _, fe := range errs {
		violations = append(violations, entity.Violation{
			Field:   fe.Field(),
			Message: messageForTag(fe),
		})
	}

	return entity.NewValidationError(violations)
}

// urlViolations checks a target URL against every rule and reports all that fail.
func urlViolations(field, rawURL string) []entity.Violation {
	if rawURL == "" {
		return []entity.Violation{{Field: field, Message: "this field is required"}}
	}

	var violations []entity.Violation

	if utf8.RuneCountInString(rawURL) > entity.MaxURLLength {
		violations = append(violations, entity.Violation{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", entity.MaxURLLength),
		})
	}

	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() {
		return append(violations, entity.Violation{Field: field, Message: "must be an absolute url"})
	}

	if scheme := strings.ToLower(u.Scheme); scheme != "http" && scheme != "https" {
		violations = append(violations, entity.Violation{Field: field, Message: "scheme must be http or https"})
	}

	if u.Hostname() == "" {
		violations = append(violations, entity.Violation{Field: field, Message: "host must not be empty"})
	}

	return violations
}
