// Package validation checks form drafts before they are sent to the API.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"gotera/internal/models"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9 ()-]{7,20}$`)

// IsPhone reports whether s looks like a phone number. The check is loose;
// the API normalises numbers.
func IsPhone(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s))
}

// Errors maps a field's JSON name to a user-facing message.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + e[f]
	}
	return strings.Join(parts, "; ")
}

// Validator wraps go-playground/validator with the form rules.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the phone and timestamp rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	})
	v.RegisterValidation("timestamp", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseTimestamp(fl.Field().String())
		return ok
	})

	return &Validator{validate: v}
}

// Struct validates s. It returns nil or an Errors value.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = message(fe)
		}
	}
	return out
}

// AsErrors extracts field errors from err.
func AsErrors(err error) (Errors, bool) {
	var e Errors
	ok := errors.As(err, &e)
	return e, ok
}

func message(fe validator.FieldError) string {
	label := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "email":
		return "Enter a valid email address"
	case "phone":
		return "Enter a valid phone number"
	case "timestamp":
		return "Enter a valid date"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return label + " is invalid"
	}
}

func humanize(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	s = strings.TrimSuffix(s, " id")
	if s == "" {
		return field
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
