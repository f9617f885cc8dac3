// Package validation wraps go-playground/validator with the rules and
// messages the booking, feedback and admin forms use.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"cinecraft/internal/domain"
	"cinecraft/internal/utils"

	"github.com/go-playground/validator/v10"
)

var looseEmail = regexp.MustCompile(`\S+@\S+\.\S+`)

// Now is swapped in tests to pin "today".
var Now = time.Now

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
			return IsEmail(fl.Field().String())
		})
		_ = v.RegisterValidation("notpast", func(fl validator.FieldLevel) bool {
			past, err := utils.DateInPast(fl.Field().String(), Now())
			return err == nil && !past
		})
		_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			_, err := utils.ParseHM(fl.Field().String())
			return err == nil
		})
		validate = v
	})
	return validate
}

// IsEmail applies the site's permissive email check.
func IsEmail(s string) bool {
	return looseEmail.MatchString(strings.TrimSpace(s))
}

// Validate checks v and returns a domain.ValidationError with one message per field.
func Validate(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.ValidationError{Msg: "invalid payload", Err: err}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = message(name, fe)
	}
	return domain.ValidationError{Fields: fields, Err: err}
}

// MsgPastDate is reported by the notpast tag for well-formed dates.
const MsgPastDate = "Date cannot be in the past"

var labels = map[string]string{
	"name":        "Name",
	"email":       "Email",
	"phone":       "Phone number",
	"date":        "Date",
	"time":        "Time",
	"title":       "Title",
	"price":       "Price",
	"description": "Description",
	"message":     "Message",
	"password":    "Password",
}

func label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return strings.ReplaceAll(field, "_", " ")
}

func message(field string, fe validator.FieldError) string {
	switch {
	case field == "service_id" && fe.Tag() == "required":
		return "Please select a service"
	case field == "rating":
		return "Please provide a rating"
	case field == "message" && fe.Tag() == "required":
		return "Please share your feedback"
	}
	switch fe.Tag() {
	case "required":
		return label(field) + " is required"
	case "loose_email":
		return "Email is invalid"
	case "notpast":
		if _, err := utils.ParseDate(fe.Value().(string)); err != nil {
			return "Date must be YYYY-MM-DD"
		}
		return MsgPastDate
	case "hhmm":
		return "Time must be HH:MM"
	case "datetime":
		return label(field) + " must be YYYY-MM-DD"
	case "oneof":
		return label(field) + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return label(field) + " must be at least " + fe.Param() + " characters"
	case "gte":
		return label(field) + " must not be negative"
	}
	return label(field) + " is invalid"
}
