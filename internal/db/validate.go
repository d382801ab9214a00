package db

import (
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/tgienger/tm/internal/models"
)

var validate = newValidator()

var messages = map[string]string{
	"required": "{field} is required",
	"oneof":    "{field} must be one of {param}",
}

// taskFields is what the store checks before writing a row
type taskFields struct {
	Title  string `name:"title" validate:"required"`
	Body   string `name:"body" validate:"required"`
	Status string `name:"status" validate:"oneof=Pending Completed"`
}

func newValidator() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("name"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

func validateTask(title, body string, status models.Status) error {
	return validationError(validate.Struct(taskFields{Title: title, Body: body, Status: string(status)}))
}

func validateStatus(status models.Status) error {
	return validationError(validate.Var(string(status), "oneof=Pending Completed"))
}

// validationError converts the first validator failure into a *ValidationError
func validationError(err error) error {
	if err == nil {
		return nil
	}

	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) || len(valErrors) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	first := valErrors[0]
	field := first.Field()
	if field == "" {
		field = "status"
	}

	msg, ok := messages[first.Tag()]
	if !ok {
		msg = "{field} is invalid"
	}
	msg = strings.ReplaceAll(msg, "{field}", field)
	msg = strings.ReplaceAll(msg, "{param}", first.Param())

	return &ValidationError{Field: field, Message: msg}
}
