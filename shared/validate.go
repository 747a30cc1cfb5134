package shared

import (
	"strings"

	"github.com/go-playground/validator"
)

var Validate = validator.New()

// ValidationMessage flattens validator errors into one line, e.g. "Name is required; Email is required"
func ValidationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	msgs := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		msgs = append(msgs, fieldErr.Field()+" is "+fieldErr.Tag())
	}

	return strings.Join(msgs, "; ")
}
