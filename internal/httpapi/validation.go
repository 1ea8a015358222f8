package httpapi

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator builds the request validator. optionCount is the exact number
// of options every created question must carry.
func newValidator(optionCount int) *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterStructValidation(func(sl validator.StructLevel) {
		question := sl.Current().Interface().(questionRequest)
		if question.Options != nil && len(question.Options) != optionCount {
			sl.ReportError(question.Options, "options", "Options", "len", strconv.Itoa(optionCount))
		}
		if question.CorrectOption != nil {
			correct := *question.CorrectOption
			if correct < 1 || correct > len(question.Options) {
				sl.ReportError(question.CorrectOption, "correct_option", "CorrectOption", "range", strconv.Itoa(len(question.Options)))
			}
		}
	}, questionRequest{})

	return validate
}

// validationMessages renders validator errors as short, field-addressed
// messages such as `"questions[0].options" must contain 4 items`.
func validationMessages(err error) []string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describeFieldError(fe))
	}
	return messages
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if idx := strings.Index(field, "."); idx >= 0 {
		field = field[idx+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%q must contain at least %s items", field, fe.Param())
		}
		return fmt.Sprintf("%q must be greater than or equal to %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%q must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%q must be less than or equal to %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("%q must contain %s items", field, fe.Param())
	case "range":
		return fmt.Sprintf("%q must be between 1 and %s", field, fe.Param())
	case "unique":
		return fmt.Sprintf("%q contains a duplicate question id", field)
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}
