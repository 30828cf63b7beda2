package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"donorcrm-backend/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON name so messages match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Struct validates v against its `validate` tags and, when v implements
// Validate() error, the model-level rules. Failures come back as *apperrors.ValidationError.
func Struct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		return fromFieldErrors(fieldErrs)
	}
	if m, ok := v.(interface{ Validate() error }); ok {
		if err := m.Validate(); err != nil {
			var ve *apperrors.ValidationError
			if errors.As(err, &ve) {
				return ve
			}
			return &apperrors.ValidationError{Message: "Validation failed: " + err.Error()}
		}
	}
	return nil
}

func fromFieldErrors(errs validator.ValidationErrors) *apperrors.ValidationError {
	details := make(map[string]string, len(errs))
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msg := describe(fe)
		details[fe.Field()] = msg
		msgs = append(msgs, fe.Field()+" "+msg)
	}
	sort.Strings(msgs)
	return &apperrors.ValidationError{
		Message: "Validation failed: " + strings.Join(msgs, ", "),
		Details: details,
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "len":
		return "must have length " + fe.Param()
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}
