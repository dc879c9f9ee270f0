package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kanishkarathore/mosspay-project/internal/apperr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json field names so messages match the request body
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates in against its `validate` tags and turns the first failure
// into an apperr ValidationError.
func Struct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return apperr.Validation("%v", err)
	}

	fe := ves[0]
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return apperr.Validation("%s is required", field)
	case "min":
		return apperr.Validation("%s must have at least %s entries", field, fe.Param())
	case "gt":
		return apperr.Validation("%s must be greater than %s", field, fe.Param())
	case "gte":
		return apperr.Validation("%s must be at least %s", field, fe.Param())
	case "lte":
		return apperr.Validation("%s must be at most %s", field, fe.Param())
	case "email":
		return apperr.Validation("%s must be an email address", field)
	default:
		return apperr.Validation("%s failed %s", field, fe.Tag())
	}
}

// fieldPath drops the struct type name validator puts at the front.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
