package checkoutadyen

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MarcGrol/adyendemo/lib/myerrors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json name, so the caller recognizes them
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return v
}

// validateRequest returns a validation error naming every missing field, or nil.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return myerrors.NewInvalidInputError(err)
	}

	missing := []string{}
	for _, fieldErr := range validationErrors {
		missing = append(missing, fieldPath(fieldErr))
	}

	return myerrors.NewInvalidInputError(fmt.Errorf("missing required fields: %s", strings.Join(missing, ", ")))
}

// fieldPath turns "PaymentSubmission.stateData.paymentMethod" into "stateData.paymentMethod"
func fieldPath(fieldErr validator.FieldError) string {
	namespace := fieldErr.Namespace()
	idx := strings.Index(namespace, ".")
	if idx < 0 {
		return namespace
	}
	return namespace[idx+1:]
}
