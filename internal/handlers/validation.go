package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"sportshop/internal/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseAndValidate decodes the request body into req and runs its validate
// tags. Failures come back as apperror.FieldErrors.
func parseAndValidate(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fmt.Errorf("invalid request body: %w", apperror.ErrValidation)
	}
	return validateStruct(req)
}

func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", apperror.ErrValidation, err)
	}

	fields := apperror.FieldErrors{}
	for _, e := range validationErrors {
		fields[fieldPath(e)] = fmt.Sprintf("failed on the '%s' tag", e.Tag())
	}
	return fields
}

// fieldPath drops the struct name from the namespace, e.g.
// "createOrderRequest.products[0].quantity" becomes "products[0].quantity".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}
