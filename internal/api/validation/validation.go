package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/hrms-service/pkg/util/errorutil"
)

// Validator decodes request bodies and checks their `validate` tags. Failures
// come back as VALIDATION_FAILED domain errors keyed by JSON field name.
type Validator struct {
	validate *validator.Validate
}

// New returns a validator that reports fields by their JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return &Validator{validate: v}
}

// Bind parses the JSON body into out and validates it.
func (v *Validator) Bind(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return apperrors.NewValidationError("invalid request body", map[string]any{"body": "Request body is empty"})
	}
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid request body", map[string]any{"body": formatDecodeError(err)})
	}
	return v.Struct(out)
}

// Struct validates an already decoded value.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return apperrors.NewInternalError(err)
	}
	details := make(map[string]any, len(ve))
	for _, fe := range ve {
		if _, seen := details[fe.Field()]; !seen {
			details[fe.Field()] = formatFieldError(fe)
		}
	}
	return apperrors.NewValidationError("request validation failed", details)
}

func formatDecodeError(err error) string {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Sprintf("Invalid JSON at byte offset %d", syntaxErr.Offset)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("Field '%s' should be of type %s", typeErr.Field, typeErr.Type.String())
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusUnprocessableEntity {
		return "Content-Type must be application/json"
	}
	return err.Error()
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(fe.Param()), ", "))
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	}
	return fmt.Sprintf("failed validation for '%s'", fe.Tag())
}
