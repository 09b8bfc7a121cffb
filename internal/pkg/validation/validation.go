package validation

import (
	"fmt"
	"reflect"
	"strings"

	"leaseos-backend/internal/pkg/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so messages match the request body.
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

// Struct validates tagged fields and returns ErrValidation listing every failure.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.ErrValidation.WithMessage("%s", err.Error())
	}
	return apperr.ErrValidation.WithMessage("%s", strings.Join(FormatErrors(errs), "; "))
}

// FormatErrors converts validator errors into readable messages.
func FormatErrors(errs validator.ValidationErrors) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		var msg string
		switch e.Tag() {
		case "required":
			msg = fmt.Sprintf("field '%s' is required", e.Field())
		case "email":
			msg = fmt.Sprintf("field '%s' must be a valid email address", e.Field())
		case "min":
			msg = fmt.Sprintf("field '%s' must be at least %s", e.Field(), e.Param())
		case "max":
			msg = fmt.Sprintf("field '%s' must not exceed %s", e.Field(), e.Param())
		case "oneof":
			msg = fmt.Sprintf("field '%s' must be one of [%s]", e.Field(), e.Param())
		default:
			msg = fmt.Sprintf("field '%s' failed '%s' validation", e.Field(), e.Tag())
		}
		out = append(out, msg)
	}
	return out
}

// BindJSON decodes the request body into dst and validates it.
func BindJSON(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return apperr.ErrValidation.WithMessage("invalid request body: %s", err.Error())
	}
	return Struct(dst)
}

// UUIDParam parses the named route parameter as a uuid.
func UUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperr.ErrValidation.WithMessage("invalid %s: %q", name, c.Params(name))
	}
	return id, nil
}

// UUIDQuery parses an optional query parameter as a uuid. Absent values return nil.
func UUIDQuery(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperr.ErrValidation.WithMessage("invalid %s: %q", name, raw)
	}
	return &id, nil
}
