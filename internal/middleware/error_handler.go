package middleware

import (
	"errors"

	"leaseos-backend/internal/pkg/apperr"
	"leaseos-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the global error handler. Returns the standard error format.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return response.Error(c, fe.Message, fe.Code, nil)
	}
	if _, ok := apperr.As(err); ok {
		return response.Fail(c, err)
	}
	log.Error().Err(err).Str("trace_id", GetTraceID(c)).Str("path", c.Path()).Msg("unhandled error")
	return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
}
