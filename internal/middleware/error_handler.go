package middleware

import (
	"errors"

	"donorcrm-backend/internal/pkg/apperrors"
	"donorcrm-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the global error handler. Returns the standard error format.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := statusOf(err)
	message := err.Error()
	var details interface{}

	var ve *apperrors.ValidationError
	if errors.As(err, &ve) && len(ve.Details) > 0 {
		details = ve.Details
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError && code != fiber.StatusNotImplemented {
		log.Error().Err(err).
			Str("trace_id", GetTraceID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", code).
			Msg("request failed")
		if code == fiber.StatusInternalServerError {
			message = "Internal Server Error"
		}
	}
	return response.Error(c, message, code, details)
}

// statusOf is the status ErrorHandler will send for err.
func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return apperrors.HTTPStatus(err)
}

// responseStatus is the final status of a request whose handler chain returned err.
// The global error handler runs after middleware unwinds, so the response code is not yet set.
func responseStatus(c *fiber.Ctx, err error) int {
	if err != nil {
		return statusOf(err)
	}
	return c.Response().StatusCode()
}
