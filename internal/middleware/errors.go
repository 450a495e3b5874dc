package middleware

import (
	"errors"

	"catalog/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ErrorHandler renders every error as the catalog error envelope. Client
// errors are logged at warn level, server errors at error level.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		appErr := toAppError(err)
		status := appErr.Status()

		event := log.Warn()
		if status >= fiber.StatusInternalServerError {
			event = log.Error()
		}
		event.Err(err).
			Str("code", appErr.Code.String()).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Msg("request failed")

		return c.Status(status).JSON(appErr.Envelope())
	}
}

func toAppError(err error) *apperror.Error {
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		return apperror.From(err)
	}
	var code apperror.Code
	switch fe.Code {
	case fiber.StatusNotFound:
		code = apperror.CodeNotFound
	case fiber.StatusRequestTimeout:
		code = apperror.CodeAPITimeout
	case fiber.StatusTooManyRequests:
		code = apperror.CodeAPIRateLimitExceeded
	case fiber.StatusServiceUnavailable:
		code = apperror.CodeAPIServiceUnavailable
	case fiber.StatusRequestEntityTooLarge, fiber.StatusUnprocessableEntity:
		code = apperror.CodeAPIInvalidRequest
	case fiber.StatusUnauthorized:
		code = apperror.CodeUnauthorized
	case fiber.StatusForbidden:
		code = apperror.CodeForbidden
	default:
		if fe.Code < fiber.StatusInternalServerError {
			code = apperror.CodeBadRequest
		} else {
			code = apperror.CodeInternal
		}
	}
	return apperror.Newf(code, "%s", fe.Message).WithCause(err)
}
