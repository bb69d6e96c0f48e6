package middleware

import (
	"errors"
	"net/http"

	"github.com/abisalde/inventory-service/internal/auth"
	customErrors "github.com/abisalde/inventory-service/internal/errors"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler renders every error returned by a handler as
// {message, code, ...extensions}. Errors the application does not know are
// logged in full and answered with the generic internal error.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := auth.Logger(c.UserContext(), logger)

		var appErr *customErrors.AppError
		if errors.As(err, &appErr) {
			status := appErr.Status()
			if status >= fiber.StatusInternalServerError {
				log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
			}
			return c.Status(status).JSON(presentAppError(appErr))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"message": fiberErr.Message,
				"code":    codeForStatus(fiberErr.Code),
			})
		}

		log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(presentAppError(customErrors.ErrSomethingWentWrong))
	}
}

func presentAppError(e *customErrors.AppError) fiber.Map {
	body := fiber.Map{}
	for k, v := range e.Extensions {
		body[k] = v
	}
	body["message"] = e.Message
	body["code"] = e.Type
	return body
}

func codeForStatus(status int) customErrors.ErrorType {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusRequestEntityTooLarge:
		return customErrors.ErrorTypeBadRequest
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return customErrors.ErrorTypeNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return customErrors.ErrorTypeUnauthenticated
	case http.StatusTooManyRequests:
		return customErrors.ErrorTypeRateLimited
	default:
		return customErrors.ErrorTypeInternalServerError
	}
}
