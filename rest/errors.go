package rest

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-shop/auth"
)

// NewErrorHandler returns the single error translation boundary: every typed
// failure raised below the transport maps here to a status and a response
// body. Internal details are logged, never returned.
func NewErrorHandler(logger auth.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "validation failed",
				"errors":  verrs,
			})
		}

		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			status := richErr.Code
			if status < http.StatusBadRequest {
				switch richErr.Category {
				case goerrors.CategoryAuth:
					status = fiber.StatusUnauthorized
				case goerrors.CategoryAuthz:
					status = fiber.StatusForbidden
				case goerrors.CategoryNotFound:
					status = fiber.StatusNotFound
				case goerrors.CategoryConflict:
					status = fiber.StatusConflict
				case goerrors.CategoryValidation, goerrors.CategoryBadInput:
					status = fiber.StatusBadRequest
				case goerrors.CategoryRateLimit:
					status = fiber.StatusTooManyRequests
				default:
					status = fiber.StatusInternalServerError
				}
			}

			if status >= http.StatusInternalServerError {
				if logger != nil {
					logger.Error("request failed",
						"error", richErr.Message,
						"category", richErr.Category,
						"path", c.Path(),
					)
				}
				return c.Status(status).JSON(fiber.Map{
					"message": "an unexpected error occurred",
				})
			}

			body := fiber.Map{"message": richErr.Message}
			if richErr.TextCode != "" {
				body["code"] = richErr.TextCode
			}
			return c.Status(status).JSON(body)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"message": fiberErr.Message,
			})
		}

		if logger != nil {
			logger.Error("unhandled error", "error", err, "path", c.Path())
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "an unexpected error occurred",
		})
	}
}
