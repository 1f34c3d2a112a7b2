package serverutils

import (
	"errors"

	"incorporate-run-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps a service error onto an HTTP status code.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case apperror.IsNotFound(err):
		return fiber.StatusNotFound
	case apperror.IsValidation(err),
		apperror.IsConflict(err),
		errors.Is(err, apperror.ErrInvalidTransition),
		errors.Is(err, apperror.ErrAlreadySigned):
		return fiber.StatusBadRequest
	case errors.Is(err, apperror.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, apperror.ErrUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler is installed as fiber.Config.ErrorHandler so every handler can
// just return its error.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := StatusFor(err)
	message := err.Error()
	if code == fiber.StatusInternalServerError {
		message = "internal server error"
	}

	return ctx.Status(code).JSON(ErrorBody{
		Success: false,
		Code:    code,
		Message: message,
	})
}
