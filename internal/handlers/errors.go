package handlers

import (
	"errors"

	apperrors "corebank/internal/errors"
	"corebank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// respondError translates a service error into an HTTP response. Domain
// errors carry their code; anything else is an opaque 500.
func respondError(c *fiber.Ctx, err error) error {
	var derr *apperrors.DomainError
	if errors.As(err, &derr) {
		return c.Status(domainStatus(derr)).JSON(fiber.Map{
			"code":  derr.Code,
			"error": derr.Message,
		})
	}
	return utils.InternalError(c, "internal error")
}

func domainStatus(err *apperrors.DomainError) int {
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrAccountNotFound),
		errors.Is(err, apperrors.ErrTransactionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrOwnerMismatch):
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}
