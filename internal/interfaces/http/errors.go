package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/pawhaven/adoption-api/internal/application/dto"
	"github.com/pawhaven/adoption-api/internal/domain"
	"github.com/rs/zerolog/log"
)

// domainError maps the domain error taxonomy onto HTTP statuses:
// 400 failed precondition, 403 privilege/ownership, 404 missing resource,
// 500 everything else (store failures included).
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "resource not found"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "pet is no longer available"})
	case errors.Is(err, domain.ErrNotOwner):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NOT_OWNER", Message: "only the current carer may return this pet"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "you may only modify your own profile"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid input"})
	default:
		// Store errors carry internals (DSNs, SQL); log them, answer generic.
		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "internal server error"})
	}
}
