package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pawhaven/adoption-api/internal/application/auth"
	"github.com/pawhaven/adoption-api/internal/application/dto"
)

// AuthHandler handles signup, login and account self-service.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler builds the auth handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Signup creates an account and issues a token. Validation failures come back
// as a complete field->message map with status 400.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in dto.SignupRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, fieldErrs, err := h.uc.Signup(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	if !fieldErrs.Empty() {
		return c.Status(fiber.StatusBadRequest).JSON(fieldErrs)
	}
	return c.JSON(out)
}

// Login verifies the credential and issues a token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, fieldErrs, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	if !fieldErrs.Empty() {
		return c.Status(fiber.StatusBadRequest).JSON(fieldErrs)
	}
	return c.JSON(out)
}

// UpdateProfile edits the caller's own profile. The ownership check (subject
// == :id) lives in the use case; a changed email returns a fresh token.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, fieldErrs, err := h.uc.UpdateProfile(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return domainError(c, err)
	}
	if !fieldErrs.Empty() {
		return c.Status(fiber.StatusBadRequest).JSON(fieldErrs)
	}
	return c.JSON(out)
}

// ChangePassword replaces the caller's credential; the old one must verify.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	fieldErrs, err := h.uc.ChangePassword(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return domainError(c, err)
	}
	if !fieldErrs.Empty() {
		return c.Status(fiber.StatusBadRequest).JSON(fieldErrs)
	}
	return c.JSON(fiber.Map{"updated": true})
}
