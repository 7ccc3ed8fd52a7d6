package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pawhaven/adoption-api/internal/application/dto"
	"github.com/pawhaven/adoption-api/internal/application/usecase"
)

// PetHandler handles the pet catalogue routes.
type PetHandler struct {
	uc *usecase.PetUseCase
}

// NewPetHandler builds the handler.
func NewPetHandler(uc *usecase.PetUseCase) *PetHandler {
	return &PetHandler{uc: uc}
}

// Types returns the configured animal-type set.
func (h *PetHandler) Types(c *fiber.Ctx) error {
	return c.JSON(dto.TypesResponse{Types: h.uc.Types()})
}

// Create registers a new pet (admin only). An image reference is required.
func (h *PetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, fieldErrs, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	if !fieldErrs.Empty() {
		return c.Status(fiber.StatusBadRequest).JSON(fieldErrs)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID returns a single pet.
func (h *PetHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pet not found"})
	}
	return c.JSON(out)
}

// Search filters pets by the public query parameters.
func (h *PetHandler) Search(c *fiber.Ctx) error {
	var in dto.SearchPetsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "invalid query parameters"})
	}
	out, fieldErrs, err := h.uc.Search(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	if !fieldErrs.Empty() {
		return c.Status(fiber.StatusBadRequest).JSON(fieldErrs)
	}
	return c.JSON(out)
}

// Update edits a pet's descriptive fields (admin only).
func (h *PetHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdatePetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, fieldErrs, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return domainError(c, err)
	}
	if !fieldErrs.Empty() {
		return c.Status(fiber.StatusBadRequest).JSON(fieldErrs)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pet not found"})
	}
	return c.JSON(out)
}

// ListByCarer returns the pets currently cared for by the :id user.
func (h *PetHandler) ListByCarer(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.ListByCarer(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
