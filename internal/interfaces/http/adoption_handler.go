package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/pawhaven/adoption-api/internal/application/adoption"
	"github.com/pawhaven/adoption-api/internal/application/dto"
)

// AdoptionHandler handles the state-transition routes: adopt, return, and the
// saved-pet set.
type AdoptionHandler struct {
	adoptUC *adoption.AdoptionUseCase
	savedUC *adoption.SavedUseCase
}

// NewAdoptionHandler builds the handler.
func NewAdoptionHandler(adoptUC *adoption.AdoptionUseCase, savedUC *adoption.SavedUseCase) *AdoptionHandler {
	return &AdoptionHandler{adoptUC: adoptUC, savedUC: savedUC}
}

// Adopt takes custody of an available pet for the authenticated subject.
// A lost race surfaces as 400 CONFLICT; the client decides whether to retry.
func (h *AdoptionHandler) Adopt(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.AdoptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.Kind == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FieldErrors{"kind": "kind must be adopt or foster"})
	}
	if err := h.adoptUC.Adopt(c.Context(), id, GetUserID(c), in.Kind); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"adopted": true, "kind": in.Kind})
}

// Return gives a pet back; only the current carer may do so.
func (h *AdoptionHandler) Return(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.adoptUC.Return(c.Context(), id, GetUserID(c)); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"returned": true})
}

// Save adds the pet to the subject's saved set (idempotent).
func (h *AdoptionHandler) Save(c *fiber.Ctx) error {
	// The param string aliases fasthttp's request buffer; the saved set keeps
	// it past this request, so it must be copied.
	id := utils.CopyString(c.Params("id"))
	changed, err := h.savedUC.Save(c.Context(), GetUserID(c), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"saved": true, "changed": changed})
}

// Unsave removes the pet from the subject's saved set (idempotent).
func (h *AdoptionHandler) Unsave(c *fiber.Ctx) error {
	id := utils.CopyString(c.Params("id"))
	changed, err := h.savedUC.Remove(c.Context(), GetUserID(c), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"saved": false, "changed": changed})
}

// ListSaved returns the saved pets of the :id user.
func (h *AdoptionHandler) ListSaved(c *fiber.Ctx) error {
	id := c.Params("id")
	pets, err := h.savedUC.ListSaved(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	items := make([]dto.PetResponse, 0, len(pets))
	for _, p := range pets {
		items = append(items, dto.PetResponse{
			ID:             p.ID,
			Name:           p.Name,
			Type:           p.Type,
			Breed:          p.Breed,
			Color:          p.Color,
			Diet:           p.Diet,
			Bio:            p.Bio,
			BirthDate:      p.BirthDate,
			Weight:         p.Weight,
			Height:         p.Height,
			Hypoallergenic: p.Hypoallergenic,
			ImageFileName:  p.ImageFileName,
			Status:         p.Status,
			CarerID:        p.CarerID,
			CreatedAt:      p.CreatedAt,
			UpdatedAt:      p.UpdatedAt,
		})
	}
	return c.JSON(items)
}
