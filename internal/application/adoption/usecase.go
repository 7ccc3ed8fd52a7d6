package adoption

import (
	"context"

	"github.com/pawhaven/adoption-api/internal/domain"
	"github.com/pawhaven/adoption-api/internal/domain/entity"
	"github.com/pawhaven/adoption-api/internal/domain/repository"
)

// AdoptionUseCase drives the pet status transitions. Every transition is a
// single conditional mutation at the store, never a read followed by a write,
// so two racing requests on the same pet resolve to one winner and one
// domain.ErrConflict.
type AdoptionUseCase struct {
	pets repository.PetRepository
}

// NewAdoptionUseCase builds the use case.
func NewAdoptionUseCase(pets repository.PetRepository) *AdoptionUseCase {
	return &AdoptionUseCase{pets: pets}
}

// Adopt takes custody of an available pet. kind selects the target status:
// "adopt" -> owned, "foster" -> fostered. Unknown kinds are rejected before
// any mutation is attempted. The loser of a race gets domain.ErrConflict.
func (uc *AdoptionUseCase) Adopt(ctx context.Context, petID, userID, kind string) error {
	status, ok := entity.StatusForKind(kind)
	if !ok {
		return domain.ErrInvalidInput
	}
	return uc.pets.AdoptIfAvailable(ctx, petID, userID, status)
}

// Return gives a fostered or owned pet back. Only the current carer may
// return it; anyone else gets domain.ErrNotOwner with no state change.
func (uc *AdoptionUseCase) Return(ctx context.Context, petID, userID string) error {
	return uc.pets.ReturnIfCarer(ctx, petID, userID)
}
