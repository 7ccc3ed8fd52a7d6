package adoption

import (
	"context"

	"github.com/pawhaven/adoption-api/internal/domain"
	"github.com/pawhaven/adoption-api/internal/domain/entity"
	"github.com/pawhaven/adoption-api/internal/domain/repository"
)

// SavedUseCase maintains a user's saved-pet set. Save and Remove are
// idempotent: repeating a call is safe and converges to the same end state.
// The membership guard is part of the store mutation, so concurrent duplicate
// saves cannot create duplicate entries.
type SavedUseCase struct {
	users repository.UserRepository
	pets  repository.PetRepository
}

// NewSavedUseCase builds the use case.
func NewSavedUseCase(users repository.UserRepository, pets repository.PetRepository) *SavedUseCase {
	return &SavedUseCase{users: users, pets: pets}
}

// Save adds petID to the user's saved set. The pet must exist at save time;
// the registry tolerates later deletion of the referent. Returns false when
// nothing changed (already saved).
func (uc *SavedUseCase) Save(ctx context.Context, userID, petID string) (bool, error) {
	pet, err := uc.pets.GetByID(ctx, petID)
	if err != nil {
		return false, err
	}
	if pet == nil {
		return false, domain.ErrNotFound
	}
	return uc.users.SavePet(ctx, userID, petID)
}

// Remove deletes petID from the user's saved set. Returns false when nothing
// changed (was not saved); that is a no-op, not an error.
func (uc *SavedUseCase) Remove(ctx context.Context, userID, petID string) (bool, error) {
	return uc.users.RemoveSavedPet(ctx, userID, petID)
}

// ListSaved returns the pets in userID's saved set that still exist.
func (uc *SavedUseCase) ListSaved(ctx context.Context, userID string) ([]*entity.Pet, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return uc.pets.ListByIDs(ctx, user.SavedPetIDs)
}
