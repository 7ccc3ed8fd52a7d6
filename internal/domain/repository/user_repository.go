package repository

import (
	"context"

	"github.com/pawhaven/adoption-api/internal/domain/entity"
)

// UserRepository is the persistence port for User (DIP).
//
// SavePet and RemoveSavedPet are conditional mutations: the membership check
// and the set update happen as one atomic store operation, so concurrent
// duplicate saves cannot create duplicate entries. The bool result reports
// whether anything changed; a missing user is domain.ErrUserNotFound in every
// adapter.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)

	// SavePet adds petID to the user's saved set iff not already a member.
	SavePet(ctx context.Context, userID, petID string) (bool, error)
	// RemoveSavedPet removes petID from the user's saved set iff present.
	RemoveSavedPet(ctx context.Context, userID, petID string) (bool, error)
}
