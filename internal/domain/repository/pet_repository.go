package repository

import (
	"context"
	"time"

	"github.com/pawhaven/adoption-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PetFilter narrows a pet search. Zero values mean "no constraint".
type PetFilter struct {
	Name           string
	Status         string
	Type           string
	BirthDate      *time.Time
	MinWeight      *decimal.Decimal
	MaxWeight      *decimal.Decimal
	MinHeight      *decimal.Decimal
	MaxHeight      *decimal.Decimal
	Hypoallergenic *bool
	Limit          int
	Offset         int
}

// PetRepository is the persistence port for Pet (DIP).
//
// AdoptIfAvailable and ReturnIfCarer are compare-and-set operations: the
// precondition and the mutation are one atomic store operation, never a read
// followed by a write. At most one of two racing callers can win.
type PetRepository interface {
	Create(ctx context.Context, pet *entity.Pet) error
	GetByID(ctx context.Context, id string) (*entity.Pet, error)
	Update(ctx context.Context, pet *entity.Pet) error
	Search(ctx context.Context, filter PetFilter) ([]*entity.Pet, error)
	ListByCarer(ctx context.Context, carerID string) ([]*entity.Pet, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Pet, error)

	// AdoptIfAvailable sets status and carer iff the pet is still available.
	// Returns domain.ErrConflict when the pet lost its availability to a
	// concurrent caller, domain.ErrNotFound when no such pet exists.
	AdoptIfAvailable(ctx context.Context, petID, carerID, status string) error

	// ReturnIfCarer clears status and carer iff carerID currently holds the
	// pet. Returns domain.ErrNotOwner when someone else is the carer (or the
	// pet is already available), domain.ErrNotFound when no such pet exists.
	ReturnIfCarer(ctx context.Context, petID, carerID string) error
}
