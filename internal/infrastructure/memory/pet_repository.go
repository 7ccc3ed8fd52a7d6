package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/pawhaven/adoption-api/internal/domain"
	"github.com/pawhaven/adoption-api/internal/domain/entity"
	"github.com/pawhaven/adoption-api/internal/domain/repository"
)

var _ repository.PetRepository = (*PetRepo)(nil)

// PetRepo is a mutex-guarded in-memory PetRepository. AdoptIfAvailable and
// ReturnIfCarer evaluate their precondition and apply the mutation under one
// lock hold, matching the conditional-update contract of the port.
type PetRepo struct {
	mu   sync.RWMutex
	byID map[string]entity.Pet
}

// NewPetRepository builds an empty in-memory pet store.
func NewPetRepository() *PetRepo {
	return &PetRepo{byID: make(map[string]entity.Pet)}
}

// Create stores a new pet.
func (r *PetRepo) Create(ctx context.Context, pet *entity.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[pet.ID]; exists {
		return domain.ErrConflict
	}
	r.byID[pet.ID] = clonePet(*pet)
	return nil
}

// GetByID returns a copy of the pet, or (nil, nil) when absent.
func (r *PetRepo) GetByID(ctx context.Context, id string) (*entity.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	c := clonePet(p)
	return &c, nil
}

// Update overwrites descriptive fields, preserving status and carer.
func (r *PetRepo) Update(ctx context.Context, pet *entity.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[pet.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := clonePet(*pet)
	updated.Status = stored.Status
	updated.CarerID = stored.CarerID
	r.byID[pet.ID] = updated
	return nil
}

// Search returns pets matching the filter, newest first.
func (r *PetRepo) Search(ctx context.Context, filter repository.PetFilter) ([]*entity.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []entity.Pet
	for _, p := range r.byID {
		if matches(p, filter) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return cloneAll(matched), nil
}

func matches(p entity.Pet, f repository.PetFilter) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Type != "" && !strings.EqualFold(p.Type, f.Type) {
		return false
	}
	if f.BirthDate != nil && !p.BirthDate.Equal(*f.BirthDate) {
		return false
	}
	if f.MinWeight != nil && p.Weight.LessThan(*f.MinWeight) {
		return false
	}
	if f.MaxWeight != nil && p.Weight.GreaterThan(*f.MaxWeight) {
		return false
	}
	if f.MinHeight != nil && p.Height.LessThan(*f.MinHeight) {
		return false
	}
	if f.MaxHeight != nil && p.Height.GreaterThan(*f.MaxHeight) {
		return false
	}
	if f.Hypoallergenic != nil && p.Hypoallergenic != *f.Hypoallergenic {
		return false
	}
	return true
}

// ListByCarer returns the pets currently held by carerID.
func (r *PetRepo) ListByCarer(ctx context.Context, carerID string) ([]*entity.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []entity.Pet
	for _, p := range r.byID {
		if p.CarerID != nil && *p.CarerID == carerID {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return cloneAll(matched), nil
}

// ListByIDs returns the pets whose IDs are in ids. Missing IDs are skipped.
func (r *PetRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []entity.Pet
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return cloneAll(matched), nil
}

// AdoptIfAvailable flips status and carer iff the pet is still available.
func (r *PetRepo) AdoptIfAvailable(ctx context.Context, petID, carerID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[petID]
	if !ok {
		return domain.ErrNotFound
	}
	if !p.Available() {
		return domain.ErrConflict
	}
	p.Status = status
	p.CarerID = &carerID
	r.byID[petID] = p
	return nil
}

// ReturnIfCarer makes the pet available again iff carerID holds it.
func (r *PetRepo) ReturnIfCarer(ctx context.Context, petID, carerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[petID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Available() || p.CarerID == nil || *p.CarerID != carerID {
		return domain.ErrNotOwner
	}
	p.Status = entity.StatusAvailable
	p.CarerID = nil
	r.byID[petID] = p
	return nil
}

func clonePet(p entity.Pet) entity.Pet {
	if p.CarerID != nil {
		carer := *p.CarerID
		p.CarerID = &carer
	}
	return p
}

func cloneAll(pets []entity.Pet) []*entity.Pet {
	out := make([]*entity.Pet, 0, len(pets))
	for _, p := range pets {
		c := clonePet(p)
		out = append(out, &c)
	}
	return out
}
