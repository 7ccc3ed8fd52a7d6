package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pawhaven/adoption-api/internal/domain"
	"github.com/pawhaven/adoption-api/internal/domain/entity"
	"github.com/pawhaven/adoption-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo is a mutex-guarded in-memory UserRepository, used by tests and
// local development. Each exported method is atomic relative to concurrent
// calls, which is what gives SavePet/RemoveSavedPet their compare-and-set
// semantics.
type UserRepo struct {
	mu   sync.RWMutex
	byID map[string]entity.User
}

// NewUserRepository builds an empty in-memory user store.
func NewUserRepository() *UserRepo {
	return &UserRepo{byID: make(map[string]entity.User)}
}

// Create stores a new user. Enforces email uniqueness like the real store.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.byID[user.ID] = cloneUser(*user)
	return nil
}

// GetByID returns a copy of the user, or (nil, nil) when absent.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	c := cloneUser(u)
	return &c, nil
}

// GetByEmail returns a copy of the user, or (nil, nil) when absent.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byID {
		if u.Email == email {
			c := cloneUser(u)
			return &c, nil
		}
	}
	return nil, nil
}

// Update overwrites profile fields, preserving the stored saved-pet set.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for id, u := range r.byID {
		if id != user.ID && u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	updated := cloneUser(*user)
	updated.SavedPetIDs = stored.SavedPetIDs
	r.byID[user.ID] = updated
	return nil
}

// List returns users ordered by creation time descending.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]entity.User, 0, len(r.byID))
	for _, u := range r.byID {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	out := make([]*entity.User, 0, len(all))
	for _, u := range all {
		c := cloneUser(u)
		out = append(out, &c)
	}
	return out, nil
}

// SavePet adds petID to the saved set iff not already a member. The check and
// the append happen under one lock hold.
func (r *UserRepo) SavePet(ctx context.Context, userID, petID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID]
	if !ok {
		return false, domain.ErrUserNotFound
	}
	if u.HasSaved(petID) {
		return false, nil
	}
	u.SavedPetIDs = append(append([]string(nil), u.SavedPetIDs...), petID)
	r.byID[userID] = u
	return true, nil
}

// RemoveSavedPet removes petID from the saved set iff present.
func (r *UserRepo) RemoveSavedPet(ctx context.Context, userID, petID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID]
	if !ok {
		return false, domain.ErrUserNotFound
	}
	if !u.HasSaved(petID) {
		return false, nil
	}
	kept := make([]string, 0, len(u.SavedPetIDs)-1)
	for _, id := range u.SavedPetIDs {
		if id != petID {
			kept = append(kept, id)
		}
	}
	u.SavedPetIDs = kept
	r.byID[userID] = u
	return true, nil
}

func cloneUser(u entity.User) entity.User {
	u.SavedPetIDs = append([]string(nil), u.SavedPetIDs...)
	return u
}
