package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pawhaven/adoption-api/internal/domain"
	"github.com/pawhaven/adoption-api/internal/domain/entity"
	"github.com/pawhaven/adoption-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implements the UserRepository port on PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository builds the persistence adapter for users.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, first_name, last_name, email, phone, bio, password_hash, role, saved_pet_ids, created_at, updated_at`

// Create persists a new user.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.Phone, user.Bio,
		user.PasswordHash, user.Role, user.SavedPetIDs, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID fetches a user by ID. Returns (nil, nil) when absent.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id), "get user by id")
}

// GetByEmail fetches a user by email. Returns (nil, nil) when absent.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email), "get user by email")
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.Bio,
		&u.PasswordHash, &u.Role, &u.SavedPetIDs, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// Update persists profile fields. SavedPetIDs is never written here; the saved
// set is mutated only through SavePet/RemoveSavedPet so every change carries
// its precondition.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET first_name = $2, last_name = $3, email = $4, phone = $5,
			bio = $6, password_hash = $7, role = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.Phone,
		user.Bio, user.PasswordHash, user.Role, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// List returns users with pagination.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(
			&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.Bio,
			&u.PasswordHash, &u.Role, &u.SavedPetIDs, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// SavePet appends petID to saved_pet_ids iff not already a member. The
// membership guard lives in the WHERE clause, so the check and the append are
// one atomic statement and concurrent saves cannot duplicate the entry.
// A zero-row result is either a no-change save or a missing user; the latter
// is reported as ErrUserNotFound, same as the memory adapter.
func (r *UserRepo) SavePet(ctx context.Context, userID, petID string) (bool, error) {
	query := `
		UPDATE users SET saved_pet_ids = array_append(saved_pet_ids, $2), updated_at = now()
		WHERE id = $1 AND NOT ($2 = ANY(saved_pet_ids))`
	tag, err := r.pool.Exec(ctx, query, userID, petID)
	if err != nil {
		return false, fmt.Errorf("save pet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, r.missReason(ctx, userID)
	}
	return true, nil
}

// RemoveSavedPet removes petID from saved_pet_ids iff present.
func (r *UserRepo) RemoveSavedPet(ctx context.Context, userID, petID string) (bool, error) {
	query := `
		UPDATE users SET saved_pet_ids = array_remove(saved_pet_ids, $2), updated_at = now()
		WHERE id = $1 AND $2 = ANY(saved_pet_ids)`
	tag, err := r.pool.Exec(ctx, query, userID, petID)
	if err != nil {
		return false, fmt.Errorf("remove saved pet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, r.missReason(ctx, userID)
	}
	return true, nil
}

// missReason resolves a zero-row saved-set update: nil when the user exists
// (the guard rejected a no-op), ErrUserNotFound otherwise.
func (r *UserRepo) missReason(ctx context.Context, userID string) error {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check user exists: %w", err)
	}
	if !exists {
		return domain.ErrUserNotFound
	}
	return nil
}
