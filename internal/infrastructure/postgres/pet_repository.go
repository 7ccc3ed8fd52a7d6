package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pawhaven/adoption-api/internal/domain"
	"github.com/pawhaven/adoption-api/internal/domain/entity"
	"github.com/pawhaven/adoption-api/internal/domain/repository"
)

var _ repository.PetRepository = (*PetRepo)(nil)

// PetRepo implements the PetRepository port on PostgreSQL.
type PetRepo struct {
	pool *pgxpool.Pool
}

// NewPetRepository builds the persistence adapter for pets.
func NewPetRepository(pool *pgxpool.Pool) *PetRepo {
	return &PetRepo{pool: pool}
}

const petColumns = `id, name, type, breed, color, diet, bio, birth_date, weight, height, hypoallergenic, image_file_name, status, carer_id, created_at, updated_at`

// Create persists a new pet.
func (r *PetRepo) Create(ctx context.Context, pet *entity.Pet) error {
	query := `
		INSERT INTO pets (` + petColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.pool.Exec(ctx, query,
		pet.ID, pet.Name, pet.Type, pet.Breed, pet.Color, pet.Diet, pet.Bio,
		pet.BirthDate, pet.Weight, pet.Height, pet.Hypoallergenic, pet.ImageFileName,
		pet.Status, pet.CarerID, pet.CreatedAt, pet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pet: %w", err)
	}
	return nil
}

// GetByID fetches a pet by ID. Returns (nil, nil) when absent.
func (r *PetRepo) GetByID(ctx context.Context, id string) (*entity.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets WHERE id = $1`
	var p entity.Pet
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Type, &p.Breed, &p.Color, &p.Diet, &p.Bio,
		&p.BirthDate, &p.Weight, &p.Height, &p.Hypoallergenic, &p.ImageFileName,
		&p.Status, &p.CarerID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pet by id: %w", err)
	}
	return &p, nil
}

// Update persists descriptive fields. Status and carer are never written here;
// they change only through AdoptIfAvailable/ReturnIfCarer so every transition
// carries its precondition.
func (r *PetRepo) Update(ctx context.Context, pet *entity.Pet) error {
	query := `
		UPDATE pets SET name = $2, type = $3, breed = $4, color = $5, diet = $6,
			bio = $7, birth_date = $8, weight = $9, height = $10,
			hypoallergenic = $11, image_file_name = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		pet.ID, pet.Name, pet.Type, pet.Breed, pet.Color, pet.Diet, pet.Bio,
		pet.BirthDate, pet.Weight, pet.Height, pet.Hypoallergenic,
		pet.ImageFileName, pet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pet: %w", err)
	}
	return nil
}

// Search returns pets matching the filter, newest first.
func (r *PetRepo) Search(ctx context.Context, filter repository.PetFilter) ([]*entity.Pet, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.Name != "" {
		add("name ILIKE $%d", "%"+filter.Name+"%")
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.Type != "" {
		add("type = $%d", filter.Type)
	}
	if filter.BirthDate != nil {
		add("birth_date = $%d", *filter.BirthDate)
	}
	if filter.MinWeight != nil {
		add("weight >= $%d", *filter.MinWeight)
	}
	if filter.MaxWeight != nil {
		add("weight <= $%d", *filter.MaxWeight)
	}
	if filter.MinHeight != nil {
		add("height >= $%d", *filter.MinHeight)
	}
	if filter.MaxHeight != nil {
		add("height <= $%d", *filter.MaxHeight)
	}
	if filter.Hypoallergenic != nil {
		add("hypoallergenic = $%d", *filter.Hypoallergenic)
	}

	query := `SELECT ` + petColumns + ` FROM pets`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search pets: %w", err)
	}
	defer rows.Close()
	return scanPets(rows)
}

// ListByCarer returns the pets currently held by carerID.
func (r *PetRepo) ListByCarer(ctx context.Context, carerID string) ([]*entity.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets WHERE carer_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, carerID)
	if err != nil {
		return nil, fmt.Errorf("list pets by carer: %w", err)
	}
	defer rows.Close()
	return scanPets(rows)
}

// ListByIDs returns the pets whose IDs are in ids. Missing IDs are skipped.
func (r *PetRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Pet, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + petColumns + ` FROM pets WHERE id = ANY($1) ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list pets by ids: %w", err)
	}
	defer rows.Close()
	return scanPets(rows)
}

// AdoptIfAvailable flips the pet to the requested status iff it is still
// available. The availability check is the WHERE clause of the UPDATE, so two
// racing adopters cannot both win: the loser's statement matches zero rows.
func (r *PetRepo) AdoptIfAvailable(ctx context.Context, petID, carerID, status string) error {
	query := `
		UPDATE pets SET status = $2, carer_id = $3, updated_at = now()
		WHERE id = $1 AND status = $4`
	tag, err := r.pool.Exec(ctx, query, petID, status, carerID, entity.StatusAvailable)
	if err != nil {
		return fmt.Errorf("adopt pet: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	return r.disambiguateMiss(ctx, petID, domain.ErrConflict)
}

// ReturnIfCarer makes the pet available again iff carerID currently holds it.
// The carer check is the WHERE clause, so a stranger's return matches zero
// rows and never mutates state.
func (r *PetRepo) ReturnIfCarer(ctx context.Context, petID, carerID string) error {
	query := `
		UPDATE pets SET status = $3, carer_id = NULL, updated_at = now()
		WHERE id = $1 AND carer_id = $2 AND status <> $3`
	tag, err := r.pool.Exec(ctx, query, petID, carerID, entity.StatusAvailable)
	if err != nil {
		return fmt.Errorf("return pet: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	return r.disambiguateMiss(ctx, petID, domain.ErrNotOwner)
}

// disambiguateMiss resolves a zero-row conditional update: the pet either does
// not exist (ErrNotFound) or exists but failed the precondition (missErr).
func (r *PetRepo) disambiguateMiss(ctx context.Context, petID string, missErr error) error {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pets WHERE id = $1)`, petID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check pet exists: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return missErr
}

func scanPets(rows pgx.Rows) ([]*entity.Pet, error) {
	var list []*entity.Pet
	for rows.Next() {
		var p entity.Pet
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Type, &p.Breed, &p.Color, &p.Diet, &p.Bio,
			&p.BirthDate, &p.Weight, &p.Height, &p.Hypoallergenic, &p.ImageFileName,
			&p.Status, &p.CarerID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pet: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
