// seedadmin provisions an admin account. Role promotion has no API surface,
// so the first admin is created out of band with this command.
//
// Usage: go run ./cmd/seedadmin <email> <password> [firstName lastName]
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pawhaven/adoption-api/internal/domain"
	"github.com/pawhaven/adoption-api/internal/domain/entity"
	"github.com/pawhaven/adoption-api/internal/infrastructure/postgres"
	"github.com/pawhaven/adoption-api/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: seedadmin <email> <password> [firstName lastName]")
		os.Exit(1)
	}
	email, password := os.Args[1], os.Args[2]
	firstName, lastName := "Admin", "User"
	if len(os.Args) >= 5 {
		firstName, lastName = os.Args[3], os.Args[4]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "PostgreSQL connection: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		SavedPetIDs:  []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	repo := postgres.NewUserRepository(pool)
	if err := repo.Create(ctx, user); err != nil {
		if err == domain.ErrEmailAlreadyExists {
			fmt.Fprintf(os.Stderr, "an account with email %s already exists\n", email)
		} else {
			fmt.Fprintf(os.Stderr, "create admin: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("admin account %s created (id %s)\n", email, user.ID)
}
