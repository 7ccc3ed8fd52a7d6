package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePetRequest admin pet creation. ImageFileName references an already
// uploaded asset; the upload itself is handled by the storage collaborator.
type CreatePetRequest struct {
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Breed          string          `json:"breed"`
	Color          string          `json:"color"`
	Diet           string          `json:"diet"`
	Bio            string          `json:"bio"`
	BirthDate      time.Time       `json:"birthDate"`
	Weight         decimal.Decimal `json:"weight"`
	Height         decimal.Decimal `json:"height"`
	Hypoallergenic bool            `json:"hypoallergenic"`
	ImageFileName  string          `json:"imageFileName"`
}

// UpdatePetRequest admin pet edit; nil fields stay unchanged.
type UpdatePetRequest struct {
	Name           *string          `json:"name"`
	Type           *string          `json:"type"`
	Breed          *string          `json:"breed"`
	Color          *string          `json:"color"`
	Diet           *string          `json:"diet"`
	Bio            *string          `json:"bio"`
	BirthDate      *time.Time       `json:"birthDate"`
	Weight         *decimal.Decimal `json:"weight"`
	Height         *decimal.Decimal `json:"height"`
	Hypoallergenic *bool            `json:"hypoallergenic"`
	ImageFileName  *string          `json:"imageFileName"`
}

// AdoptRequest body for the adopt operation.
type AdoptRequest struct {
	Kind string `json:"kind"` // "adopt" | "foster"
}

// SearchPetsRequest query parameters for the pet search.
type SearchPetsRequest struct {
	Name           string `query:"name"`
	Status         string `query:"status"`
	Type           string `query:"type"`
	BirthDate      string `query:"birthdate"` // RFC 3339 date
	MinWeight      string `query:"minWeight"`
	MaxWeight      string `query:"maxWeight"`
	MinHeight      string `query:"minHeight"`
	MaxHeight      string `query:"maxHeight"`
	Hypoallergenic string `query:"hypoallergenic"` // "true" | "false"
	PageRequest
}

// PetResponse pet output.
type PetResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Breed          string          `json:"breed"`
	Color          string          `json:"color"`
	Diet           string          `json:"diet"`
	Bio            string          `json:"bio"`
	BirthDate      time.Time       `json:"birthDate"`
	Weight         decimal.Decimal `json:"weight"`
	Height         decimal.Decimal `json:"height"`
	Hypoallergenic bool            `json:"hypoallergenic"`
	ImageFileName  string          `json:"imageFileName"`
	Status         string          `json:"status"`
	CarerID        *string         `json:"carerId,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// PetListResponse paged pet listing.
type PetListResponse struct {
	Items []PetResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}

// TypesResponse the configured animal-type set.
type TypesResponse struct {
	Types []string `json:"types"`
}
