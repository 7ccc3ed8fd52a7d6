package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Adoption statuses for Pet. All states are revisitable.
const (
	StatusAvailable = "available"
	StatusFostered  = "fostered"
	StatusOwned     = "owned"
)

// Adoption kinds accepted by the adopt operation.
const (
	KindAdopt  = "adopt"
	KindFoster = "foster"
)

// Pet represents an adoptable animal.
// Invariant: CarerID is set iff Status != available.
type Pet struct {
	ID             string
	Name           string
	Type           string // must belong to the configured animal-type set
	Breed          string
	Color          string
	Diet           string
	Bio            string
	BirthDate      time.Time
	Weight         decimal.Decimal // positive measure
	Height         decimal.Decimal // positive measure
	Hypoallergenic bool
	ImageFileName  string  // reference to an externally stored asset
	Status         string  // available, fostered, owned
	CarerID        *string // user currently holding custody
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Available reports whether the pet can currently be adopted or fostered.
func (p *Pet) Available() bool {
	return p.Status == StatusAvailable
}

// StatusForKind maps an adoption kind to the resulting status.
// Returns false for unknown kinds.
func StatusForKind(kind string) (string, bool) {
	switch kind {
	case KindAdopt:
		return StatusOwned, true
	case KindFoster:
		return StatusFostered, true
	default:
		return "", false
	}
}
