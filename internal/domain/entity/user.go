package entity

import "time"

// Valid roles for User.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User represents an account on the marketplace.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string // unique across all users
	Phone        string
	Bio          string
	PasswordHash string // bcrypt hash, never plaintext past signup/login
	Role         string // member, admin
	SavedPetIDs  []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasSaved reports whether petID is in the user's saved set.
func (u *User) HasSaved(petID string) bool {
	for _, id := range u.SavedPetIDs {
		if id == petID {
			return true
		}
	}
	return false
}
