package domain

import (
	"strings"
	"time"
)

// Adoption links a user to a pet. It is immutable once recorded.
type Adoption struct {
	ID       string
	UserID   string
	PetID    string
	DateTime time.Time
}

// NewAdoption builds an adoption record stamped at the given instant.
func NewAdoption(id, userID, petID string, at time.Time) (*Adoption, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyID
	}
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(petID) == "" {
		return nil, ErrMissingFields
	}
	return &Adoption{ID: id, UserID: userID, PetID: petID, DateTime: at.UTC()}, nil
}

// Clone returns a copy.
func (a *Adoption) Clone() *Adoption {
	if a == nil {
		return nil
	}
	cp := *a
	return &cp
}

// SameLink reports whether both records join the same user and pet under the same id.
func (a *Adoption) SameLink(other *Adoption) bool {
	if a == nil || other == nil {
		return false
	}
	return a.ID == other.ID && a.UserID == other.UserID && a.PetID == other.PetID
}
