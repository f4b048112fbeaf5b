package domain

import (
	"errors"
	"slices"
	"strings"
)

var (
	ErrEmptyID         = errors.New("user id is required")
	ErrEmptyName       = errors.New("user name is required")
	ErrEmptyPetID      = errors.New("pet id is required")
	ErrPetAlreadyOwned = errors.New("user already owns this pet")
	ErrPetNotOwned     = errors.New("user does not own this pet")
)

// User represents a prospective adopter.
type User struct {
	ID       string
	Name     string
	CanAdopt bool
	// Pets lists adopted pet ids in adoption order.
	Pets []string
}

// NewUser builds an unverified user without pets.
func NewUser(id, name string) (*User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyID
	}
	u := &User{ID: id, Pets: []string{}}
	if err := u.Rename(name); err != nil {
		return nil, err
	}
	return u, nil
}

// Rename trims and validates the display name.
func (u *User) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	u.Name = name
	return nil
}

// Verify sets whether the user is allowed to adopt.
func (u *User) Verify(canAdopt bool) {
	u.CanAdopt = canAdopt
}

// HasPet reports whether petID is among the user's pets.
func (u *User) HasPet(petID string) bool {
	return slices.Contains(u.Pets, petID)
}

// AttachPet appends a pet reference.
func (u *User) AttachPet(petID string) error {
	if strings.TrimSpace(petID) == "" {
		return ErrEmptyPetID
	}
	if u.HasPet(petID) {
		return ErrPetAlreadyOwned
	}
	u.Pets = append(u.Pets, petID)
	return nil
}

// DetachPet removes a pet reference keeping the order of the rest.
func (u *User) DetachPet(petID string) error {
	idx := slices.Index(u.Pets, petID)
	if idx < 0 {
		return ErrPetNotOwned
	}
	u.Pets = slices.Delete(u.Pets, idx, idx+1)
	return nil
}

// Clone returns a deep copy.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.Pets = append([]string{}, u.Pets...)
	return &cp
}
