package domain

import (
	"errors"
	"strings"
)

// DefaultRace is assigned when a pet is registered without a race.
const DefaultRace = "none"

// Pet represents the aggregate managed by the pets bounded context.
type Pet struct {
	ID      string
	Name    string
	Race    string
	Age     int
	Adopted bool
}

var (
	ErrEmptyID      = errors.New("pet id is required")
	ErrEmptyName    = errors.New("pet name is required")
	ErrInvalidAge   = errors.New("pet age must be a non-negative integer")
	ErrNotAdopted   = errors.New("pet is not adopted")
	ErrAlreadyTaken = errors.New("pet has already been adopted")
)

// NewPet validates the invariants and builds a new, unadopted Pet aggregate.
func NewPet(id, name, race string, age int) (*Pet, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyID
	}
	p := &Pet{ID: id}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	p.ChangeRace(race)
	if err := p.ChangeAge(age); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename mutates the pet name ensuring the invariant.
func (p *Pet) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// ChangeRace stores the race, falling back to DefaultRace.
func (p *Pet) ChangeRace(race string) {
	race = strings.TrimSpace(race)
	if race == "" {
		race = DefaultRace
	}
	p.Race = race
}

// ChangeAge stores the age in whole years.
func (p *Pet) ChangeAge(age int) error {
	if age < 0 {
		return ErrInvalidAge
	}
	p.Age = age
	return nil
}

// MarkAdopted flips the adoption flag, refusing a second adoption.
func (p *Pet) MarkAdopted() error {
	if p.Adopted {
		return ErrAlreadyTaken
	}
	p.Adopted = true
	return nil
}

// Release clears the adoption flag.
func (p *Pet) Release() error {
	if !p.Adopted {
		return ErrNotAdopted
	}
	p.Adopted = false
	return nil
}

// Clone returns an independent copy of the pet.
func (p *Pet) Clone() *Pet {
	if p == nil {
		return nil
	}
	copy := *p
	return &copy
}
