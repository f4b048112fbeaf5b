package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	adoptiontypes "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
	petports "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
	userports "github.com/Apurer/go-gin-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/failure"
)

// Saga holds the individual steps of an adoption. The inline path and the durable
// workflow activities both run these steps, so every step returns a classified failure.
type Saga struct {
	stores ports.Stores
	uow    ports.UnitOfWork
	newID  func() string
	now    func() time.Time
}

// SagaOption customises the saga.
type SagaOption func(*Saga)

// WithUnitOfWork makes Execute write inside a single transaction instead of compensating.
func WithUnitOfWork(uow ports.UnitOfWork) SagaOption {
	return func(s *Saga) { s.uow = uow }
}

// WithIDGenerator overrides how adoption ids are minted.
func WithIDGenerator(fn func() string) SagaOption {
	return func(s *Saga) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithClock overrides the adoption timestamp source.
func WithClock(now func() time.Time) SagaOption {
	return func(s *Saga) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSaga wires the saga steps to their stores.
func NewSaga(stores ports.Stores, opts ...SagaOption) *Saga {
	s := &Saga{stores: stores, newID: uuid.NewString, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// RequestAdoption runs the checks and then the writes in process.
func (s *Saga) RequestAdoption(ctx context.Context, input adoptiontypes.RequestAdoptionInput) (*adoptiontypes.AdoptionProjection, error) {
	if err := s.Evaluate(ctx, input); err != nil {
		return nil, err
	}
	adoption, err := s.NewAdoption(input)
	if err != nil {
		return nil, err
	}
	return s.Execute(ctx, adoption)
}

// Evaluate loads the user and the pet and applies the eligibility rules in order.
func (s *Saga) Evaluate(ctx context.Context, input adoptiontypes.RequestAdoptionInput) error {
	if strings.TrimSpace(input.UserID) == "" || strings.TrimSpace(input.PetID) == "" {
		return mapError(domain.ErrMissingFields)
	}
	user, err := s.stores.Users.GetByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, userports.ErrNotFound) {
			return mapError(domain.ErrUserNotFound)
		}
		return mapError(err)
	}
	pet, err := s.stores.Pets.GetByID(ctx, input.PetID)
	if err != nil {
		if errors.Is(err, petports.ErrNotFound) {
			return mapError(domain.ErrPetNotFound)
		}
		return mapError(err)
	}
	applicant := domain.Applicant{ID: user.Entity.ID, CanAdopt: user.Entity.CanAdopt, Pets: user.Entity.Pets}
	candidate := domain.Candidate{ID: pet.Entity.ID, Adopted: pet.Entity.Adopted}
	return mapError(domain.Evaluate(applicant, candidate))
}

// NewAdoption stamps a fresh adoption record for input.
func (s *Saga) NewAdoption(input adoptiontypes.RequestAdoptionInput) (*domain.Adoption, error) {
	adoption, err := domain.NewAdoption(s.newID(), input.UserID, input.PetID, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	return adoption, nil
}

// Execute performs insert, flag and link in that order. With a unit of work the three
// writes share one transaction; otherwise applied steps are undone on failure.
func (s *Saga) Execute(ctx context.Context, adoption *domain.Adoption) (*adoptiontypes.AdoptionProjection, error) {
	if s.uow == nil {
		return s.executeCompensating(ctx, adoption)
	}
	var saved *adoptiontypes.AdoptionProjection
	err := s.uow.Do(ctx, func(ctx context.Context, stores ports.Stores) error {
		tx := s.bind(stores)
		var err error
		if saved, err = tx.Record(ctx, adoption); err != nil {
			return err
		}
		if err := tx.MarkPetAdopted(ctx, adoption.PetID); err != nil {
			return err
		}
		return tx.AttachPet(ctx, adoption.UserID, adoption.PetID)
	})
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Saga) executeCompensating(ctx context.Context, adoption *domain.Adoption) (*adoptiontypes.AdoptionProjection, error) {
	saved, err := s.Record(ctx, adoption)
	if err != nil {
		return nil, err
	}
	discard := func(ctx context.Context) error { return s.Discard(ctx, adoption) }
	if err := s.MarkPetAdopted(ctx, adoption.PetID); err != nil {
		return nil, s.compensate(ctx, err, discard)
	}
	if err := s.AttachPet(ctx, adoption.UserID, adoption.PetID); err != nil {
		release := func(ctx context.Context) error { return s.ReleasePet(ctx, adoption.PetID) }
		return nil, s.compensate(ctx, err, release, discard)
	}
	return saved, nil
}

// compensate runs the undo steps in order. The original failure is returned when they
// all succeed; otherwise the adoption is left half-applied and reported as internal.
func (s *Saga) compensate(ctx context.Context, cause error, undo ...func(context.Context) error) error {
	ctx = context.WithoutCancel(ctx)
	var undoErrs []error
	for _, step := range undo {
		if err := step(ctx); err != nil {
			undoErrs = append(undoErrs, err)
		}
	}
	if len(undoErrs) == 0 {
		return cause
	}
	return failure.Internal(fmt.Errorf("%w: %v: %v", ErrCompensationFailed, cause, errors.Join(undoErrs...)))
}

// Record inserts the adoption.
func (s *Saga) Record(ctx context.Context, adoption *domain.Adoption) (*adoptiontypes.AdoptionProjection, error) {
	saved, err := s.stores.Adoptions.Insert(ctx, adoption)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Discard deletes the adoption. A record that is already gone, or that belongs to another
// user or pet under the same id, is left alone.
func (s *Saga) Discard(ctx context.Context, adoption *domain.Adoption) error {
	stored, err := s.stores.Adoptions.GetByID(ctx, adoption.ID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil
		}
		return mapError(err)
	}
	if !stored.Entity.SameLink(adoption) {
		return nil
	}
	if err := s.stores.Adoptions.Delete(ctx, adoption.ID); err != nil && !errors.Is(err, ports.ErrNotFound) {
		return mapError(err)
	}
	return nil
}

// HoldsPet reports whether adoption is the only record referencing its pet. A retried step
// uses it to tell its own earlier write apart from a competing adoption.
func (s *Saga) HoldsPet(ctx context.Context, adoption *domain.Adoption) (bool, error) {
	byPet, err := s.stores.Adoptions.ListByPet(ctx, adoption.PetID)
	if err != nil {
		return false, mapError(err)
	}
	return len(byPet) == 1 && byPet[0].Entity.SameLink(adoption), nil
}

// Remove deletes the adoption and, when reverse is set, releases the pet and detaches it
// from the user. With a unit of work all writes share one transaction.
func (s *Saga) Remove(ctx context.Context, adoption *domain.Adoption, reverse bool) error {
	run := func(ctx context.Context, tx *Saga) error {
		if err := tx.stores.Adoptions.Delete(ctx, adoption.ID); err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				return mapError(domain.ErrAdoptionNotFound)
			}
			return mapError(err)
		}
		if !reverse {
			return nil
		}
		if err := tx.ReleasePet(ctx, adoption.PetID); err != nil {
			return err
		}
		return tx.DetachPet(ctx, adoption.UserID, adoption.PetID)
	}
	if s.uow == nil {
		return run(ctx, s)
	}
	return mapError(s.uow.Do(ctx, func(ctx context.Context, stores ports.Stores) error {
		return run(ctx, s.bind(stores))
	}))
}

// MarkPetAdopted flips the pet flag only if it is still clear.
func (s *Saga) MarkPetAdopted(ctx context.Context, petID string) error {
	err := s.stores.Pets.SetAdopted(ctx, petID, true)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, petports.ErrStaleAdoptionState):
		return mapError(domain.ErrAlreadyAdopted)
	case errors.Is(err, petports.ErrNotFound):
		return mapError(domain.ErrPetNotFound)
	}
	return mapError(err)
}

// ReleasePet clears the pet flag. A pet that is gone or already free is left alone.
func (s *Saga) ReleasePet(ctx context.Context, petID string) error {
	err := s.stores.Pets.SetAdopted(ctx, petID, false)
	if err == nil || errors.Is(err, petports.ErrStaleAdoptionState) || errors.Is(err, petports.ErrNotFound) {
		return nil
	}
	return mapError(err)
}

// AttachPet appends the pet to the user only if it is not listed yet.
func (s *Saga) AttachPet(ctx context.Context, userID, petID string) error {
	err := s.stores.Users.AttachPet(ctx, userID, petID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, userports.ErrPetAlreadyAttached):
		return mapError(domain.ErrAlreadyOwned)
	case errors.Is(err, userports.ErrNotFound):
		return mapError(domain.ErrUserNotFound)
	}
	return mapError(err)
}

// DetachPet removes the pet from the user. Missing users or references are left alone.
func (s *Saga) DetachPet(ctx context.Context, userID, petID string) error {
	err := s.stores.Users.DetachPet(ctx, userID, petID)
	if err == nil || errors.Is(err, userports.ErrPetNotAttached) || errors.Is(err, userports.ErrNotFound) {
		return nil
	}
	return mapError(err)
}

func (s *Saga) bind(stores ports.Stores) *Saga {
	return &Saga{stores: stores, newID: s.newID, now: s.now}
}

var _ ports.WorkflowOrchestrator = (*Saga)(nil)
