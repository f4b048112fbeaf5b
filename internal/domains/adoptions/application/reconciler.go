package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
	petdomain "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	petports "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
	userports "github.com/Apurer/go-gin-adoption-api/internal/domains/users/ports"
)

// PetReference is a pet listed by a user.
type PetReference struct {
	UserID string
	PetID  string
}

// Report summarises the drift between adoption records, pet flags and user pet lists.
type Report struct {
	// OrphanedPetFlags are pets flagged adopted that no adoption references.
	OrphanedPetFlags []string
	// OrphanedUserPets are user pet references without a matching adoption.
	OrphanedUserPets []PetReference
	// DanglingAdoptions reference a user or pet that no longer exists.
	DanglingAdoptions []string
	// IncompleteAdoptions exist but their pet is not flagged or not listed by the user.
	IncompleteAdoptions []string
	Repaired            int
}

// Clean reports whether no drift was found.
func (r Report) Clean() bool {
	return len(r.OrphanedPetFlags) == 0 && len(r.OrphanedUserPets) == 0 &&
		len(r.DanglingAdoptions) == 0 && len(r.IncompleteAdoptions) == 0
}

// Reconciler detects and optionally repairs state left behind by deletes and partial failures.
type Reconciler struct {
	adoptions ports.Repository
	pets      ports.PetCatalog
	users     ports.UserDirectory
	locker    ports.Locker
	lockWait  time.Duration
	logger    *slog.Logger
}

// ReconcilerOption customises the reconciler.
type ReconcilerOption func(*Reconciler)

// WithRepairLocker serialises each repair with adoption requests for the same pet.
func WithRepairLocker(l ports.Locker) ReconcilerOption {
	return func(r *Reconciler) { r.locker = l }
}

func NewReconciler(adoptions ports.Repository, pets ports.PetCatalog, users ports.UserDirectory, logger *slog.Logger, opts ...ReconcilerOption) *Reconciler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := &Reconciler{adoptions: adoptions, pets: pets, users: users, lockWait: defaultLockWait, logger: logger}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Run scans all three stores. With apply set it clears orphaned pet flags and user references.
// Dangling and incomplete adoptions are only reported.
//
// Pets and users are read before adoptions. Every write path records the adoption first, so
// a pet flag or user reference seen in the scan always has its adoption in the later snapshot.
func (r *Reconciler) Run(ctx context.Context, apply bool) (Report, error) {
	var report Report

	pets, err := r.pets.Find(ctx, petdomain.Query{})
	if err != nil {
		return report, err
	}
	users, err := r.users.List(ctx)
	if err != nil {
		return report, err
	}
	adoptions, err := r.adoptions.List(ctx)
	if err != nil {
		return report, err
	}

	adoptedPets := make(map[string]struct{}, len(adoptions))
	links := make(map[PetReference]struct{}, len(adoptions))
	for _, a := range adoptions {
		adoptedPets[a.Entity.PetID] = struct{}{}
		links[PetReference{UserID: a.Entity.UserID, PetID: a.Entity.PetID}] = struct{}{}
	}
	knownPets := make(map[string]bool, len(pets))
	for _, p := range pets {
		knownPets[p.Entity.ID] = p.Entity.Adopted
		if _, ok := adoptedPets[p.Entity.ID]; p.Entity.Adopted && !ok {
			report.OrphanedPetFlags = append(report.OrphanedPetFlags, p.Entity.ID)
		}
	}
	knownUsers := make(map[string]struct{}, len(users))
	listed := make(map[PetReference]struct{})
	for _, u := range users {
		knownUsers[u.Entity.ID] = struct{}{}
		for _, petID := range u.Entity.Pets {
			ref := PetReference{UserID: u.Entity.ID, PetID: petID}
			listed[ref] = struct{}{}
			if _, ok := links[ref]; !ok {
				report.OrphanedUserPets = append(report.OrphanedUserPets, ref)
			}
		}
	}
	for _, a := range adoptions {
		_, userOK := knownUsers[a.Entity.UserID]
		flagged, petOK := knownPets[a.Entity.PetID]
		if !userOK || !petOK {
			report.DanglingAdoptions = append(report.DanglingAdoptions, a.Entity.ID)
			continue
		}
		_, isListed := listed[PetReference{UserID: a.Entity.UserID, PetID: a.Entity.PetID}]
		if !flagged || !isListed {
			report.IncompleteAdoptions = append(report.IncompleteAdoptions, a.Entity.ID)
		}
	}

	r.logger.LogAttrs(ctx, slog.LevelInfo, "reconciliation scan finished",
		slog.Int("adoptions", len(adoptions)),
		slog.Int("orphaned_pet_flags", len(report.OrphanedPetFlags)),
		slog.Int("orphaned_user_pets", len(report.OrphanedUserPets)),
		slog.Int("dangling_adoptions", len(report.DanglingAdoptions)),
		slog.Int("incomplete_adoptions", len(report.IncompleteAdoptions)),
	)
	if !apply {
		return report, nil
	}

	for _, petID := range report.OrphanedPetFlags {
		repaired, err := r.repairPetFlag(ctx, petID)
		if err != nil {
			return report, err
		}
		if repaired {
			report.Repaired++
		}
	}
	for _, ref := range report.OrphanedUserPets {
		repaired, err := r.repairUserPet(ctx, ref)
		if err != nil {
			return report, err
		}
		if repaired {
			report.Repaired++
		}
	}
	r.logger.LogAttrs(ctx, slog.LevelInfo, "reconciliation repairs applied", slog.Int("repaired", report.Repaired))
	return report, nil
}

// repairPetFlag clears the flag only if, under the pet lock, no adoption references the pet.
func (r *Reconciler) repairPetFlag(ctx context.Context, petID string) (bool, error) {
	unlock, err := r.lock(ctx, petID)
	if err != nil {
		return false, err
	}
	defer unlock()
	byPet, err := r.adoptions.ListByPet(ctx, petID)
	if err != nil {
		return false, err
	}
	if len(byPet) > 0 {
		r.logger.LogAttrs(ctx, slog.LevelInfo, "pet adopted during reconciliation, skipping", slog.String("pet.id", petID))
		return false, nil
	}
	err = r.pets.SetAdopted(ctx, petID, false)
	if err != nil && !errors.Is(err, petports.ErrStaleAdoptionState) && !errors.Is(err, petports.ErrNotFound) {
		return false, err
	}
	return err == nil, nil
}

// repairUserPet detaches the reference only if, under the pet lock, no adoption links the pair.
func (r *Reconciler) repairUserPet(ctx context.Context, ref PetReference) (bool, error) {
	unlock, err := r.lock(ctx, ref.PetID)
	if err != nil {
		return false, err
	}
	defer unlock()
	byPet, err := r.adoptions.ListByPet(ctx, ref.PetID)
	if err != nil {
		return false, err
	}
	for _, a := range byPet {
		if a.Entity.UserID == ref.UserID {
			r.logger.LogAttrs(ctx, slog.LevelInfo, "pet adopted during reconciliation, skipping",
				slog.String("pet.id", ref.PetID),
				slog.String("user.id", ref.UserID),
			)
			return false, nil
		}
	}
	err = r.users.DetachPet(ctx, ref.UserID, ref.PetID)
	if err != nil && !errors.Is(err, userports.ErrPetNotAttached) && !errors.Is(err, userports.ErrNotFound) {
		return false, err
	}
	return err == nil, nil
}

func (r *Reconciler) lock(ctx context.Context, petID string) (func(), error) {
	if r.locker == nil {
		return func() {}, nil
	}
	lockCtx, cancel := context.WithTimeout(ctx, r.lockWait)
	defer cancel()
	unlock, err := r.locker.Lock(lockCtx, LockKey(petID))
	if err != nil {
		return nil, fmt.Errorf("lock pet %s: %w", petID, err)
	}
	return func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			r.logger.LogAttrs(ctx, slog.LevelWarn, "failed to release adoption lock",
				slog.String("pet.id", petID),
				slog.String("error", err.Error()),
			)
		}
	}, nil
}
