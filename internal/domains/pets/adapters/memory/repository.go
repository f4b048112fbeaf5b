package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for demos/tests.
type Repository struct {
	mu   sync.RWMutex
	pets map[string]*storedPet
	now  func() time.Time
}

type storedPet struct {
	pet      *domain.Pet
	metadata projection.Metadata
}

// Option customises the repository.
type Option func(*Repository)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRepository constructs an empty in-memory store.
func NewRepository(opts ...Option) *Repository {
	r := &Repository{
		pets: map[string]*storedPet{},
		now:  time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Create inserts a pet, rejecting duplicate names.
func (r *Repository) Create(_ context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error) {
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pets[pet.ID]; ok {
		return nil, ports.ErrDuplicateName
	}
	if r.nameTakenLocked(pet.Name, pet.ID) {
		return nil, ports.ErrDuplicateName
	}
	timestamp := r.now()
	stored := &storedPet{
		pet:      pet.Clone(),
		metadata: projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp},
	}
	r.pets[pet.ID] = stored
	return projectionCopy(stored), nil
}

// Update overwrites name, race and age, keeping the stored adoption flag.
func (r *Repository) Update(_ context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error) {
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.pets[pet.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if r.nameTakenLocked(pet.Name, pet.ID) {
		return nil, ports.ErrDuplicateName
	}
	entry.pet.Name = pet.Name
	entry.pet.Race = pet.Race
	entry.pet.Age = pet.Age
	entry.metadata.UpdatedAt = r.now()
	return projectionCopy(entry), nil
}

// GetByID fetches a pet if present.
func (r *Repository) GetByID(_ context.Context, id string) (*projection.Projection[*domain.Pet], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.pets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// Delete removes a pet.
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pets[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.pets, id)
	return nil
}

// Find filters, orders and pages the stored pets.
func (r *Repository) Find(_ context.Context, query domain.Query) ([]*projection.Projection[*domain.Pet], error) {
	r.mu.RLock()
	matched := make([]*domain.Pet, 0, len(r.pets))
	byID := make(map[string]*projection.Projection[*domain.Pet], len(r.pets))
	for id, entry := range r.pets {
		if query.Filter.Matches(entry.pet) {
			copied := projectionCopy(entry)
			matched = append(matched, copied.Entity)
			byID[id] = copied
		}
	}
	r.mu.RUnlock()

	keys := query.Sort
	if len(keys) == 0 {
		keys = []domain.SortKey{{Field: domain.SortByName}}
	}
	domain.SortPets(matched, keys)
	start, end := query.Page.Window(len(matched))

	result := make([]*projection.Projection[*domain.Pet], 0, end-start)
	for _, pet := range matched[start:end] {
		result = append(result, byID[pet.ID])
	}
	return result, nil
}

// FindByIDs returns the pets that exist, preserving the order of ids.
func (r *Repository) FindByIDs(_ context.Context, ids []string) ([]*projection.Projection[*domain.Pet], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*projection.Projection[*domain.Pet], 0, len(ids))
	for _, id := range ids {
		if entry, ok := r.pets[id]; ok {
			result = append(result, projectionCopy(entry))
		}
	}
	return result, nil
}

// SetAdopted flips the adoption flag only when it currently holds the opposite value.
func (r *Repository) SetAdopted(_ context.Context, id string, adopted bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.pets[id]
	if !ok {
		return ports.ErrNotFound
	}
	if entry.pet.Adopted == adopted {
		return ports.ErrStaleAdoptionState
	}
	entry.pet.Adopted = adopted
	entry.metadata.UpdatedAt = r.now()
	return nil
}

func (r *Repository) nameTakenLocked(name, exceptID string) bool {
	for id, entry := range r.pets {
		if id != exceptID && entry.pet.Name == name {
			return true
		}
	}
	return false
}

func projectionCopy(entry *storedPet) *projection.Projection[*domain.Pet] {
	return &projection.Projection[*domain.Pet]{
		Entity:   entry.pet.Clone(),
		Metadata: entry.metadata,
	}
}
