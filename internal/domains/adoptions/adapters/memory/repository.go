package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory adoption store used for demos/tests.
type Repository struct {
	mu        sync.RWMutex
	adoptions map[string]*projection.Projection[*domain.Adoption]
	now       func() time.Time
}

type Option func(*Repository)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

func NewRepository(opts ...Option) *Repository {
	r := &Repository{
		adoptions: map[string]*projection.Projection[*domain.Adoption]{},
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Repository) Insert(_ context.Context, adoption *domain.Adoption) (*projection.Projection[*domain.Adoption], error) {
	if adoption == nil {
		return nil, errors.New("cannot save nil adoption")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.adoptions[adoption.ID]; ok {
		if !existing.Entity.SameLink(adoption) {
			return nil, ports.ErrIDTaken
		}
		return copyOf(existing), nil
	}
	ts := r.now()
	stored := projection.New(adoption.Clone(), ts, ts)
	r.adoptions[adoption.ID] = stored
	return copyOf(stored), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*projection.Projection[*domain.Adoption], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.adoptions[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return copyOf(stored), nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.adoptions[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.adoptions, id)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.Adoption], error) {
	return r.filter(func(*domain.Adoption) bool { return true }), nil
}

func (r *Repository) ListByPet(_ context.Context, petID string) ([]*projection.Projection[*domain.Adoption], error) {
	return r.filter(func(a *domain.Adoption) bool { return a.PetID == petID }), nil
}

func (r *Repository) filter(keep func(*domain.Adoption) bool) []*projection.Projection[*domain.Adoption] {
	r.mu.RLock()
	result := make([]*projection.Projection[*domain.Adoption], 0, len(r.adoptions))
	for _, stored := range r.adoptions {
		if keep(stored.Entity) {
			result = append(result, copyOf(stored))
		}
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].Entity, result[j].Entity
		if !a.DateTime.Equal(b.DateTime) {
			return a.DateTime.Before(b.DateTime)
		}
		return a.ID < b.ID
	})
	return result
}

func copyOf(src *projection.Projection[*domain.Adoption]) *projection.Projection[*domain.Adoption] {
	return &projection.Projection[*domain.Adoption]{Entity: src.Entity.Clone(), Metadata: src.Metadata}
}
