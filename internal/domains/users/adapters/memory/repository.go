package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps users in memory. Pet reference updates are atomic per user.
type Repository struct {
	mu    sync.RWMutex
	users map[string]*storedUser
	now   func() time.Time
}

type storedUser struct {
	user     *domain.User
	metadata projection.Metadata
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
	r := &Repository{users: map[string]*storedUser{}, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Repository) Create(_ context.Context, user *domain.User) (*projection.Projection[*domain.User], error) {
	if user == nil {
		return nil, errors.New("cannot save nil user")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; ok {
		return nil, errors.New("user id already exists")
	}
	ts := r.now()
	stored := &storedUser{
		user:     user.Clone(),
		metadata: projection.Metadata{CreatedAt: ts, UpdatedAt: ts},
	}
	if stored.user.Pets == nil {
		stored.user.Pets = []string{}
	}
	r.users[user.ID] = stored
	return projectionCopy(stored), nil
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*projection.Projection[*domain.User], error) {
	if user == nil {
		return nil, errors.New("cannot save nil user")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.users[user.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	entry.user.Name = user.Name
	entry.user.CanAdopt = user.CanAdopt
	entry.metadata.UpdatedAt = r.now()
	return projectionCopy(entry), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*projection.Projection[*domain.User], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// List returns users in creation order.
func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.User], error) {
	r.mu.RLock()
	result := make([]*projection.Projection[*domain.User], 0, len(r.users))
	for _, entry := range r.users {
		result = append(result, projectionCopy(entry))
	}
	r.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.Metadata.CreatedAt.Equal(b.Metadata.CreatedAt) {
			return a.Metadata.CreatedAt.Before(b.Metadata.CreatedAt)
		}
		return a.Entity.ID < b.Entity.ID
	})
	return result, nil
}

func (r *Repository) AttachPet(_ context.Context, userID, petID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.users[userID]
	if !ok {
		return ports.ErrNotFound
	}
	if err := entry.user.AttachPet(petID); err != nil {
		if errors.Is(err, domain.ErrPetAlreadyOwned) {
			return ports.ErrPetAlreadyAttached
		}
		return err
	}
	entry.metadata.UpdatedAt = r.now()
	return nil
}

func (r *Repository) DetachPet(_ context.Context, userID, petID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.users[userID]
	if !ok {
		return ports.ErrNotFound
	}
	if !slices.Contains(entry.user.Pets, petID) {
		return ports.ErrPetNotAttached
	}
	_ = entry.user.DetachPet(petID)
	entry.metadata.UpdatedAt = r.now()
	return nil
}

func projectionCopy(entry *storedUser) *projection.Projection[*domain.User] {
	return &projection.Projection[*domain.User]{
		Entity:   entry.user.Clone(),
		Metadata: entry.metadata,
	}
}
