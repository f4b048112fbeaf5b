package projection

import "time"

// Metadata captures persistence timestamps shared by projections.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Projection represents an aggregate view plus persistence metadata.
type Projection[T any] struct {
	Entity   T
	Metadata Metadata
}

// New wraps an entity with its persistence timestamps.
func New[T any](entity T, createdAt, updatedAt time.Time) *Projection[T] {
	return &Projection[T]{
		Entity:   entity,
		Metadata: Metadata{CreatedAt: createdAt, UpdatedAt: updatedAt},
	}
}

// Map converts a projection list element-wise, skipping nil entries.
func Map[T, R any](sources []*Projection[T], fn func(*Projection[T]) R) []R {
	if len(sources) == 0 {
		return nil
	}
	result := make([]R, 0, len(sources))
	for _, src := range sources {
		if src == nil {
			continue
		}
		result = append(result, fn(src))
	}
	return result
}
