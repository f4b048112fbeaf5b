package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidQuery reports an unsupported sort key or pagination value.
var ErrInvalidQuery = errors.New("invalid pet query")

// StringFilter matches a text attribute. Every non-nil operand must hold.
type StringFilter struct {
	Eq          *string
	Ne          *string
	Contains    *string
	NotContains *string
}

// IntFilter matches a numeric attribute. Every non-nil operand must hold.
type IntFilter struct {
	Eq  *int
	Ne  *int
	Gt  *int
	Gte *int
	Lt  *int
	Lte *int
}

// Filter narrows the catalog by attribute.
type Filter struct {
	Name    *StringFilter
	Race    *StringFilter
	Age     *IntFilter
	Adopted *bool
}

// SortField enumerates the sortable pet attributes.
type SortField string

const (
	SortByName SortField = "name"
	SortByRace SortField = "race"
	SortByAge  SortField = "age"
)

// SortKey orders results by one attribute.
type SortKey struct {
	Field      SortField
	Descending bool
}

// Page bounds the result window. A zero Limit means unbounded.
type Page struct {
	Limit  int
	Offset int
}

// Query combines filter, ordering and pagination.
type Query struct {
	Filter Filter
	Sort   []SortKey
	Page   Page
}

// ParseSort reads a comma separated list such as "name,-age".
func ParseSort(raw string) ([]SortKey, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var keys []SortKey
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key := SortKey{}
		if strings.HasPrefix(part, "-") {
			key.Descending = true
			part = strings.TrimPrefix(part, "-")
		}
		switch field := SortField(strings.ToLower(part)); field {
		case SortByName, SortByRace, SortByAge:
			key.Field = field
		default:
			return nil, fmt.Errorf("%w: unknown sort field %q", ErrInvalidQuery, part)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// Validate checks pagination bounds.
func (q Query) Validate() error {
	if q.Page.Limit < 0 || q.Page.Offset < 0 {
		return fmt.Errorf("%w: limit and offset must be non-negative", ErrInvalidQuery)
	}
	return nil
}

// Matches reports whether pet satisfies every configured filter.
func (f Filter) Matches(pet *Pet) bool {
	if pet == nil {
		return false
	}
	if f.Adopted != nil && pet.Adopted != *f.Adopted {
		return false
	}
	return f.Name.matches(pet.Name) && f.Race.matches(pet.Race) && f.Age.matches(pet.Age)
}

func (f *StringFilter) matches(value string) bool {
	if f == nil {
		return true
	}
	lower := strings.ToLower(value)
	if f.Eq != nil && value != *f.Eq {
		return false
	}
	if f.Ne != nil && value == *f.Ne {
		return false
	}
	if f.Contains != nil && !strings.Contains(lower, strings.ToLower(*f.Contains)) {
		return false
	}
	if f.NotContains != nil && strings.Contains(lower, strings.ToLower(*f.NotContains)) {
		return false
	}
	return true
}

func (f *IntFilter) matches(value int) bool {
	if f == nil {
		return true
	}
	switch {
	case f.Eq != nil && value != *f.Eq:
		return false
	case f.Ne != nil && value == *f.Ne:
		return false
	case f.Gt != nil && value <= *f.Gt:
		return false
	case f.Gte != nil && value < *f.Gte:
		return false
	case f.Lt != nil && value >= *f.Lt:
		return false
	case f.Lte != nil && value > *f.Lte:
		return false
	}
	return true
}

// SortPets orders pets in place by keys, breaking ties by id for stable pages.
func SortPets(pets []*Pet, keys []SortKey) {
	sort.SliceStable(pets, func(i, j int) bool {
		a, b := pets[i], pets[j]
		for _, key := range keys {
			cmp := compare(a, b, key.Field)
			if cmp == 0 {
				continue
			}
			if key.Descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return a.ID < b.ID
	})
}

func compare(a, b *Pet, field SortField) int {
	switch field {
	case SortByName:
		return strings.Compare(a.Name, b.Name)
	case SortByRace:
		return strings.Compare(a.Race, b.Race)
	case SortByAge:
		return a.Age - b.Age
	}
	return 0
}

// Window applies offset and limit to an already ordered slice.
func (p Page) Window(length int) (start, end int) {
	start = p.Offset
	if start > length {
		start = length
	}
	end = length
	if p.Limit > 0 && start+p.Limit < end {
		end = start + p.Limit
	}
	return start, end
}
