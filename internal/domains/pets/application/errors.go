package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/failure"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid pet input")
	// ErrMissingFields is returned when intake omits name or age.
	ErrMissingFields = errors.New("missing required fields (name, age)")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var classified *failure.Error
	if errors.As(err, &classified) {
		return err
	}
	switch {
	case errors.Is(err, domain.ErrEmptyID),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrInvalidAge),
		errors.Is(err, domain.ErrInvalidQuery),
		errors.Is(err, ErrMissingFields):
		return failure.BadRequest(fmt.Errorf("%w: %w", ErrInvalidInput, err))
	case errors.Is(err, ports.ErrNotFound):
		return failure.NotFound(err)
	case errors.Is(err, ports.ErrDuplicateName):
		return failure.Conflict(err)
	}
	return failure.Internal(err)
}
