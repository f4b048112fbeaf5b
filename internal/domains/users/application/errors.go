package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/failure"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrMissingName is returned when a name is absent.
	ErrMissingName = errors.New("missing required field (name)")
	// ErrMissingCanAdopt is returned when verification omits the flag.
	ErrMissingCanAdopt = errors.New("canAdopt must be a boolean")
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
		errors.Is(err, ErrMissingName),
		errors.Is(err, ErrMissingCanAdopt):
		return failure.BadRequest(fmt.Errorf("%w: %w", ErrInvalidInput, err))
	case errors.Is(err, ports.ErrNotFound):
		return failure.NotFound(err)
	}
	return failure.Internal(err)
}
