package application

import (
	"errors"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
	"github.com/Apurer/go-gin-adoption-api/internal/shared/failure"
)

// ErrCompensationFailed reports that a partially applied adoption could not be undone.
var ErrCompensationFailed = errors.New("adoption compensation failed")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var classified *failure.Error
	if errors.As(err, &classified) {
		return err
	}
	switch {
	case errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrEmptyID):
		return failure.BadRequest(err)
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrPetNotFound),
		errors.Is(err, domain.ErrAdoptionNotFound):
		return failure.NotFound(err)
	case errors.Is(err, domain.ErrUserCannotAdopt):
		return failure.Forbidden(err)
	case errors.Is(err, domain.ErrAlreadyOwned),
		errors.Is(err, domain.ErrAlreadyAdopted),
		errors.Is(err, domain.ErrAdoptionInProgress):
		return failure.Conflict(err)
	}
	return failure.Internal(err)
}

// Reason codes identify adoption failures across process boundaries such as workflow activities.
const (
	ReasonMissingFields      = "MISSING_FIELDS"
	ReasonUserNotFound       = "USER_NOT_FOUND"
	ReasonPetNotFound        = "PET_NOT_FOUND"
	ReasonAdoptionNotFound   = "ADOPTION_NOT_FOUND"
	ReasonUserCannotAdopt    = "USER_CANNOT_ADOPT"
	ReasonAlreadyOwned       = "ALREADY_OWNED"
	ReasonAlreadyAdopted     = "ALREADY_ADOPTED"
	ReasonAdoptionInProgress = "ADOPTION_IN_PROGRESS"
	ReasonCompensationFailed = "COMPENSATION_FAILED"
	ReasonAdoptionIDTaken    = "ADOPTION_ID_TAKEN"
)

var reasons = []struct {
	code string
	err  error
}{
	{ReasonMissingFields, domain.ErrMissingFields},
	{ReasonUserNotFound, domain.ErrUserNotFound},
	{ReasonPetNotFound, domain.ErrPetNotFound},
	{ReasonAdoptionNotFound, domain.ErrAdoptionNotFound},
	{ReasonUserCannotAdopt, domain.ErrUserCannotAdopt},
	{ReasonAlreadyOwned, domain.ErrAlreadyOwned},
	{ReasonAlreadyAdopted, domain.ErrAlreadyAdopted},
	{ReasonAdoptionInProgress, domain.ErrAdoptionInProgress},
	{ReasonCompensationFailed, ErrCompensationFailed},
	{ReasonAdoptionIDTaken, ports.ErrIDTaken},
}

// ReasonOf returns the reason code of a business failure, or "" for anything else.
func ReasonOf(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.code
		}
	}
	return ""
}

// ErrorFromReason rebuilds the classified failure for a reason code. Unknown codes yield nil.
func ErrorFromReason(code string) error {
	for _, r := range reasons {
		if r.code == code {
			return mapError(r.err)
		}
	}
	return nil
}
