package domain

import "errors"

var (
	ErrEmptyID            = errors.New("adoption id is required")
	ErrMissingFields      = errors.New("missing required fields (userId, petId)")
	ErrUserNotFound       = errors.New("user not found")
	ErrPetNotFound        = errors.New("pet not found")
	ErrAdoptionNotFound   = errors.New("adoption not found")
	ErrUserCannotAdopt    = errors.New("user cannot adopt pets")
	ErrAlreadyOwned       = errors.New("conflict: user already owns this pet")
	ErrAlreadyAdopted     = errors.New("conflict: this pet has already been adopted")
	ErrAdoptionInProgress = errors.New("conflict: an adoption for this pet is already in progress")
)
