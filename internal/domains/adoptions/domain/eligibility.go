package domain

import "slices"

// Applicant is the view of a user the eligibility rules need.
type Applicant struct {
	ID       string
	CanAdopt bool
	Pets     []string
}

// Candidate is the view of a pet the eligibility rules need.
type Candidate struct {
	ID      string
	Adopted bool
}

// Evaluate applies the adoption rules in their fixed order. The first violated rule wins.
func Evaluate(applicant Applicant, candidate Candidate) error {
	if !applicant.CanAdopt {
		return ErrUserCannotAdopt
	}
	if slices.Contains(applicant.Pets, candidate.ID) {
		return ErrAlreadyOwned
	}
	if candidate.Adopted {
		return ErrAlreadyAdopted
	}
	return nil
}
