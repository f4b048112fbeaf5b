package types

// UserIdentifier addresses a single user.
type UserIdentifier struct {
	ID string
}

// CreateUserInput registers a new adopter. Name is required.
type CreateUserInput struct {
	Name *string
}

// RenameUserInput changes the display name.
type RenameUserInput struct {
	ID   string
	Name *string
}

// VerifyUserInput grants or revokes adoption rights. CanAdopt is required.
type VerifyUserInput struct {
	ID       string
	CanAdopt *bool
}
