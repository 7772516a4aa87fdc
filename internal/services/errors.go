package services

import "errors"

// Sentinel errors returned by services. Controllers map these to the HTTP
// error taxonomy (400/401/404).
var (
	// ErrNotFound means the record is absent or not owned by the caller
	ErrNotFound = errors.New("record not found")
	// ErrEmailRequired is returned when creating a user without an email
	ErrEmailRequired = errors.New("an email must be set")
	// ErrEmailTaken is returned on duplicate user registration
	ErrEmailTaken = errors.New("a user with this email already exists")
	// ErrInvalidCredentials is returned on failed authentication
	ErrInvalidCredentials = errors.New("incorrect username or password")
	// ErrNameRequired is returned when creating a tag/ingredient without a name
	ErrNameRequired = errors.New("a name must be set")
	// ErrBadReference is returned when a recipe references a tag or
	// ingredient ID that does not exist
	ErrBadReference = errors.New("referenced record does not exist")
)
