package domain

import "errors"

// Auth failures. ErrUserNotFound is internal only: the API layer always
// surfaces it as a generic 401 so a probe cannot distinguish an unknown email
// from a wrong password.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("could not validate credentials")
	ErrForbidden          = errors.New("access forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrMissingRole        = errors.New("role not seeded")
)

// Content failures.
var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrPostNotFound      = errors.New("post not found")
)
