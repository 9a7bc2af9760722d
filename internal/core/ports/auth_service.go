package ports

import (
	"context"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// SignupInput carries the fields required to register an account.
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthService is the authentication core exposed to the transport layer.
type AuthService interface {
	// Signup registers a new account with the default user role and returns
	// the created user plus a fresh bearer token.
	Signup(ctx context.Context, input SignupInput) (*domain.User, string, error)
	// Login verifies credentials and returns a bearer token. Unknown email
	// and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (string, error)
	// Authenticate verifies a bearer token and resolves it to a live
	// identity. Any failure must be surfaced to clients as a 401.
	Authenticate(ctx context.Context, token string) (*domain.Identity, error)
}
