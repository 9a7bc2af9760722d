package ports

import (
	"context"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts. FindByEmail returns
// the user with its role name already resolved, so authentication never needs
// a second round trip.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// RoleRepository looks up seed roles by name.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	// EnsureSeeded creates the fixed role set (admin, user) when absent.
	// Called once at startup.
	EnsureSeeded(ctx context.Context) error
}
