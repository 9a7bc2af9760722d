package ports

import (
	"context"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// CategoryService defines use-case operations for categories. All mutations
// are admin-gated at the transport layer; the service assumes the gate ran.
type CategoryService interface {
	Create(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Update(ctx context.Context, id, name string) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}
