package ports

import (
	"context"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// CategoryRepository defines persistence for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	Update(ctx context.Context, id, name string) (*domain.Category, error)
	// Delete removes the category. Cascading post deletion is handled by the
	// service layer through PostRepository.DeleteByCategory.
	Delete(ctx context.Context, id string) error
}
