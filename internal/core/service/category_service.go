package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

// CategoryService implements category CRUD. Role enforcement happens at the
// transport layer; every mutation route declares RequireRole(admin).
type CategoryService struct {
	categories ports.CategoryRepository
	posts      ports.PostRepository
	logger     zerolog.Logger
}

func NewCategoryService(categories ports.CategoryRepository, posts ports.PostRepository, logger zerolog.Logger) *CategoryService {
	return &CategoryService{categories: categories, posts: posts, logger: logger}
}

func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	created, err := s.categories.Create(ctx, &domain.Category{Name: name})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("category", created.Name).Msg("category created")
	return created, nil
}

func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *CategoryService) Update(ctx context.Context, id, name string) (*domain.Category, error) {
	return s.categories.Update(ctx, id, name)
}

// Delete removes a category and all posts filed under it, mirroring the
// relational cascade the schema used to provide.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.posts.DeleteByCategory(ctx, id); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("category_id", id).Msg("category deleted")
	return nil
}
