package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-api/internal/api/metrics"
	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

// PostService implements post CRUD with owner-based visibility. Creation is
// authenticated-only; update and delete require the owner or an admin.
type PostService struct {
	posts      ports.PostRepository
	categories ports.CategoryRepository
	images     ports.ImageStore
	baseURL    string
	logger     zerolog.Logger
}

func NewPostService(posts ports.PostRepository, categories ports.CategoryRepository, images ports.ImageStore, baseURL string, logger zerolog.Logger) *PostService {
	return &PostService{
		posts:      posts,
		categories: categories,
		images:     images,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

func (s *PostService) Create(ctx context.Context, identity *domain.Identity, input ports.CreatePostInput) (*ports.PostView, error) {
	if err := domain.Authorize(identity, ""); err != nil {
		return nil, err
	}

	category, err := s.categories.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	imagePath := ""
	if input.Image.Filename != "" {
		imagePath, err = s.images.Save(input.Image)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	post := &domain.Post{
		Title:       input.Title,
		Description: input.Description,
		Body:        input.Body,
		ImagePath:   imagePath,
		CategoryID:  category.ID,
		UserID:      identity.User.ID,
		IsPrivate:   input.IsPrivate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	visibility := "public"
	if created.IsPrivate {
		visibility = "private"
	}
	metrics.PostsCreatedTotal.WithLabelValues(visibility).Inc()
	s.logger.Info().Str("post_id", created.ID).Str("user_id", created.UserID).Msg("post created")

	return s.view(created, category.Name), nil
}

func (s *PostService) Get(ctx context.Context, identity *domain.Identity, id string) (*ports.PostView, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.VisibleTo(identity) {
		return nil, domain.ErrForbidden
	}
	name, err := s.categoryName(ctx, post.CategoryID)
	if err != nil {
		return nil, err
	}
	return s.view(post, name), nil
}

// List returns every post visible to the caller: all public posts, plus the
// caller's own private posts. Admins see everything; anonymous callers see
// only public posts.
func (s *PostService) List(ctx context.Context, identity *domain.Identity) ([]*ports.PostView, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}

	names, err := s.categoryNames(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*ports.PostView, 0, len(posts))
	for _, post := range posts {
		if !post.VisibleTo(identity) {
			continue
		}
		views = append(views, s.view(post, names[post.CategoryID]))
	}
	return views, nil
}

func (s *PostService) Update(ctx context.Context, identity *domain.Identity, id string, input ports.UpdatePostInput) (*ports.PostView, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwner(identity, post); err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Description != nil {
		post.Description = *input.Description
	}
	if input.Body != nil {
		post.Body = *input.Body
	}
	if input.CategoryID != nil {
		category, err := s.categories.FindByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		post.CategoryID = category.ID
	}
	if input.IsPrivate != nil {
		post.IsPrivate = *input.IsPrivate
	}
	if input.Image.Filename != "" {
		old := post.ImagePath
		post.ImagePath, err = s.images.Save(input.Image)
		if err != nil {
			return nil, err
		}
		if old != "" {
			if err := s.images.Remove(old); err != nil {
				s.logger.Warn().Err(err).Str("path", old).Msg("could not remove replaced image")
			}
		}
	}
	post.UpdatedAt = time.Now().UTC()

	updated, err := s.posts.Update(ctx, post)
	if err != nil {
		return nil, err
	}
	name, err := s.categoryName(ctx, updated.CategoryID)
	if err != nil {
		return nil, err
	}
	return s.view(updated, name), nil
}

func (s *PostService) Delete(ctx context.Context, identity *domain.Identity, id string) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeOwner(identity, post); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	if post.ImagePath != "" {
		if err := s.images.Remove(post.ImagePath); err != nil {
			s.logger.Warn().Err(err).Str("path", post.ImagePath).Msg("could not remove post image")
		}
	}
	s.logger.Info().Str("post_id", id).Msg("post deleted")
	return nil
}

// authorizeOwner allows the post owner and admins through; everyone else gets
// ErrForbidden.
func (s *PostService) authorizeOwner(identity *domain.Identity, post *domain.Post) error {
	if err := domain.Authorize(identity, ""); err != nil {
		return err
	}
	if identity.IsAdmin() || identity.User.ID == post.UserID {
		return nil
	}
	return domain.ErrForbidden
}

func (s *PostService) view(post *domain.Post, categoryName string) *ports.PostView {
	imageURL := ""
	if post.ImagePath != "" {
		imageURL = s.baseURL + "/uploads/" + post.ImagePath
	}
	return &ports.PostView{
		ID:           post.ID,
		Title:        post.Title,
		Description:  post.Description,
		Body:         post.Body,
		ImageURL:     imageURL,
		CategoryID:   post.CategoryID,
		CategoryName: categoryName,
		UserID:       post.UserID,
		IsPrivate:    post.IsPrivate,
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
	}
}

// categoryName resolves a category for display. A missing category is
// tolerated, since a cascade delete can race the lookup; any other repository
// fault propagates.
func (s *PostService) categoryName(ctx context.Context, id string) (string, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return "", nil
		}
		return "", err
	}
	return category.Name, nil
}

func (s *PostService) categoryNames(ctx context.Context) (map[string]string, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}
