package ports

import (
	"context"
	"time"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// CreatePostInput carries all data for a new post. Image is optional; when
// Filename is empty no image is stored.
type CreatePostInput struct {
	Title       string
	Description string
	Body        string
	CategoryID  string
	IsPrivate   bool
	Image       ImageUpload
}

// UpdatePostInput uses pointers for partial updates: nil fields are left
// untouched.
type UpdatePostInput struct {
	Title       *string
	Description *string
	Body        *string
	CategoryID  *string
	IsPrivate   *bool
	Image       ImageUpload
}

// PostView is a post shaped for responses: the category name is resolved and
// the image path is expanded to an absolute URL.
type PostView struct {
	ID           string
	Title        string
	Description  string
	Body         string
	ImageURL     string
	CategoryID   string
	CategoryName string
	UserID       string
	IsPrivate    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PostService defines use-case operations for posts. Identity is required for
// mutations; reads accept a nil identity for anonymous access.
type PostService interface {
	Create(ctx context.Context, identity *domain.Identity, input CreatePostInput) (*PostView, error)
	Get(ctx context.Context, identity *domain.Identity, id string) (*PostView, error)
	List(ctx context.Context, identity *domain.Identity) ([]*PostView, error)
	Update(ctx context.Context, identity *domain.Identity, id string, input UpdatePostInput) (*PostView, error)
	Delete(ctx context.Context, identity *domain.Identity, id string) error
}
