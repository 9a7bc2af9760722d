package domain

import "time"

// Post is a blog entry owned by a user and filed under a category. ImagePath
// is the store-relative path of the attached image, empty when there is none.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Body        string    `json:"body"`
	ImagePath   string    `json:"-"`
	CategoryID  string    `json:"category_id"`
	UserID      string    `json:"user_id"`
	IsPrivate   bool      `json:"is_private"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VisibleTo reports whether the post may be read by the given identity.
// Public posts are visible to everyone, including anonymous readers. Private
// posts are visible only to their owner and to admins.
func (p *Post) VisibleTo(identity *Identity) bool {
	if !p.IsPrivate {
		return true
	}
	if identity == nil || identity.User == nil {
		return false
	}
	return identity.IsAdmin() || identity.User.ID == p.UserID
}
