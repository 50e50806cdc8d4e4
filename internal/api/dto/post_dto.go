package dto

import (
	"time"

	"github.com/spec-kit/devconnect-service/internal/domain"
)

// CreatePostRequest payload for a new post.
type CreatePostRequest struct {
	Text string `json:"text" validate:"required"`
}

// AddCommentRequest payload for a new comment.
type AddCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// PostResponse is the full post document including its embedded likes and
// comments.
type PostResponse struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Text      string           `json:"text"`
	Name      string           `json:"name"`
	AvatarURL string           `json:"avatar_url,omitempty"`
	Likes     []domain.Like    `json:"likes"`
	Comments  []domain.Comment `json:"comments"`
	CreatedAt time.Time        `json:"created_at"`
}
