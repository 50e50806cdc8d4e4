package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventPostCreated    EventType = "post_created"
	EventPostLiked      EventType = "post_liked"
	EventCommentAdded   EventType = "comment_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// PostCreatedPayload payload.
type PostCreatedPayload struct {
	PostID      string `json:"post_id"`
	TextPreview string `json:"text_preview"`
}

// PostLikedPayload payload.
type PostLikedPayload struct {
	PostID      string `json:"post_id"`
	AuthorID    string `json:"author_id"`
	TotalLikes  int    `json:"total_likes"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	PostID      string `json:"post_id"`
	CommentID   string `json:"comment_id"`
	AuthorID    string `json:"author_id"`
	TextPreview string `json:"text_preview"`
}
