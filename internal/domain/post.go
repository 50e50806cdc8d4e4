package domain

import "time"

// Like marks that a user liked a post. At most one per user per post.
type Like struct {
	UserID string `json:"user_id"`
}

// Comment is a reply embedded in a post. The author name and avatar are
// snapshots taken when the comment was written and are never resynced.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Post is the aggregate for feed entries. Likes and comments are kept
// newest-first inside the post document itself.
type Post struct {
	ID        string
	UserID    string
	Text      string
	Name      string
	AvatarURL string
	Likes     []Like
	Comments  []Comment
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasLikeBy reports whether the given user already liked the post.
func (p *Post) HasLikeBy(userID string) bool {
	for i := range p.Likes {
		if p.Likes[i].UserID == userID {
			return true
		}
	}
	return false
}

// FindComment returns the index of the comment with the given ID, or -1.
func (p *Post) FindComment(id string) int {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return i
		}
	}
	return -1
}
