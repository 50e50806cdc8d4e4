package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/devconnect-service/internal/domain"
	"github.com/spec-kit/devconnect-service/internal/events"
	"github.com/spec-kit/devconnect-service/internal/repository"
	apperrors "github.com/spec-kit/devconnect-service/pkg/util"
)

// PostService implements post creation and the like/comment sub-document
// mutations. Every mutation fetches the whole post, edits it in memory and
// writes it back in one update.
type PostService struct {
	posts      repository.PostRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewPostService builds the service.
func NewPostService(posts repository.PostRepository, users repository.UserRepository, dispatcher events.Dispatcher) *PostService {
	return &PostService{posts: posts, users: users, dispatcher: dispatcher}
}

// Create stores a new post, snapshotting the author's name and avatar at
// creation time. The snapshot is never resynced afterwards.
func (s *PostService) Create(ctx context.Context, userID, text string) (*domain.Post, error) {
	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}

	post := &domain.Post{
		UserID:    userID,
		Text:      text,
		Name:      author.Name,
		AvatarURL: author.AvatarURL,
		Likes:     []domain.Like{},
		Comments:  []domain.Comment{},
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventPostCreated, userID, events.PostCreatedPayload{
		PostID:      post.ID,
		TextPreview: preview(text),
	})
	return post, nil
}

// ListAll returns every post, newest first.
func (s *PostService) ListAll(ctx context.Context) ([]domain.Post, error) {
	return s.posts.ListAll(ctx)
}

// GetByID returns a single post. A malformed ID can never match a row
// and is reported as not-found without touching the store.
func (s *PostService) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFound("post")
	}
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("post")
		}
		return nil, err
	}
	return post, nil
}

// Delete removes a post owned by the caller.
func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return apperrors.NewForbidden("user not authorized")
	}
	return s.posts.Delete(ctx, postID)
}

// Like prepends a like for the caller. A second like by the same user
// fails and leaves the list untouched.
func (s *PostService) Like(ctx context.Context, userID, postID string) ([]domain.Like, error) {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.HasLikeBy(userID) {
		return nil, apperrors.NewAlreadyLiked()
	}

	post.Likes = append([]domain.Like{{UserID: userID}}, post.Likes...)
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventPostLiked, userID, events.PostLikedPayload{
		PostID:     post.ID,
		AuthorID:   post.UserID,
		TotalLikes: len(post.Likes),
	})
	return post.Likes, nil
}

// Unlike removes the caller's like, matching by identity rather than any
// computed index.
func (s *PostService) Unlike(ctx context.Context, userID, postID string) ([]domain.Like, error) {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.HasLikeBy(userID) {
		return nil, apperrors.NewNotLiked()
	}

	remaining := make([]domain.Like, 0, len(post.Likes)-1)
	for _, like := range post.Likes {
		if like.UserID != userID {
			remaining = append(remaining, like)
		}
	}
	post.Likes = remaining

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post.Likes, nil
}

// AddComment prepends a comment with an author snapshot and a fresh ID.
func (s *PostService) AddComment(ctx context.Context, userID, postID, text string) ([]domain.Comment, error) {
	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := domain.Comment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      text,
		Name:      author.Name,
		AvatarURL: author.AvatarURL,
		CreatedAt: time.Now(),
	}
	post.Comments = append([]domain.Comment{comment}, post.Comments...)

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventCommentAdded, userID, events.CommentAddedPayload{
		PostID:      post.ID,
		CommentID:   comment.ID,
		AuthorID:    post.UserID,
		TextPreview: preview(text),
	})
	return post.Comments, nil
}

// DeleteComment removes a comment by identifier. Only the comment's author
// may delete it.
func (s *PostService) DeleteComment(ctx context.Context, userID, postID, commentID string) ([]domain.Comment, error) {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	idx := post.FindComment(commentID)
	if idx < 0 {
		return nil, apperrors.NewNotFound("comment")
	}
	if post.Comments[idx].UserID != userID {
		return nil, apperrors.NewForbidden("user not authorized")
	}
	post.Comments = append(post.Comments[:idx], post.Comments[idx+1:]...)

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post.Comments, nil
}

func (s *PostService) publish(ctx context.Context, eventType events.EventType, actorID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

// preview truncates on a rune boundary so payloads stay valid UTF-8.
func preview(text string) string {
	const max = 80
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
