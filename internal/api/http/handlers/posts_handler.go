package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/devconnect-service/internal/api/dto"
	"github.com/spec-kit/devconnect-service/internal/auth"
	"github.com/spec-kit/devconnect-service/internal/domain"
	"github.com/spec-kit/devconnect-service/internal/service"
	apperrors "github.com/spec-kit/devconnect-service/pkg/util"
)

// PostsHandler manages post and engagement endpoints.
type PostsHandler struct {
	service *service.PostService
}

// NewPostsHandler constructs handler.
func NewPostsHandler(postService *service.PostService) *PostsHandler {
	return &PostsHandler{service: postService}
}

// Create POST /api/posts.
func (h *PostsHandler) Create(c *fiber.Ctx) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewMissingToken()
	}
	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.FieldError{Msg: "invalid payload"})
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	post, err := h.service.Create(c.UserContext(), userID, req.Text)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(postResponse(post))
}

// ListAll GET /api/posts.
func (h *PostsHandler) ListAll(c *fiber.Ctx) error {
	posts, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		items = append(items, postResponse(&posts[i]))
	}
	return c.JSON(items)
}

// GetByID GET /api/posts/:id.
func (h *PostsHandler) GetByID(c *fiber.Ctx) error {
	post, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(postResponse(post))
}

// Delete DELETE /api/posts/:id.
func (h *PostsHandler) Delete(c *fiber.Ctx) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewMissingToken()
	}
	if err := h.service.Delete(c.UserContext(), userID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"msg": "post removed"})
}

// Like PUT /api/posts/like/:id. Returns the updated like list.
func (h *PostsHandler) Like(c *fiber.Ctx) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewMissingToken()
	}
	likes, err := h.service.Like(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(likes)
}

// Unlike PUT /api/posts/unlike/:id. Returns the updated like list.
func (h *PostsHandler) Unlike(c *fiber.Ctx) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewMissingToken()
	}
	likes, err := h.service.Unlike(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(likes)
}

// AddComment POST /api/posts/comment/:id. Returns the updated comment list.
func (h *PostsHandler) AddComment(c *fiber.Ctx) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewMissingToken()
	}
	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.FieldError{Msg: "invalid payload"})
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	comments, err := h.service.AddComment(c.UserContext(), userID, c.Params("id"), req.Text)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(comments)
}

// DeleteComment DELETE /api/posts/comment/:id/:comment_id. Returns the
// updated comment list.
func (h *PostsHandler) DeleteComment(c *fiber.Ctx) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewMissingToken()
	}
	comments, err := h.service.DeleteComment(c.UserContext(), userID, c.Params("id"), c.Params("comment_id"))
	if err != nil {
		return err
	}
	return c.JSON(comments)
}

func postResponse(post *domain.Post) dto.PostResponse {
	resp := dto.PostResponse{
		ID:        post.ID,
		UserID:    post.UserID,
		Text:      post.Text,
		Name:      post.Name,
		AvatarURL: post.AvatarURL,
		Likes:     post.Likes,
		Comments:  post.Comments,
		CreatedAt: post.CreatedAt,
	}
	if resp.Likes == nil {
		resp.Likes = []domain.Like{}
	}
	if resp.Comments == nil {
		resp.Comments = []domain.Comment{}
	}
	return resp
}
