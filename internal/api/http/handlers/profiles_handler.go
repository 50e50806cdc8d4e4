package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/devconnect-service/internal/api/dto"
	"github.com/spec-kit/devconnect-service/internal/auth"
	"github.com/spec-kit/devconnect-service/internal/domain"
	"github.com/spec-kit/devconnect-service/internal/github"
	"github.com/spec-kit/devconnect-service/internal/service"
	apperrors "github.com/spec-kit/devconnect-service/pkg/util"
)

// ProfilesHandler manages profile endpoints.
type ProfilesHandler struct {
	service *service.ProfileService
	github  *github.Client
}

// NewProfilesHandler constructs handler.
func NewProfilesHandler(profileService *service.ProfileService, githubClient *github.Client) *ProfilesHandler {
	return &ProfilesHandler{service: profileService, github: githubClient}
}

// GetMine GET /api/profile/me.
func (h *ProfilesHandler) GetMine(c *fiber.Ctx) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewMissingToken()
	}
	profile, err := h.service.GetByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(profileResponse(profile))
}

// Upsert POST /api/profile.
func (h *ProfilesHandler) Upsert(c *fiber.Ctx) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewMissingToken()
	}
	var req dto.UpsertProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.FieldError{Msg: "invalid payload"})
	}

	profile, err := h.service.Upsert(c.UserContext(), userID, service.ProfileInput{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         req.Skills,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Youtube:        req.Social.Youtube,
		Twitter:        req.Social.Twitter,
		Facebook:       req.Social.Facebook,
		Linkedin:       req.Social.Linkedin,
		Instagram:      req.Social.Instagram,
	})
	if err != nil {
		return err
	}
	return c.JSON(profileResponse(profile))
}

// ListAll GET /api/profile.
func (h *ProfilesHandler) ListAll(c *fiber.Ctx) error {
	profiles, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		items = append(items, profileResponse(&profiles[i]))
	}
	return c.JSON(items)
}

// GetByUser GET /api/profile/user/:user_id.
func (h *ProfilesHandler) GetByUser(c *fiber.Ctx) error {
	profile, err := h.service.GetByUser(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(profileResponse(profile))
}

// DeleteAccount DELETE /api/profile.
func (h *ProfilesHandler) DeleteAccount(c *fiber.Ctx) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewMissingToken()
	}
	if err := h.service.DeleteAccount(c.UserContext(), userID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"msg": "user deleted"})
}

// AddExperience PUT /api/profile/experience.
func (h *ProfilesHandler) AddExperience(c *fiber.Ctx) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewMissingToken()
	}
	var req dto.AddExperienceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.FieldError{Msg: "invalid payload"})
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	profile, err := h.service.AddExperience(c.UserContext(), userID, service.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(profileResponse(profile))
}

// RemoveExperience DELETE /api/profile/experience/:id.
func (h *ProfilesHandler) RemoveExperience(c *fiber.Ctx) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewMissingToken()
	}
	profile, err := h.service.RemoveExperience(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(profileResponse(profile))
}

// AddEducation PUT /api/profile/education.
func (h *ProfilesHandler) AddEducation(c *fiber.Ctx) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewMissingToken()
	}
	var req dto.AddEducationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.FieldError{Msg: "invalid payload"})
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	profile, err := h.service.AddEducation(c.UserContext(), userID, service.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(profileResponse(profile))
}

// RemoveEducation DELETE /api/profile/education/:id.
func (h *ProfilesHandler) RemoveEducation(c *fiber.Ctx) error {
	userID, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewMissingToken()
	}
	profile, err := h.service.RemoveEducation(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(profileResponse(profile))
}

// GithubRepos GET /api/profile/github/:username.
func (h *ProfilesHandler) GithubRepos(c *fiber.Ctx) error {
	repos, err := h.github.ListRepos(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}
	return c.JSON(repos)
}

func profileResponse(profile *domain.Profile) dto.ProfileResponse {
	resp := dto.ProfileResponse{
		ID:             profile.ID,
		UserID:         profile.UserID,
		Company:        profile.Company,
		Website:        profile.Website,
		Location:       profile.Location,
		Status:         profile.Status,
		Skills:         profile.Skills,
		Bio:            profile.Bio,
		GithubUsername: profile.GithubUsername,
		Social:         profile.Social,
		Experience:     profile.Experience,
		Education:      profile.Education,
		CreatedAt:      profile.CreatedAt,
		UpdatedAt:      profile.UpdatedAt,
	}
	if resp.Experience == nil {
		resp.Experience = []domain.Experience{}
	}
	if resp.Education == nil {
		resp.Education = []domain.Education{}
	}
	return resp
}
