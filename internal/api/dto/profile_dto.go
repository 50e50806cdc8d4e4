package dto

import (
	"time"

	"github.com/spec-kit/devconnect-service/internal/domain"
)

// SocialRequest is the optional social sub-object on profile upsert.
type SocialRequest struct {
	Youtube   string `json:"youtube"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	Linkedin  string `json:"linkedin"`
	Instagram string `json:"instagram"`
}

// UpsertProfileRequest is the profile field bag. Skills arrive as a
// comma-delimited string.
type UpsertProfileRequest struct {
	Company        string        `json:"company"`
	Website        string        `json:"website"`
	Location       string        `json:"location"`
	Status         string        `json:"status"`
	Skills         string        `json:"skills"`
	Bio            string        `json:"bio"`
	GithubUsername string        `json:"github_username"`
	Social         SocialRequest `json:"social"`
}

// AddExperienceRequest payload for a new work-history entry.
type AddExperienceRequest struct {
	Title       string     `json:"title" validate:"required"`
	Company     string     `json:"company" validate:"required"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from" validate:"required"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

// AddEducationRequest payload for a new schooling entry.
type AddEducationRequest struct {
	School       string     `json:"school" validate:"required"`
	Degree       string     `json:"degree" validate:"required"`
	FieldOfStudy string     `json:"field_of_study" validate:"required"`
	From         time.Time  `json:"from" validate:"required"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

// ProfileResponse is the full profile document returned by every profile
// endpoint.
type ProfileResponse struct {
	ID             string              `json:"id"`
	UserID         string              `json:"user_id"`
	Company        string              `json:"company,omitempty"`
	Website        string              `json:"website,omitempty"`
	Location       string              `json:"location,omitempty"`
	Status         string              `json:"status,omitempty"`
	Skills         []string            `json:"skills,omitempty"`
	Bio            string              `json:"bio,omitempty"`
	GithubUsername string              `json:"github_username,omitempty"`
	Social         domain.SocialLinks  `json:"social"`
	Experience     []domain.Experience `json:"experience"`
	Education      []domain.Education  `json:"education"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}
