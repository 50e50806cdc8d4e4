package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/devconnect-service/internal/domain"
	"github.com/spec-kit/devconnect-service/internal/repository"
	apperrors "github.com/spec-kit/devconnect-service/pkg/util"
)

// ProfileInput is the field bag accepted by upsert. Empty fields leave the
// stored value untouched; skills arrive as a comma-delimited string.
type ProfileInput struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         string
	Bio            string
	GithubUsername string
	Youtube        string
	Twitter        string
	Facebook       string
	Linkedin       string
	Instagram      string
}

// ExperienceInput carries a new work-history entry.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// EducationInput carries a new schooling entry.
type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

// ProfileService implements profile and sub-document mutations.
type ProfileService struct {
	profiles repository.ProfileRepository
	users    repository.UserRepository
}

// NewProfileService builds the service.
func NewProfileService(profiles repository.ProfileRepository, users repository.UserRepository) *ProfileService {
	return &ProfileService{profiles: profiles, users: users}
}

// Upsert creates or updates the caller's profile from the supplied field
// bag. One find plus one write; identical input is idempotent.
func (s *ProfileService) Upsert(ctx context.Context, userID string, input ProfileInput) (*domain.Profile, error) {
	profile, err := s.profiles.GetByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		profile = &domain.Profile{UserID: userID}
		applyProfileInput(profile, input)
		normalizeProfileLists(profile)
		if err := s.profiles.Create(ctx, profile); err != nil {
			return nil, err
		}
		return profile, nil
	}

	applyProfileInput(profile, input)
	normalizeProfileLists(profile)
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// normalizeProfileLists replaces nil lists with empty ones before a write.
// The skills column is NOT NULL and a nil slice would encode as SQL NULL.
func normalizeProfileLists(profile *domain.Profile) {
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	if profile.Experience == nil {
		profile.Experience = []domain.Experience{}
	}
	if profile.Education == nil {
		profile.Education = []domain.Education{}
	}
}

func applyProfileInput(profile *domain.Profile, input ProfileInput) {
	if input.Company != "" {
		profile.Company = input.Company
	}
	if input.Website != "" {
		profile.Website = input.Website
	}
	if input.Location != "" {
		profile.Location = input.Location
	}
	if input.Status != "" {
		profile.Status = input.Status
	}
	if input.Bio != "" {
		profile.Bio = input.Bio
	}
	if input.GithubUsername != "" {
		profile.GithubUsername = input.GithubUsername
	}
	if input.Skills != "" {
		profile.Skills = SplitSkills(input.Skills)
	}
	if input.Youtube != "" {
		profile.Social.Youtube = input.Youtube
	}
	if input.Twitter != "" {
		profile.Social.Twitter = input.Twitter
	}
	if input.Facebook != "" {
		profile.Social.Facebook = input.Facebook
	}
	if input.Linkedin != "" {
		profile.Social.Linkedin = input.Linkedin
	}
	if input.Instagram != "" {
		profile.Social.Instagram = input.Instagram
	}
}

// SplitSkills turns a comma-delimited string into a trimmed list.
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

// GetByUser returns the profile owned by the given user. A malformed
// user ID can never match a row and is reported as not-found without
// touching the store.
func (s *ProfileService) GetByUser(ctx context.Context, userID string) (*domain.Profile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperrors.NewNotFound("profile")
	}
	profile, err := s.profiles.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("profile")
		}
		return nil, err
	}
	return profile, nil
}

// ListAll returns every profile, newest first.
func (s *ProfileService) ListAll(ctx context.Context) ([]domain.Profile, error) {
	return s.profiles.ListAll(ctx)
}

// AddExperience prepends a new entry so the list stays newest-first.
func (s *ProfileService) AddExperience(ctx context.Context, userID string, input ExperienceInput) (*domain.Profile, error) {
	profile, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := domain.Experience{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		From:        input.From,
		To:          input.To,
		Current:     input.Current,
		Description: input.Description,
	}
	profile.Experience = append([]domain.Experience{entry}, profile.Experience...)
	normalizeProfileLists(profile)

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RemoveExperience deletes the entry with the given ID. An absent ID
// fails with not-found and leaves the list untouched.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, entryID string) (*domain.Profile, error) {
	profile, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := profile.FindExperience(entryID)
	if idx < 0 {
		return nil, apperrors.NewNotFound("experience entry")
	}
	profile.Experience = append(profile.Experience[:idx], profile.Experience[idx+1:]...)
	normalizeProfileLists(profile)

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AddEducation prepends a new entry so the list stays newest-first.
func (s *ProfileService) AddEducation(ctx context.Context, userID string, input EducationInput) (*domain.Profile, error) {
	profile, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := domain.Education{
		ID:           uuid.NewString(),
		School:       input.School,
		Degree:       input.Degree,
		FieldOfStudy: input.FieldOfStudy,
		From:         input.From,
		To:           input.To,
		Current:      input.Current,
		Description:  input.Description,
	}
	profile.Education = append([]domain.Education{entry}, profile.Education...)
	normalizeProfileLists(profile)

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RemoveEducation deletes the entry with the given ID, by identifier only.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, entryID string) (*domain.Profile, error) {
	profile, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := profile.FindEducation(entryID)
	if idx < 0 {
		return nil, apperrors.NewNotFound("education entry")
	}
	profile.Education = append(profile.Education[:idx], profile.Education[idx+1:]...)
	normalizeProfileLists(profile)

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteAccount removes the caller's profile and user record. The caller's
// posts are intentionally left in place.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.profiles.DeleteByUser(ctx, userID); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	return nil
}
