package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/devconnect-service/internal/domain"
)

// ProfileRepository encapsulates profile persistence. Nested lists
// (skills, social, experience, education) live in JSONB columns and are
// always written whole: every mutation is a fetch of the full document
// followed by a single update, last-write-wins at the row level.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	Update(ctx context.Context, profile *domain.Profile) error
	DeleteByUser(ctx context.Context, userID string) error
	GetByUser(ctx context.Context, userID string) (*domain.Profile, error)
	ListAll(ctx context.Context) ([]domain.Profile, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository instantiates repository.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

const profileColumns = `id, user_id, company, website, location, status, skills, bio,
       github_username, social, experience, education, created_at, updated_at`

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	const query = `
        INSERT INTO profiles (user_id, company, website, location, status, skills, bio,
                              github_username, social, experience, education)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		profile.UserID,
		profile.Company,
		profile.Website,
		profile.Location,
		profile.Status,
		profile.Skills,
		profile.Bio,
		profile.GithubUsername,
		profile.Social,
		profile.Experience,
		profile.Education,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	const query = `
        UPDATE profiles SET company=$1, website=$2, location=$3, status=$4, skills=$5,
            bio=$6, github_username=$7, social=$8, experience=$9, education=$10, updated_at=NOW()
        WHERE id=$11`
	cmd, err := r.pool.Exec(ctx, query,
		profile.Company,
		profile.Website,
		profile.Location,
		profile.Status,
		profile.Skills,
		profile.Bio,
		profile.GithubUsername,
		profile.Social,
		profile.Experience,
		profile.Education,
		profile.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *profileRepository) DeleteByUser(ctx context.Context, userID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id=$1`, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *profileRepository) GetByUser(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id=$1`
	var profile domain.Profile
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Company,
		&profile.Website,
		&profile.Location,
		&profile.Status,
		&profile.Skills,
		&profile.Bio,
		&profile.GithubUsername,
		&profile.Social,
		&profile.Experience,
		&profile.Education,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) ListAll(ctx context.Context) ([]domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Profile
	for rows.Next() {
		var profile domain.Profile
		if err := rows.Scan(
			&profile.ID,
			&profile.UserID,
			&profile.Company,
			&profile.Website,
			&profile.Location,
			&profile.Status,
			&profile.Skills,
			&profile.Bio,
			&profile.GithubUsername,
			&profile.Social,
			&profile.Experience,
			&profile.Education,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, profile)
	}
	return result, rows.Err()
}
