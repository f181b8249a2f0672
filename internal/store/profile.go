package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/campushire/apiserver/types"
)

// ProfileRepository handles persistence for profiles.
type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `id, user_id, bio, skills, education, experience, resume, portfolio, linkedin, github, created_at, updated_at`

func (r *ProfileRepository) GetByUser(ctx context.Context, userID int) (types.Profile, error) {
	const query = `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE user_id = $1`
	var profile types.Profile
	var skillsJSON, educationJSON, experienceJSON []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Bio,
		&skillsJSON,
		&educationJSON,
		&experienceJSON,
		&profile.Resume,
		&profile.Portfolio,
		&profile.LinkedIn,
		&profile.GitHub,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Profile{}, ErrNotFound
		}
		return types.Profile{}, err
	}

	_ = json.Unmarshal(skillsJSON, &profile.Skills)
	_ = json.Unmarshal(educationJSON, &profile.Education)
	_ = json.Unmarshal(experienceJSON, &profile.Experience)
	return profile, nil
}

// Create inserts a profile row. The user_id unique constraint keeps the
// profile 1:1 with the user; a second insert returns ErrConflict.
func (r *ProfileRepository) Create(ctx context.Context, profile types.Profile) (types.Profile, error) {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	skillsJSON, educationJSON, experienceJSON, err := marshalProfileFields(profile)
	if err != nil {
		return types.Profile{}, err
	}

	const query = `
		INSERT INTO profiles (user_id, bio, skills, education, experience, resume, portfolio, linkedin, github, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		profile.UserID,
		profile.Bio,
		skillsJSON,
		educationJSON,
		experienceJSON,
		profile.Resume,
		profile.Portfolio,
		profile.LinkedIn,
		profile.GitHub,
		profile.CreatedAt,
		profile.UpdatedAt,
	).Scan(&profile.ID); err != nil {
		return types.Profile{}, translateError(err)
	}
	return profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile types.Profile) (types.Profile, error) {
	profile.UpdatedAt = time.Now()

	skillsJSON, educationJSON, experienceJSON, err := marshalProfileFields(profile)
	if err != nil {
		return types.Profile{}, err
	}

	const query = `
		UPDATE profiles
		SET bio = $1,
			skills = $2,
			education = $3,
			experience = $4,
			resume = $5,
			portfolio = $6,
			linkedin = $7,
			github = $8,
			updated_at = $9
		WHERE user_id = $10`
	result, err := r.db.ExecContext(
		ctx,
		query,
		profile.Bio,
		skillsJSON,
		educationJSON,
		experienceJSON,
		profile.Resume,
		profile.Portfolio,
		profile.LinkedIn,
		profile.GitHub,
		profile.UpdatedAt,
		profile.UserID,
	)
	if err != nil {
		return types.Profile{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Profile{}, err
	}
	if affected == 0 {
		return types.Profile{}, ErrNotFound
	}
	return profile, nil
}

func marshalProfileFields(profile types.Profile) (skills, education, experience []byte, err error) {
	if skills, err = json.Marshal(profile.Skills); err != nil {
		return nil, nil, nil, err
	}
	if education, err = json.Marshal(profile.Education); err != nil {
		return nil, nil, nil, err
	}
	if experience, err = json.Marshal(profile.Experience); err != nil {
		return nil, nil, nil, err
	}
	return skills, education, experience, nil
}
