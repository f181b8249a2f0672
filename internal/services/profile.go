package services

import (
	"context"
	"errors"

	"github.com/campushire/apiserver/internal/store"
	"github.com/campushire/apiserver/types"
)

// ProfileRepository defines persistence operations for profiles.
type ProfileRepository interface {
	GetByUser(ctx context.Context, userID int) (types.Profile, error)
	Create(ctx context.Context, profile types.Profile) (types.Profile, error)
	Update(ctx context.Context, profile types.Profile) (types.Profile, error)
}

// ProfileService encapsulates profile use-cases. A caller only ever
// writes the profile keyed by their own user id; reads of other users'
// profiles are allowed to any authenticated caller.
type ProfileService struct {
	repo ProfileRepository
}

func NewProfileService(repo ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// GetMine returns the caller's profile. Registration creates it, but if
// it is somehow missing an empty one is created on the spot rather than
// reporting NotFound for a registered user.
func (s *ProfileService) GetMine(ctx context.Context, userID int) (types.Profile, error) {
	profile, err := s.repo.GetByUser(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return types.Profile{}, err
	}
	return s.repo.Create(ctx, types.Profile{UserID: userID})
}

// GetByUser returns another user's profile, read-only.
func (s *ProfileService) GetByUser(ctx context.Context, userID int) (types.Profile, error) {
	return s.repo.GetByUser(ctx, userID)
}

// UpdateMine merges the supplied fields into the caller's profile,
// creating it first if absent. Nil fields are left untouched.
func (s *ProfileService) UpdateMine(ctx context.Context, userID int, update types.ProfileUpdate) (types.Profile, error) {
	profile, err := s.GetMine(ctx, userID)
	if err != nil {
		return types.Profile{}, err
	}

	if update.Bio != nil {
		profile.Bio = *update.Bio
	}
	if update.Skills != nil {
		profile.Skills = *update.Skills
	}
	if update.Education != nil {
		profile.Education = *update.Education
	}
	if update.Experience != nil {
		profile.Experience = *update.Experience
	}
	if update.Resume != nil {
		profile.Resume = *update.Resume
	}
	if update.Portfolio != nil {
		profile.Portfolio = *update.Portfolio
	}
	if update.LinkedIn != nil {
		profile.LinkedIn = *update.LinkedIn
	}
	if update.GitHub != nil {
		profile.GitHub = *update.GitHub
	}

	return s.repo.Update(ctx, profile)
}

// SetResume records the uploaded resume's URL on the caller's profile.
func (s *ProfileService) SetResume(ctx context.Context, userID int, url string) (types.Profile, error) {
	return s.UpdateMine(ctx, userID, types.ProfileUpdate{Resume: &url})
}
