package services

import (
	"context"

	"github.com/campushire/apiserver/types"
)

// StatsRepository defines the aggregate count queries.
type StatsRepository interface {
	AdminStats(ctx context.Context) (types.AdminStats, error)
	RecruiterStats(ctx context.Context, recruiterID int) (types.RecruiterStats, error)
	StudentStats(ctx context.Context, studentID int) (types.StudentStats, error)
}

// StatsService exposes role-scoped dashboard aggregates.
type StatsService struct {
	repo StatsRepository
}

func NewStatsService(repo StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

func (s *StatsService) Admin(ctx context.Context) (types.AdminStats, error) {
	return s.repo.AdminStats(ctx)
}

func (s *StatsService) Recruiter(ctx context.Context, caller types.User) (types.RecruiterStats, error) {
	return s.repo.RecruiterStats(ctx, caller.ID)
}

func (s *StatsService) Student(ctx context.Context, caller types.User) (types.StudentStats, error) {
	return s.repo.StudentStats(ctx, caller.ID)
}
