package services

import (
	"context"
	"errors"

	"github.com/campushire/apiserver/internal/store"
	"github.com/campushire/apiserver/types"
)

// ApplicationRepository defines persistence operations for applications.
type ApplicationRepository interface {
	Get(ctx context.Context, id int) (types.Application, error)
	GetByJobAndStudent(ctx context.Context, jobID, studentID int) (types.Application, error)
	ListByStudent(ctx context.Context, studentID int) ([]types.Application, error)
	ListByJob(ctx context.Context, jobID int) ([]types.Application, error)
	Create(ctx context.Context, app types.Application) (types.Application, error)
	UpdateStatus(ctx context.Context, id int, status string) (types.Application, error)
}

// ApplicationService encapsulates the application lifecycle: a student
// applies once per active job; only the job's recruiter or an admin
// reviews and decides.
type ApplicationService struct {
	repo ApplicationRepository
	jobs JobRepository
}

func NewApplicationService(repo ApplicationRepository, jobs JobRepository) *ApplicationService {
	return &ApplicationService{repo: repo, jobs: jobs}
}

// Apply submits the caller's application to the job. The job must exist
// and be active, and the caller must not have applied before. The
// duplicate pre-check is advisory; the store's unique constraint is
// what decides a concurrent race, surfacing the loser as ErrConflict.
func (s *ApplicationService) Apply(ctx context.Context, caller types.User, app types.Application) (types.Application, error) {
	job, err := s.jobs.Get(ctx, app.JobID)
	if err != nil {
		return types.Application{}, err
	}
	if job.Status != types.JobStatusActive {
		return types.Application{}, ErrJobNotActive
	}

	if _, err := s.repo.GetByJobAndStudent(ctx, app.JobID, caller.ID); err == nil {
		return types.Application{}, store.ErrConflict
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.Application{}, err
	}

	app.StudentID = caller.ID
	app.Status = types.ApplicationStatusPending

	created, err := s.repo.Create(ctx, app)
	if err != nil {
		return types.Application{}, err
	}
	created.Job = &job
	return created, nil
}

// ListMine returns the caller's own applications, jobs attached.
func (s *ApplicationService) ListMine(ctx context.Context, caller types.User) ([]types.Application, error) {
	return s.repo.ListByStudent(ctx, caller.ID)
}

// ListForJob returns a job's applications to its owning recruiter or an
// admin, applicant details attached.
func (s *ApplicationService) ListForJob(ctx context.Context, caller types.User, jobID int) ([]types.Application, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(caller, job.RecruiterID); err != nil {
		return nil, err
	}
	return s.repo.ListByJob(ctx, jobID)
}

// UpdateStatus sets the application's status. Permitted only to the
// owning recruiter of the application's job or an admin, so an
// applicant can never decide their own application.
func (s *ApplicationService) UpdateStatus(ctx context.Context, caller types.User, id int, status string) (types.Application, error) {
	app, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Application{}, err
	}
	job, err := s.jobs.Get(ctx, app.JobID)
	if err != nil {
		return types.Application{}, err
	}
	if err := requireOwnerOrAdmin(caller, job.RecruiterID); err != nil {
		return types.Application{}, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return types.Application{}, err
	}
	updated.Job = &job
	return updated, nil
}

// Get returns one application to the applicant, the job's owning
// recruiter, or an admin.
func (s *ApplicationService) Get(ctx context.Context, caller types.User, id int) (types.Application, error) {
	app, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Application{}, err
	}
	job, err := s.jobs.Get(ctx, app.JobID)
	if err != nil {
		return types.Application{}, err
	}
	if caller.ID != app.StudentID && caller.ID != job.RecruiterID && caller.Role != types.RoleAdmin {
		return types.Application{}, ErrForbidden
	}
	app.Job = &job
	return app, nil
}
