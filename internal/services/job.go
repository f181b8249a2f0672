package services

import (
	"context"

	"github.com/campushire/apiserver/types"
)

// JobRepository defines persistence operations for jobs.
type JobRepository interface {
	List(ctx context.Context, filter types.JobFilter, offset, limit int) ([]types.Job, int, error)
	ListByRecruiter(ctx context.Context, recruiterID int) ([]types.Job, error)
	Get(ctx context.Context, id int) (types.Job, error)
	Create(ctx context.Context, job types.Job) (types.Job, error)
	Update(ctx context.Context, job types.Job) (types.Job, error)
	Delete(ctx context.Context, id int) error
}

// JobService encapsulates job posting use-cases and enforces posting
// ownership: a job is mutated only by its recruiter or an admin.
type JobService struct {
	repo JobRepository
}

func NewJobService(repo JobRepository) *JobService {
	return &JobService{repo: repo}
}

// List is public. An empty filter status defaults to active so closed
// and draft postings only show up when asked for explicitly.
func (s *JobService) List(ctx context.Context, filter types.JobFilter, offset, limit int) ([]types.Job, int, error) {
	if filter.Status == "" {
		filter.Status = types.JobStatusActive
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, filter, offset, limit)
}

func (s *JobService) ListByRecruiter(ctx context.Context, recruiterID int) ([]types.Job, error) {
	return s.repo.ListByRecruiter(ctx, recruiterID)
}

func (s *JobService) Get(ctx context.Context, id int) (types.Job, error) {
	return s.repo.Get(ctx, id)
}

// Create posts a job owned by the caller. The router has already
// required a recruiter or admin role; ownership is pinned here so a
// caller cannot post on another recruiter's behalf.
func (s *JobService) Create(ctx context.Context, caller types.User, job types.Job) (types.Job, error) {
	job.RecruiterID = caller.ID
	if job.Type == "" {
		job.Type = types.JobTypeFullTime
	}
	if job.Status == "" {
		job.Status = types.JobStatusActive
	}
	if job.Salary.Currency == "" {
		job.Salary.Currency = "USD"
	}
	return s.repo.Create(ctx, job)
}

// Update merges the supplied fields into the posting; omitted fields
// keep their stored value, so a partial payload can never blank the
// employment type or status out of their enums. Only the owning
// recruiter or an admin may update; ownership never changes on update.
func (s *JobService) Update(ctx context.Context, caller types.User, id int, update types.JobUpdate) (types.Job, error) {
	job, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Job{}, err
	}
	if err := requireOwnerOrAdmin(caller, job.RecruiterID); err != nil {
		return types.Job{}, err
	}

	if update.Title != nil {
		job.Title = *update.Title
	}
	if update.Company != nil {
		job.Company = *update.Company
	}
	if update.Location != nil {
		job.Location = *update.Location
	}
	if update.Type != nil {
		job.Type = *update.Type
	}
	if update.Description != nil {
		job.Description = *update.Description
	}
	if update.Requirements != nil {
		job.Requirements = *update.Requirements
	}
	if update.Skills != nil {
		job.Skills = *update.Skills
	}
	if update.Salary != nil {
		job.Salary = *update.Salary
		if job.Salary.Currency == "" {
			job.Salary.Currency = "USD"
		}
	}
	if update.Status != nil {
		job.Status = *update.Status
	}
	if update.ApplicationDeadline != nil {
		job.ApplicationDeadline = update.ApplicationDeadline
	}

	return s.repo.Update(ctx, job)
}

func (s *JobService) Delete(ctx context.Context, caller types.User, id int) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(caller, current.RecruiterID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// requireOwnerOrAdmin is the ownership predicate shared by every
// record-scoped mutation: the caller must be the record's owner or an
// admin. It is evaluated against freshly loaded state on each request.
func requireOwnerOrAdmin(caller types.User, ownerID int) error {
	if caller.ID == ownerID || caller.Role == types.RoleAdmin {
		return nil
	}
	return ErrForbidden
}
