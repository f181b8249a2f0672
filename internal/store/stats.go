package store

import (
	"context"
	"database/sql"

	"github.com/campushire/apiserver/types"
)

// StatsRepository computes point-in-time aggregate counts. Every read
// is a fresh COUNT query; nothing is cached.
type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) AdminStats(ctx context.Context) (types.AdminStats, error) {
	var stats types.AdminStats
	counts := []struct {
		query string
		args  []any
		dest  *int
	}{
		{`SELECT COUNT(1) FROM users WHERE role = $1`, []any{types.RoleStudent}, &stats.TotalStudents},
		{`SELECT COUNT(1) FROM users WHERE role = $1`, []any{types.RoleRecruiter}, &stats.TotalRecruiters},
		{`SELECT COUNT(1) FROM jobs`, nil, &stats.TotalJobs},
		{`SELECT COUNT(1) FROM jobs WHERE status = $1`, []any{types.JobStatusActive}, &stats.ActiveJobs},
		{`SELECT COUNT(1) FROM applications`, nil, &stats.TotalApplications},
		{`SELECT COUNT(1) FROM users u
		  WHERE u.role = $1 AND NOT EXISTS (SELECT 1 FROM jobs j WHERE j.recruiter_id = u.id)`,
			[]any{types.RoleRecruiter}, &stats.PendingRecruiters},
	}
	for _, c := range counts {
		if err := r.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return types.AdminStats{}, err
		}
	}
	return stats, nil
}

func (r *StatsRepository) RecruiterStats(ctx context.Context, recruiterID int) (types.RecruiterStats, error) {
	var stats types.RecruiterStats
	counts := []struct {
		query string
		args  []any
		dest  *int
	}{
		{`SELECT COUNT(1) FROM jobs WHERE recruiter_id = $1`, []any{recruiterID}, &stats.TotalJobs},
		{`SELECT COUNT(1) FROM jobs WHERE recruiter_id = $1 AND status = $2`,
			[]any{recruiterID, types.JobStatusActive}, &stats.ActiveJobs},
		{`SELECT COUNT(1) FROM applications a
		  JOIN jobs j ON j.id = a.job_id
		  WHERE j.recruiter_id = $1`, []any{recruiterID}, &stats.TotalApplications},
	}
	for _, c := range counts {
		if err := r.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return types.RecruiterStats{}, err
		}
	}
	return stats, nil
}

func (r *StatsRepository) StudentStats(ctx context.Context, studentID int) (types.StudentStats, error) {
	var stats types.StudentStats
	counts := []struct {
		query string
		args  []any
		dest  *int
	}{
		{`SELECT COUNT(1) FROM applications WHERE student_id = $1`, []any{studentID}, &stats.TotalApplications},
		{`SELECT COUNT(1) FROM applications WHERE student_id = $1 AND status = $2`,
			[]any{studentID, types.ApplicationStatusPending}, &stats.PendingApplications},
		{`SELECT COUNT(1) FROM applications WHERE student_id = $1 AND status = $2`,
			[]any{studentID, types.ApplicationStatusAccepted}, &stats.AcceptedApplications},
		{`SELECT COUNT(1) FROM applications WHERE student_id = $1 AND status = $2`,
			[]any{studentID, types.ApplicationStatusRejected}, &stats.RejectedApplications},
	}
	for _, c := range counts {
		if err := r.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return types.StudentStats{}, err
		}
	}
	return stats, nil
}
