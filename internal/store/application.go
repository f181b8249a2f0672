package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/campushire/apiserver/types"
)

// ApplicationRepository handles persistence for applications.
type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Get(ctx context.Context, id int) (types.Application, error) {
	const query = `
		SELECT id, job_id, student_id, cover_letter, resume, status, applied_at, updated_at
		FROM applications
		WHERE id = $1`
	var app types.Application
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&app.ID,
		&app.JobID,
		&app.StudentID,
		&app.CoverLetter,
		&app.Resume,
		&app.Status,
		&app.AppliedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Application{}, ErrNotFound
		}
		return types.Application{}, err
	}
	return app, nil
}

func (r *ApplicationRepository) GetByJobAndStudent(ctx context.Context, jobID, studentID int) (types.Application, error) {
	const query = `
		SELECT id, job_id, student_id, cover_letter, resume, status, applied_at, updated_at
		FROM applications
		WHERE job_id = $1 AND student_id = $2`
	var app types.Application
	err := r.db.QueryRowContext(ctx, query, jobID, studentID).Scan(
		&app.ID,
		&app.JobID,
		&app.StudentID,
		&app.CoverLetter,
		&app.Resume,
		&app.Status,
		&app.AppliedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Application{}, ErrNotFound
		}
		return types.Application{}, err
	}
	return app, nil
}

// ListByStudent returns the student's applications newest first, with
// the referenced job attached to each row.
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID int) ([]types.Application, error) {
	const query = `
		SELECT a.id, a.job_id, a.student_id, a.cover_letter, a.resume, a.status, a.applied_at, a.updated_at,
		       j.id, j.title, j.company, j.location, j.type, j.description, j.requirements, j.skills, j.salary,
		       j.recruiter_id, j.status, j.application_deadline, j.created_at, j.updated_at
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.student_id = $1
		ORDER BY a.applied_at DESC`
	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]types.Application, 0)
	for rows.Next() {
		var app types.Application
		job, err := scanJob(func(jobDest ...any) error {
			dest := []any{
				&app.ID,
				&app.JobID,
				&app.StudentID,
				&app.CoverLetter,
				&app.Resume,
				&app.Status,
				&app.AppliedAt,
				&app.UpdatedAt,
			}
			return rows.Scan(append(dest, jobDest...)...)
		})
		if err != nil {
			return nil, err
		}
		app.Job = &job
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return apps, nil
}

// ListByJob returns the job's applications newest first, with the
// applicant's name and email attached to each row.
func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID int) ([]types.Application, error) {
	const query = `
		SELECT a.id, a.job_id, a.student_id, a.cover_letter, a.resume, a.status, a.applied_at, a.updated_at,
		       u.id, u.full_name, u.email
		FROM applications a
		JOIN users u ON u.id = a.student_id
		WHERE a.job_id = $1
		ORDER BY a.applied_at DESC`
	rows, err := r.db.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]types.Application, 0)
	for rows.Next() {
		var app types.Application
		var applicant types.Applicant
		if err := rows.Scan(
			&app.ID,
			&app.JobID,
			&app.StudentID,
			&app.CoverLetter,
			&app.Resume,
			&app.Status,
			&app.AppliedAt,
			&app.UpdatedAt,
			&applicant.ID,
			&applicant.FullName,
			&applicant.Email,
		); err != nil {
			return nil, err
		}
		app.Student = &applicant
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return apps, nil
}

// Create inserts the application. The (job_id, student_id) unique
// constraint is the safeguard against concurrent duplicates; a losing
// writer gets ErrConflict.
func (r *ApplicationRepository) Create(ctx context.Context, app types.Application) (types.Application, error) {
	now := time.Now()
	app.AppliedAt = now
	app.UpdatedAt = now

	const query = `
		INSERT INTO applications (job_id, student_id, cover_letter, resume, status, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		app.JobID,
		app.StudentID,
		app.CoverLetter,
		app.Resume,
		app.Status,
		app.AppliedAt,
		app.UpdatedAt,
	).Scan(&app.ID); err != nil {
		return types.Application{}, translateError(err)
	}
	return app, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int, status string) (types.Application, error) {
	const query = `
		UPDATE applications
		SET status = $1, updated_at = $2
		WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return types.Application{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Application{}, err
	}
	if affected == 0 {
		return types.Application{}, ErrNotFound
	}
	return r.Get(ctx, id)
}
