package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campushire/apiserver/types"
)

// JobRepository handles persistence for job postings.
type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, title, company, location, type, description, requirements, skills, salary,
		       recruiter_id, status, application_deadline, created_at, updated_at`

// List returns jobs matching the filter plus the total match count,
// newest first.
func (r *JobRepository) List(ctx context.Context, filter types.JobFilter, offset, limit int) ([]types.Job, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}

	where, args := buildJobFilter(filter)

	countQuery := `SELECT COUNT(1) FROM jobs` + where
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM jobs%s
		ORDER BY created_at DESC
		OFFSET $%d LIMIT $%d`, jobColumns, where, len(args)+1, len(args)+2)
	args = append(args, offset, limit)

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs, err := scanJobs(rows, limit)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// ListByRecruiter returns every job owned by the recruiter, any status,
// newest first.
func (r *JobRepository) ListByRecruiter(ctx context.Context, recruiterID int) ([]types.Job, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM jobs
		WHERE recruiter_id = $1
		ORDER BY created_at DESC`, jobColumns)
	rows, err := r.db.QueryContext(ctx, query, recruiterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJobs(rows, 0)
}

func (r *JobRepository) Get(ctx context.Context, id int) (types.Job, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM jobs
		WHERE id = $1`, jobColumns)
	row := r.db.QueryRowContext(ctx, query, id)

	job, err := scanJob(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Job{}, ErrNotFound
		}
		return types.Job{}, err
	}
	return job, nil
}

func (r *JobRepository) Create(ctx context.Context, job types.Job) (types.Job, error) {
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	requirementsJSON, skillsJSON, salaryJSON, err := marshalJobFields(job)
	if err != nil {
		return types.Job{}, err
	}

	const query = `
		INSERT INTO jobs (title, company, location, type, description, requirements, skills, salary,
				  recruiter_id, status, application_deadline, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		job.Title,
		job.Company,
		job.Location,
		job.Type,
		job.Description,
		requirementsJSON,
		skillsJSON,
		salaryJSON,
		job.RecruiterID,
		job.Status,
		job.ApplicationDeadline,
		job.CreatedAt,
		job.UpdatedAt,
	).Scan(&job.ID); err != nil {
		return types.Job{}, translateError(err)
	}
	return job, nil
}

func (r *JobRepository) Update(ctx context.Context, job types.Job) (types.Job, error) {
	job.UpdatedAt = time.Now()

	requirementsJSON, skillsJSON, salaryJSON, err := marshalJobFields(job)
	if err != nil {
		return types.Job{}, err
	}

	const query = `
		UPDATE jobs
		SET title = $1,
			company = $2,
			location = $3,
			type = $4,
			description = $5,
			requirements = $6,
			skills = $7,
			salary = $8,
			status = $9,
			application_deadline = $10,
			updated_at = $11
		WHERE id = $12`
	result, err := r.db.ExecContext(
		ctx,
		query,
		job.Title,
		job.Company,
		job.Location,
		job.Type,
		job.Description,
		requirementsJSON,
		skillsJSON,
		salaryJSON,
		job.Status,
		job.ApplicationDeadline,
		job.UpdatedAt,
		job.ID,
	)
	if err != nil {
		return types.Job{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Job{}, err
	}
	if affected == 0 {
		return types.Job{}, ErrNotFound
	}
	return job, nil
}

func (r *JobRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM jobs WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// buildJobFilter renders the filter as a WHERE clause with positional
// args. Search and location match as case-insensitive substrings; type
// and status match exactly.
func buildJobFilter(filter types.JobFilter) (string, []any) {
	conditions := make([]string, 0, 4)
	args := make([]any, 0, 4)

	next := func() int { return len(args) + 1 }

	if search := strings.TrimSpace(filter.Search); search != "" {
		n := next()
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR company ILIKE $%d OR description ILIKE $%d)", n, n, n))
		args = append(args, "%"+search+"%")
	}
	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", next()))
		args = append(args, filter.Type)
	}
	if location := strings.TrimSpace(filter.Location); location != "" {
		conditions = append(conditions, fmt.Sprintf("location ILIKE $%d", next()))
		args = append(args, "%"+location+"%")
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", next()))
		args = append(args, filter.Status)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func marshalJobFields(job types.Job) (requirements, skills, salary []byte, err error) {
	if requirements, err = json.Marshal(job.Requirements); err != nil {
		return nil, nil, nil, err
	}
	if skills, err = json.Marshal(job.Skills); err != nil {
		return nil, nil, nil, err
	}
	if salary, err = json.Marshal(job.Salary); err != nil {
		return nil, nil, nil, err
	}
	return requirements, skills, salary, nil
}

func scanJob(scan func(...any) error) (types.Job, error) {
	var job types.Job
	var requirementsJSON, skillsJSON, salaryJSON []byte
	if err := scan(
		&job.ID,
		&job.Title,
		&job.Company,
		&job.Location,
		&job.Type,
		&job.Description,
		&requirementsJSON,
		&skillsJSON,
		&salaryJSON,
		&job.RecruiterID,
		&job.Status,
		&job.ApplicationDeadline,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return types.Job{}, err
	}

	_ = json.Unmarshal(requirementsJSON, &job.Requirements)
	_ = json.Unmarshal(skillsJSON, &job.Skills)
	_ = json.Unmarshal(salaryJSON, &job.Salary)
	return job, nil
}

func scanJobs(rows *sql.Rows, capacity int) ([]types.Job, error) {
	jobs := make([]types.Job, 0, capacity)
	for rows.Next() {
		job, err := scanJob(rows.Scan)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}
