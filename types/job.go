package types

import "time"

// Job statuses.
const (
	JobStatusActive = "active"
	JobStatusClosed = "closed"
	JobStatusDraft  = "draft"
)

// Employment types.
const (
	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeInternship = "internship"
	JobTypeContract   = "contract"
)

// Salary is the advertised compensation range for a job.
type Salary struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// Job represents a posting created by a recruiter.
type Job struct {
	ID           int      `json:"id" db:"id"`
	Title        string   `json:"title" db:"title"`
	Company      string   `json:"company" db:"company"`
	Location     string   `json:"location" db:"location"`
	Type         string   `json:"type" db:"type"`
	Description  string   `json:"description" db:"description"`
	Requirements []string `json:"requirements" db:"requirements"`
	Skills       []string `json:"skills" db:"skills"`
	Salary       Salary   `json:"salary" db:"salary"`

	// RecruiterID references the user who owns this posting. Only the
	// owner or an admin may mutate the job.
	RecruiterID int `json:"recruiter_id" db:"recruiter_id"`

	// Status is "active", "closed", or "draft". Students may only
	// apply while the job is active.
	Status string `json:"status" db:"status"`

	ApplicationDeadline *time.Time `json:"application_deadline,omitempty" db:"application_deadline"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

// JobUpdate carries the fields of a job update request. Nil fields are
// left untouched; non-nil fields replace the stored value.
type JobUpdate struct {
	Title               *string    `json:"title"`
	Company             *string    `json:"company"`
	Location            *string    `json:"location"`
	Type                *string    `json:"type"`
	Description         *string    `json:"description"`
	Requirements        *[]string  `json:"requirements"`
	Skills              *[]string  `json:"skills"`
	Salary              *Salary    `json:"salary"`
	Status              *string    `json:"status"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
}

// JobFilter narrows a job listing. Zero values mean "no constraint";
// Status is applied verbatim, so callers wanting the default active-only
// view must set it explicitly.
type JobFilter struct {
	// Search matches title, company, or description, case-insensitively.
	Search string

	Type     string
	Location string
	Status   string
}

// ValidJobStatus reports whether status is a known job status.
func ValidJobStatus(status string) bool {
	switch status {
	case JobStatusActive, JobStatusClosed, JobStatusDraft:
		return true
	}
	return false
}

// ValidJobType reports whether t is a known employment type.
func ValidJobType(t string) bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeInternship, JobTypeContract:
		return true
	}
	return false
}
