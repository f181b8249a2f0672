package types

import "time"

// Application statuses.
const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusReviewing   = "reviewing"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusAccepted    = "accepted"
)

// Application represents a student's submission against a job. At most
// one application exists per (job, student) pair.
type Application struct {
	ID          int       `json:"id" db:"id"`
	JobID       int       `json:"job_id" db:"job_id"`
	StudentID   int       `json:"student_id" db:"student_id"`
	CoverLetter string    `json:"cover_letter" db:"cover_letter"`
	Resume      string    `json:"resume" db:"resume"`
	Status      string    `json:"status" db:"status"`
	AppliedAt   time.Time `json:"applied_at" db:"applied_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Job is attached on reads where the caller needs posting details
	// alongside the application (e.g. a student's own list).
	Job *Job `json:"job,omitempty" db:"-"`

	// Student is attached on reads scoped to a recruiter reviewing
	// applicants for a job.
	Student *Applicant `json:"student,omitempty" db:"-"`
}

// Applicant is the subset of a user exposed to the reviewing recruiter.
type Applicant struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// ValidApplicationStatus reports whether status is a known application status.
func ValidApplicationStatus(status string) bool {
	switch status {
	case ApplicationStatusPending, ApplicationStatusReviewing,
		ApplicationStatusShortlisted, ApplicationStatusRejected,
		ApplicationStatusAccepted:
		return true
	}
	return false
}
