package types

// AdminStats is the platform-wide dashboard aggregate.
type AdminStats struct {
	TotalStudents     int `json:"total_students"`
	TotalRecruiters   int `json:"total_recruiters"`
	TotalJobs         int `json:"total_jobs"`
	ActiveJobs        int `json:"active_jobs"`
	TotalApplications int `json:"total_applications"`

	// PendingRecruiters counts recruiter accounts with no postings yet.
	PendingRecruiters int `json:"pending_recruiters"`
}

// RecruiterStats aggregates over a single recruiter's postings.
type RecruiterStats struct {
	TotalJobs         int `json:"total_jobs"`
	ActiveJobs        int `json:"active_jobs"`
	TotalApplications int `json:"total_applications"`
}

// StudentStats aggregates over a single student's applications.
type StudentStats struct {
	TotalApplications    int `json:"total_applications"`
	PendingApplications  int `json:"pending_applications"`
	AcceptedApplications int `json:"accepted_applications"`
	RejectedApplications int `json:"rejected_applications"`
}
