package handlers

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/campushire/apiserver/types"
)

func validJobRequest() JobCreateRequest {
	return JobCreateRequest{
		Title:       "Backend Engineer",
		Company:     "Acme",
		Location:    "Remote",
		Type:        types.JobTypeFullTime,
		Description: "Build APIs",
	}
}

func (env *testEnv) seedJob(t *testing.T, recruiterID int, status string) types.Job {
	t.Helper()
	job, err := env.jobs.Create(context.Background(), types.Job{
		Title:       "Backend Engineer",
		Company:     "Acme",
		Location:    "Remote",
		Type:        types.JobTypeFullTime,
		Description: "Build APIs",
		RecruiterID: recruiterID,
		Status:      status,
	})
	if err != nil {
		t.Fatalf("seed job error: %v", err)
	}
	return job
}

func TestListJobs_PublicAndDefaultsToActive(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "r@example.com", types.RoleRecruiter)
	env.seedJob(t, 1, types.JobStatusActive)
	env.seedJob(t, 1, types.JobStatusClosed)

	rec := env.do(t, http.MethodGet, "/jobs", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	resp := decodeBody[JobListResponse](t, rec)
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 active job, got %d", len(resp.Items))
	}
	if env.jobs.lastFilter.Status != types.JobStatusActive {
		t.Fatalf("expected default status filter %q, got %q", types.JobStatusActive, env.jobs.lastFilter.Status)
	}
}

func TestListJobs_ExplicitStatusIsHonored(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "r@example.com", types.RoleRecruiter)
	env.seedJob(t, 1, types.JobStatusClosed)

	rec := env.do(t, http.MethodGet, "/jobs?status=closed", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	resp := decodeBody[JobListResponse](t, rec)
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 closed job, got %d", len(resp.Items))
	}
}

func TestListJobs_RejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/jobs?status=archived", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateJob_StudentForbidden(t *testing.T) {
	env := newTestEnv(t)
	_, studentToken := env.seedUser(t, "s@example.com", types.RoleStudent)

	rec := env.do(t, http.MethodPost, "/jobs", studentToken, validJobRequest())
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestCreateJob_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/jobs", "", validJobRequest())
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCreateJob_RecruiterOwnsPosting(t *testing.T) {
	env := newTestEnv(t)
	recruiter, token := env.seedUser(t, "r@example.com", types.RoleRecruiter)

	rec := env.do(t, http.MethodPost, "/jobs", token, validJobRequest())
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[types.Job](t, rec)
	if created.RecruiterID != recruiter.ID {
		t.Fatalf("expected recruiter %d as owner, got %d", recruiter.ID, created.RecruiterID)
	}
	if created.Status != types.JobStatusActive {
		t.Fatalf("expected default active status, got %q", created.Status)
	}
}

func TestCreateJob_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, "r@example.com", types.RoleRecruiter)

	req := validJobRequest()
	req.Title = "   "
	rec := env.do(t, http.MethodPost, "/jobs", token, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank title, got %d", rec.Code)
	}

	req = validJobRequest()
	req.Type = "gig"
	rec = env.do(t, http.MethodPost, "/jobs", token, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown type, got %d", rec.Code)
	}
}

func TestUpdateJob_NonOwnerForbidden(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.seedUser(t, "owner@example.com", types.RoleRecruiter)
	_, otherToken := env.seedUser(t, "other@example.com", types.RoleRecruiter)
	job := env.seedJob(t, owner.ID, types.JobStatusActive)

	rec := env.do(t, http.MethodPut, "/jobs/"+strconv.Itoa(job.ID), otherToken, validJobRequest())
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestUpdateJob_PartialPayload(t *testing.T) {
	env := newTestEnv(t)
	owner, ownerToken := env.seedUser(t, "owner@example.com", types.RoleRecruiter)
	job := env.seedJob(t, owner.ID, types.JobStatusActive)

	rec := env.do(t, http.MethodPut, "/jobs/"+strconv.Itoa(job.ID), ownerToken, map[string]string{
		"status": types.JobStatusClosed,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	updated := decodeBody[types.Job](t, rec)
	if updated.Status != types.JobStatusClosed {
		t.Fatalf("expected status closed, got %q", updated.Status)
	}
	if updated.Type != types.JobTypeFullTime {
		t.Fatalf("expected type to survive a status-only payload, got %q", updated.Type)
	}
	if updated.Title != job.Title {
		t.Fatalf("expected title to survive a status-only payload, got %q", updated.Title)
	}

	// A supplied field still has to pass validation.
	rec = env.do(t, http.MethodPut, "/jobs/"+strconv.Itoa(job.ID), ownerToken, map[string]string{
		"type": "gig",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown type, got %d", rec.Code)
	}
}

func TestDeleteJob_OwnerAndAdmin(t *testing.T) {
	env := newTestEnv(t)
	owner, ownerToken := env.seedUser(t, "owner@example.com", types.RoleRecruiter)
	_, adminToken := env.seedUser(t, "admin@example.com", types.RoleAdmin)
	_, otherToken := env.seedUser(t, "other@example.com", types.RoleRecruiter)

	first := env.seedJob(t, owner.ID, types.JobStatusActive)
	second := env.seedJob(t, owner.ID, types.JobStatusActive)

	rec := env.do(t, http.MethodDelete, "/jobs/"+strconv.Itoa(first.ID), otherToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/jobs/"+strconv.Itoa(first.ID), ownerToken, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for owner, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/jobs/"+strconv.Itoa(second.ID), adminToken, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for admin, got %d", rec.Code)
	}
}

func TestGetJob_UnknownIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/jobs/999", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/jobs/abc", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", rec.Code)
	}
}

func TestMyJobs_ListsOnlyCallersPostings(t *testing.T) {
	env := newTestEnv(t)
	owner, ownerToken := env.seedUser(t, "owner@example.com", types.RoleRecruiter)
	other, _ := env.seedUser(t, "other@example.com", types.RoleRecruiter)
	env.seedJob(t, owner.ID, types.JobStatusActive)
	env.seedJob(t, owner.ID, types.JobStatusDraft)
	env.seedJob(t, other.ID, types.JobStatusActive)

	rec := env.do(t, http.MethodGet, "/jobs/recruiter/my-jobs", ownerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("my-jobs status = %d", rec.Code)
	}
	jobs := decodeBody[[]types.Job](t, rec)
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	for _, job := range jobs {
		if job.RecruiterID != owner.ID {
			t.Fatalf("my-jobs leaked job owned by %d", job.RecruiterID)
		}
	}
}
