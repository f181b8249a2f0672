package services

import (
	"context"
	"errors"
	"testing"

	"github.com/campushire/apiserver/internal/store"
	"github.com/campushire/apiserver/types"
)

func TestJobList_DefaultsToActive(t *testing.T) {
	repo := newFakeJobRepo(activeJob())
	svc := NewJobService(repo)

	if _, _, err := svc.List(context.Background(), types.JobFilter{}, 0, 20); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if repo.lastFilter.Status != types.JobStatusActive {
		t.Fatalf("expected default status filter %q, got %q", types.JobStatusActive, repo.lastFilter.Status)
	}

	// An explicit status must pass through untouched.
	if _, _, err := svc.List(context.Background(), types.JobFilter{Status: types.JobStatusClosed}, 0, 20); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if repo.lastFilter.Status != types.JobStatusClosed {
		t.Fatalf("expected status filter %q, got %q", types.JobStatusClosed, repo.lastFilter.Status)
	}
}

func TestJobCreate_PinsOwnerAndDefaults(t *testing.T) {
	svc := NewJobService(newFakeJobRepo())

	created, err := svc.Create(context.Background(), recruiter, types.Job{
		Title:       "Backend Intern",
		Company:     "Acme",
		Location:    "Remote",
		Description: "Build things",
		RecruiterID: 999, // must be ignored
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.RecruiterID != recruiter.ID {
		t.Fatalf("expected recruiter id %d, got %d", recruiter.ID, created.RecruiterID)
	}
	if created.Status != types.JobStatusActive {
		t.Fatalf("expected default status active, got %q", created.Status)
	}
	if created.Type != types.JobTypeFullTime {
		t.Fatalf("expected default type full-time, got %q", created.Type)
	}
	if created.Salary.Currency != "USD" {
		t.Fatalf("expected default currency USD, got %q", created.Salary.Currency)
	}
}

func TestJobUpdate_Ownership(t *testing.T) {
	repo := newFakeJobRepo(activeJob())
	svc := NewJobService(repo)

	update := types.JobUpdate{Title: strptr("Renamed")}

	if _, err := svc.Update(context.Background(), otherRecruiter, 1, update); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	updated, err := svc.Update(context.Background(), recruiter, 1, update)
	if err != nil {
		t.Fatalf("owner Update error: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}
	if updated.RecruiterID != recruiter.ID {
		t.Fatalf("expected ownership to stay with recruiter %d, got %d", recruiter.ID, updated.RecruiterID)
	}

	if _, err := svc.Update(context.Background(), admin, 1, update); err != nil {
		t.Fatalf("admin Update error: %v", err)
	}

	if _, err := svc.Update(context.Background(), recruiter, 99, update); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestJobUpdate_OmittedFieldsKeepCurrent(t *testing.T) {
	job := activeJob()
	job.Type = types.JobTypeFullTime
	job.Location = "Remote"
	repo := newFakeJobRepo(job)
	svc := NewJobService(repo)

	updated, err := svc.Update(context.Background(), recruiter, 1, types.JobUpdate{
		Title: strptr("Senior Backend Intern"),
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Title != "Senior Backend Intern" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}
	if updated.Type != types.JobTypeFullTime {
		t.Fatalf("expected type to survive a payload without it, got %q", updated.Type)
	}
	if updated.Status != types.JobStatusActive {
		t.Fatalf("expected status to survive a payload without it, got %q", updated.Status)
	}
	if updated.Location != "Remote" {
		t.Fatalf("expected location to survive a payload without it, got %q", updated.Location)
	}

	// Closing the posting must not disturb anything else either.
	closed := types.JobStatusClosed
	updated, err = svc.Update(context.Background(), recruiter, 1, types.JobUpdate{Status: &closed})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Status != types.JobStatusClosed {
		t.Fatalf("expected status closed, got %q", updated.Status)
	}
	if updated.Type != types.JobTypeFullTime {
		t.Fatalf("expected type to survive a status-only update, got %q", updated.Type)
	}
}

func TestJobDelete_Ownership(t *testing.T) {
	repo := newFakeJobRepo(activeJob())
	svc := NewJobService(repo)

	if err := svc.Delete(context.Background(), otherRecruiter, 1); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if err := svc.Delete(context.Background(), recruiter, 1); err != nil {
		t.Fatalf("owner Delete error: %v", err)
	}
	if err := svc.Delete(context.Background(), recruiter, 1); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
