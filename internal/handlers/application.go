package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/campushire/apiserver/internal/services"
	"github.com/campushire/apiserver/internal/store"
	"github.com/campushire/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// ApplicationHandler provides HTTP handlers for applications.
type ApplicationHandler struct {
	applicationService *services.ApplicationService
	userService        *services.UserService
}

// NewApplicationHandler constructs a handler with the provided services.
func NewApplicationHandler(applicationService *services.ApplicationService, userService *services.UserService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
		userService:        userService,
	}
}

// ApplicationRouter registers application routes. Everything here
// requires authentication; role gates differ per route.
func ApplicationRouter(
	r chi.Router,
	applicationService *services.ApplicationService,
	userService *services.UserService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewApplicationHandler(applicationService, userService)
	studentOnly := requireRole(userService, types.RoleStudent)
	recruiterOnly := requireRole(userService, types.RoleRecruiter, types.RoleAdmin)

	r.Use(authMiddleware)
	r.With(studentOnly).Post("/", handler.Apply)
	r.With(studentOnly).Get("/my-applications", handler.MyApplications)
	r.With(recruiterOnly).Get("/job/{jobID}", handler.ListForJob)
	r.With(recruiterOnly).Put("/{applicationID}/status", handler.UpdateStatus)
	r.Get("/{applicationID}", handler.GetApplication)
}

// Apply submits the caller's application to a job.
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.userService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.JobID < 1 {
		writeError(w, http.StatusBadRequest, "job_id is required")
		return
	}

	created, err := h.applicationService.Apply(r.Context(), caller, types.Application{
		JobID:       req.JobID,
		CoverLetter: req.CoverLetter,
		Resume:      req.Resume,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusConflict, "already applied to this job")
			return
		}
		writeServiceError(w, err, "job not found", "failed to create application")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// MyApplications lists the caller's own applications, jobs attached.
func (h *ApplicationHandler) MyApplications(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.userService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	apps, err := h.applicationService.ListMine(r.Context(), caller)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list applications")
		return
	}

	writeJSON(w, http.StatusOK, apps)
}

// ListForJob lists a job's applications for its owning recruiter.
func (h *ApplicationHandler) ListForJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := parseIDParam(chi.URLParam(r, "jobID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	caller, err := currentUser(r, h.userService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	apps, err := h.applicationService.ListForJob(r.Context(), caller, jobID)
	if err != nil {
		writeServiceError(w, err, "job not found", "failed to list applications")
		return
	}

	writeJSON(w, http.StatusOK, apps)
}

// UpdateStatus sets an application's status.
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "applicationID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid application id")
		return
	}

	caller, err := currentUser(r, h.userService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	req.Status = strings.TrimSpace(req.Status)
	if !types.ValidApplicationStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "invalid application status")
		return
	}

	updated, err := h.applicationService.UpdateStatus(r.Context(), caller, id, req.Status)
	if err != nil {
		writeServiceError(w, err, "application not found", "failed to update application")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// GetApplication returns one application to its applicant, the job's
// recruiter, or an admin.
func (h *ApplicationHandler) GetApplication(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "applicationID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid application id")
		return
	}

	caller, err := currentUser(r, h.userService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	app, err := h.applicationService.Get(r.Context(), caller, id)
	if err != nil {
		writeServiceError(w, err, "application not found", "failed to fetch application")
		return
	}

	writeJSON(w, http.StatusOK, app)
}

type ApplyRequest struct {
	JobID       int    `json:"job_id"`
	CoverLetter string `json:"cover_letter"`
	Resume      string `json:"resume"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}
