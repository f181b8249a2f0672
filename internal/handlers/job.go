package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/campushire/apiserver/internal/services"
	"github.com/campushire/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// JobHandler provides HTTP handlers for job postings.
type JobHandler struct {
	jobService  *services.JobService
	userService *services.UserService
}

// NewJobHandler constructs a handler with the provided services.
func NewJobHandler(jobService *services.JobService, userService *services.UserService) *JobHandler {
	return &JobHandler{
		jobService:  jobService,
		userService: userService,
	}
}

// JobRouter registers job routes on the given router. Reads are public;
// mutations require a recruiter or admin.
func JobRouter(
	r chi.Router,
	jobService *services.JobService,
	userService *services.UserService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewJobHandler(jobService, userService)
	recruiterOnly := requireRole(userService, types.RoleRecruiter, types.RoleAdmin)

	r.Get("/", handler.ListJobs)
	r.With(authMiddleware, recruiterOnly).Post("/", handler.CreateJob)
	r.With(authMiddleware, recruiterOnly).Get("/recruiter/my-jobs", handler.MyJobs)
	r.Route("/{jobID}", func(r chi.Router) {
		r.Get("/", handler.GetJob)
		r.With(authMiddleware, recruiterOnly).Put("/", handler.UpdateJob)
		r.With(authMiddleware, recruiterOnly).Delete("/", handler.DeleteJob)
	})
}

func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := types.JobFilter{
		Search:   r.URL.Query().Get("search"),
		Type:     strings.TrimSpace(r.URL.Query().Get("type")),
		Location: r.URL.Query().Get("location"),
		Status:   strings.TrimSpace(r.URL.Query().Get("status")),
	}
	if filter.Type != "" && !types.ValidJobType(filter.Type) {
		writeError(w, http.StatusBadRequest, "invalid job type")
		return
	}
	if filter.Status != "" && !types.ValidJobStatus(filter.Status) {
		writeError(w, http.StatusBadRequest, "invalid job status")
		return
	}

	items, total, err := h.jobService.List(r.Context(), filter, offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}

	writeJSON(w, http.StatusOK, JobListResponse{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "jobID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	job, err := h.jobService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "job not found", "failed to fetch job")
		return
	}

	writeJSON(w, http.StatusOK, job)
}

func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.userService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	req, err := decodeJobRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.jobService.Create(r.Context(), caller, req.toJob())
	if err != nil {
		writeServiceError(w, err, "job not found", "failed to create job")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *JobHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "jobID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	caller, err := currentUser(r, h.userService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	update, err := decodeJobUpdate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.jobService.Update(r.Context(), caller, id, update)
	if err != nil {
		writeServiceError(w, err, "job not found", "failed to update job")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "jobID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	caller, err := currentUser(r, h.userService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.jobService.Delete(r.Context(), caller, id); err != nil {
		writeServiceError(w, err, "job not found", "failed to delete job")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MyJobs lists the caller's own postings, any status.
func (h *JobHandler) MyJobs(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.userService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	jobs, err := h.jobService.ListByRecruiter(r.Context(), caller.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}

	writeJSON(w, http.StatusOK, jobs)
}

// JobCreateRequest is the JSON payload for creating a job.
type JobCreateRequest struct {
	Title               string       `json:"title"`
	Company             string       `json:"company"`
	Location            string       `json:"location"`
	Type                string       `json:"type"`
	Description         string       `json:"description"`
	Requirements        []string     `json:"requirements"`
	Skills              []string     `json:"skills"`
	Salary              types.Salary `json:"salary"`
	Status              string       `json:"status"`
	ApplicationDeadline *time.Time   `json:"application_deadline"`
}

// JobListResponse is the paginated list response payload.
type JobListResponse struct {
	Items []types.Job `json:"items"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Total int         `json:"total"`
}

func decodeJobRequest(r *http.Request) (JobCreateRequest, error) {
	var req JobCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return JobCreateRequest{}, errors.New("invalid request")
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Company = strings.TrimSpace(req.Company)
	req.Location = strings.TrimSpace(req.Location)
	req.Description = strings.TrimSpace(req.Description)

	if req.Title == "" {
		return JobCreateRequest{}, errors.New("title is required")
	}
	if req.Company == "" {
		return JobCreateRequest{}, errors.New("company is required")
	}
	if req.Location == "" {
		return JobCreateRequest{}, errors.New("location is required")
	}
	if req.Description == "" {
		return JobCreateRequest{}, errors.New("description is required")
	}
	if req.Type != "" && !types.ValidJobType(req.Type) {
		return JobCreateRequest{}, errors.New("invalid job type")
	}
	if req.Status != "" && !types.ValidJobStatus(req.Status) {
		return JobCreateRequest{}, errors.New("invalid job status")
	}
	return req, nil
}

// decodeJobUpdate parses a partial update payload. Omitted fields stay
// nil; supplied fields must still pass the same validation as create.
func decodeJobUpdate(r *http.Request) (types.JobUpdate, error) {
	var update types.JobUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		return types.JobUpdate{}, errors.New("invalid request")
	}

	for _, field := range []struct {
		name  string
		value *string
	}{
		{"title", update.Title},
		{"company", update.Company},
		{"location", update.Location},
		{"description", update.Description},
	} {
		if field.value == nil {
			continue
		}
		*field.value = strings.TrimSpace(*field.value)
		if *field.value == "" {
			return types.JobUpdate{}, errors.New(field.name + " cannot be blank")
		}
	}
	if update.Type != nil && !types.ValidJobType(*update.Type) {
		return types.JobUpdate{}, errors.New("invalid job type")
	}
	if update.Status != nil && !types.ValidJobStatus(*update.Status) {
		return types.JobUpdate{}, errors.New("invalid job status")
	}
	return update, nil
}

func (req JobCreateRequest) toJob() types.Job {
	return types.Job{
		Title:               req.Title,
		Company:             req.Company,
		Location:            req.Location,
		Type:                req.Type,
		Description:         req.Description,
		Requirements:        req.Requirements,
		Skills:              req.Skills,
		Salary:              req.Salary,
		Status:              req.Status,
		ApplicationDeadline: req.ApplicationDeadline,
	}
}
