package handlers

import (
	"net/http"

	"github.com/campushire/apiserver/internal/services"
	"github.com/campushire/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// StatsHandler provides role-scoped dashboard aggregates.
type StatsHandler struct {
	statsService *services.StatsService
	userService  *services.UserService
}

// NewStatsHandler constructs a handler with the provided services.
func NewStatsHandler(statsService *services.StatsService, userService *services.UserService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		userService:  userService,
	}
}

// StatsRouter registers stats routes, each gated to its role.
func StatsRouter(
	r chi.Router,
	statsService *services.StatsService,
	userService *services.UserService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewStatsHandler(statsService, userService)

	r.Use(authMiddleware)
	r.With(requireRole(userService, types.RoleAdmin)).Get("/admin", handler.AdminStats)
	r.With(requireRole(userService, types.RoleRecruiter, types.RoleAdmin)).Get("/recruiter", handler.RecruiterStats)
	r.With(requireRole(userService, types.RoleStudent)).Get("/student", handler.StudentStats)
}

func (h *StatsHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Admin(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) RecruiterStats(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.userService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	stats, err := h.statsService.Recruiter(r.Context(), caller)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) StudentStats(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.userService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	stats, err := h.statsService.Student(r.Context(), caller)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
