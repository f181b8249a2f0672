package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/campushire/apiserver/internal/services"
	"github.com/campushire/apiserver/internal/storage"
	"github.com/campushire/apiserver/types"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	maxResumeMemory = 8 << 20
	maxResumeBytes  = 16 << 20
	formFieldResume = "resume"
)

// ProfileHandler provides HTTP handlers for profiles.
type ProfileHandler struct {
	profileService *services.ProfileService
	userService    *services.UserService
	storage        *storage.Storage
}

// NewProfileHandler constructs a handler with the provided dependencies.
// storage may be nil, in which case resume upload is unavailable.
func NewProfileHandler(profileService *services.ProfileService, userService *services.UserService, store *storage.Storage) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		userService:    userService,
		storage:        store,
	}
}

// ProfileRouter registers profile routes. All require authentication;
// profile reads by user id are open to any authenticated caller.
func ProfileRouter(
	r chi.Router,
	profileService *services.ProfileService,
	userService *services.UserService,
	store *storage.Storage,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewProfileHandler(profileService, userService, store)

	r.Use(authMiddleware)
	r.Get("/me", handler.MyProfile)
	r.Put("/me", handler.UpdateMyProfile)
	r.Post("/me/resume", handler.UploadResume)
	r.Get("/{userID}", handler.GetProfile)
}

// MyProfile returns the caller's profile, creating an empty one if the
// registration-time profile is somehow missing.
func (h *ProfileHandler) MyProfile(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.userService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	profile, err := h.profileService.GetMine(r.Context(), caller.ID)
	if err != nil {
		writeServiceError(w, err, "profile not found", "failed to fetch profile")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// UpdateMyProfile merges the supplied fields into the caller's profile.
func (h *ProfileHandler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r, h.userService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var update types.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	profile, err := h.profileService.UpdateMine(r.Context(), caller.ID, update)
	if err != nil {
		writeServiceError(w, err, "profile not found", "failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// GetProfile returns another user's profile.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	profile, err := h.profileService.GetByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "profile not found", "failed to fetch profile")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// UploadResume stores the uploaded file in the blob store and records
// its public URL on the caller's profile.
func (h *ProfileHandler) UploadResume(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "file storage is not configured")
		return
	}

	caller, err := currentUser(r, h.userService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filename, data, contentType, err := parseResumeFile(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := fmt.Sprintf("resumes/%d/%s%s", caller.ID, uuid.NewString(), filepath.Ext(filename))
	if err := h.storage.Put(r.Context(), key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store resume")
		return
	}

	profile, err := h.profileService.SetResume(r.Context(), caller.ID, h.storage.PublicURL(key))
	if err != nil {
		writeServiceError(w, err, "profile not found", "failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func parseResumeFile(r *http.Request) (filename string, data []byte, contentType string, err error) {
	if err := r.ParseMultipartForm(maxResumeMemory); err != nil {
		return "", nil, "", errors.New("invalid multipart form")
	}
	if r.MultipartForm == nil {
		return "", nil, "", errors.New("missing form data")
	}

	files := r.MultipartForm.File[formFieldResume]
	if len(files) == 0 {
		return "", nil, "", errors.New("resume file is required")
	}
	if len(files) > 1 {
		return "", nil, "", errors.New("only one resume file is allowed")
	}

	fileHeader := files[0]
	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, "", errors.New("failed to read resume file")
	}

	data, err = readFileLimited(file, maxResumeBytes)
	_ = file.Close()
	if err != nil {
		return "", nil, "", err
	}

	contentType = fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return fileHeader.Filename, data, contentType, nil
}

func readFileLimited(reader io.Reader, limit int64) ([]byte, error) {
	limited := io.LimitReader(reader, limit+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.New("failed to read upload")
	}
	if int64(len(data)) > limit {
		return nil, errors.New("uploaded file too large")
	}
	return data, nil
}
