package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"portfolio.dev/internal/config"
	"portfolio.dev/internal/feed"
	"portfolio.dev/internal/services"
)

// ProjectHandler handles project-related endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
	location       *time.Location
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(ps *services.ProjectService, cfg *config.Config) *ProjectHandler {
	loc, err := cfg.Location()
	if err != nil {
		loc = time.Local
	}
	return &ProjectHandler{projectService: ps, location: loc}
}

// ListProjects handles GET /api/projects?page=N&mount=ID. Without a live
// mount id the feed is loaded and a new id is returned.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid page")
			return
		}
		page = n
	}

	resp, err := h.projectService.ListProjects(r.Context(), r.URL.Query().Get("mount"), page)
	switch {
	case errors.Is(err, feed.ErrPageOutOfRange):
		respondError(w, http.StatusBadRequest, "Page out of range")
		return
	case err != nil:
		respondError(w, http.StatusServiceUnavailable, "Request cancelled")
		return
	}

	if resp.Error != nil {
		writeFeedError(w, resp.Error.Kind, resp.Error.ResetAt)
		respondJSON(w, errorStatus(resp.Error.Kind), resp)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetProject handles GET /api/projects/{name}?tab=T&mount=ID
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	tab, err := feed.ParseTab(r.URL.Query().Get("tab"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Unknown tab")
		return
	}

	detail, err := h.projectService.GetProject(r.Context(), r.URL.Query().Get("mount"), name, tab)
	var fe *feed.Error
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, detail)
	case errors.As(err, &fe):
		payload := services.NewErrorPayload(fe, h.location)
		writeFeedError(w, payload.Kind, payload.ResetAt)
		respondJSON(w, errorStatus(fe.Kind), &services.ProjectsResponse{
			Mount:  detail.Mount,
			Status: feed.StatusError.String(),
			Error:  payload,
		})
	case errors.Is(err, services.ErrProjectNotFound):
		respondError(w, http.StatusNotFound, "Project not found")
	default:
		respondError(w, http.StatusServiceUnavailable, "Request cancelled")
	}
}

// errorStatus maps a failed load onto the response status
func errorStatus(kind feed.Kind) int {
	switch kind {
	case feed.KindRateLimited:
		return http.StatusServiceUnavailable
	case feed.KindNotFound, feed.KindEmpty:
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

// writeFeedError sets headers that accompany a failed load
func writeFeedError(w http.ResponseWriter, kind feed.Kind, resetAt *time.Time) {
	if kind != feed.KindRateLimited || resetAt == nil {
		return
	}
	secs := int(time.Until(*resetAt).Seconds())
	if secs < 0 {
		secs = 0
	}
	w.Header().Set("Retry-After", strconv.Itoa(secs))
}
