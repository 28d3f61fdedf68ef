package api

import (
	"encoding/json"
	"net/http"

	"talentmatch/internal/match"
	"talentmatch/internal/storage"
)

// CreateJobHandler stores a new posting for the calling recruiter
// @Summary Create job
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body object true "title and description"
// @Success 200 {object} storage.Job
// @Failure 403 {object} map[string]string
// @Router /jobs [post]
func (a *API) CreateJobHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respond(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	job, err := a.svc.CreateJob(r.Context(), identityKey(r), req.Title, req.Description)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.respond(w, http.StatusOK, job)
}

// ListJobsHandler lists the calling recruiter's postings, newest first
// @Summary List jobs
// @Tags jobs
// @Produce json
// @Success 200 {array} storage.Job
// @Router /jobs [get]
func (a *API) ListJobsHandler(w http.ResponseWriter, r *http.Request) {
	jobs, err := a.svc.ListJobsFor(r.Context(), identityKey(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if jobs == nil {
		jobs = []storage.Job{}
	}
	a.respond(w, http.StatusOK, jobs)
}

// MarkJobFilledHandler flips the filled flag on the caller's posting
// @Summary Mark job filled
// @Tags jobs
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string
// @Router /jobs/{id}/filled [post]
func (a *API) MarkJobFilledHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.svc.MarkJobFilled(r.Context(), identityKey(r), r.PathValue("id")); err != nil {
		a.writeError(w, r, err)
		return
	}
	a.respond(w, http.StatusOK, map[string]bool{"filled": true})
}

// JobMatchesHandler returns ranked candidate matches for a job
// @Summary Matches for a job
// @Description Candidates with latent score >= 60, annotated with embedding similarity, best first
// @Tags jobs
// @Produce json
// @Success 200 {array} match.Match
// @Failure 404 {object} map[string]string
// @Router /jobs/{id}/matches [get]
func (a *API) JobMatchesHandler(w http.ResponseWriter, r *http.Request) {
	matches, err := a.svc.GetMatches(r.Context(), r.PathValue("id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if matches == nil {
		matches = []match.Match{}
	}
	a.respond(w, http.StatusOK, matches)
}
