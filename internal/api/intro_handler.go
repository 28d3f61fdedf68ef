package api

import (
	"encoding/json"
	"net/http"

	"talentmatch/internal/storage"
)

// RequestIntroHandler records a one-time intro request
// @Summary Request intro
// @Description Send an intro request for a (job, candidate) pair; at most one per pair
// @Tags intros
// @Accept json
// @Produce json
// @Param request body object true "job_id, candidate_id, body"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /intros [post]
func (a *API) RequestIntroHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		JobID       string `json:"job_id"`
		CandidateID string `json:"candidate_id"`
		Body        string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respond(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	messageID, err := a.svc.RequestIntro(r.Context(), identityKey(r), req.JobID, req.CandidateID, req.Body)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.respond(w, http.StatusOK, map[string]string{"message_id": messageID})
}

// IntroThreadHandler returns the messages for a (job, candidate) pair
// @Summary Intro thread
// @Tags intros
// @Produce json
// @Param job_id query string true "job id"
// @Param candidate_id query string true "candidate id"
// @Success 200 {array} storage.Message
// @Router /intros/thread [get]
func (a *API) IntroThreadHandler(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("job_id")
	candidateID := r.URL.Query().Get("candidate_id")
	if jobID == "" || candidateID == "" {
		a.respond(w, http.StatusBadRequest, map[string]string{"error": "job_id and candidate_id are required"})
		return
	}

	messages, err := a.svc.IntroThread(r.Context(), jobID, candidateID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if messages == nil {
		messages = []storage.Message{}
	}
	a.respond(w, http.StatusOK, messages)
}
