package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"talentmatch/internal/storage"
	"talentmatch/internal/talent"
)

// SelectRoleHandler sets the caller's role, creating the user on first call
// @Summary Select role
// @Description Create or update the user for the identity key with the given role
// @Tags users
// @Accept json
// @Produce json
// @Param request body object true "role: candidate or recruiter"
// @Success 200 {object} storage.User
// @Router /users/role [post]
func (a *API) SelectRoleHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respond(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	user, err := a.svc.SelectRole(r.Context(), identityKey(r), storage.Role(req.Role))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.respond(w, http.StatusOK, user)
}

// ResumeUploadHandler ingests a résumé from a multipart file or a file URL
// @Summary Upload résumé
// @Description Parse, embed and store the caller's résumé. Accepts multipart "file" or JSON {"file_url"}
// @Tags candidates
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} storage.Candidate
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /resumes/upload [post]
func (a *API) ResumeUploadHandler(w http.ResponseWriter, r *http.Request) {
	ref, err := fileRefFromRequest(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	candidate, err := a.svc.IngestResume(r.Context(), identityKey(r), ref)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.respond(w, http.StatusOK, candidate)
}

func fileRefFromRequest(r *http.Request) (talent.FileRef, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		var req struct {
			FileURL string `json:"file_url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FileURL == "" {
			return talent.FileRef{}, talent.ErrValidation
		}
		return talent.FileRef{URL: req.FileURL}, nil
	}

	// multipart upload, max 10MB
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return talent.FileRef{}, talent.ErrValidation
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return talent.FileRef{}, talent.ErrValidation
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return talent.FileRef{}, err
	}
	return talent.FileRef{Data: data, Filename: header.Filename}, nil
}

// CurrentCandidateHandler returns the caller's candidate profile
// @Summary Current candidate
// @Tags candidates
// @Produce json
// @Success 200 {object} storage.Candidate
// @Failure 404 {object} map[string]string
// @Router /candidates/me [get]
func (a *API) CurrentCandidateHandler(w http.ResponseWriter, r *http.Request) {
	candidate, err := a.svc.GetCandidateFor(r.Context(), identityKey(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.respond(w, http.StatusOK, candidate)
}

// ResumeURLHandler resolves the caller's stored résumé file to a URL
// @Summary Résumé file URL
// @Tags candidates
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /candidates/me/resume-url [get]
func (a *API) ResumeURLHandler(w http.ResponseWriter, r *http.Request) {
	candidate, err := a.svc.GetCandidateFor(r.Context(), identityKey(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	url, err := a.svc.ResumeFileURL(r.Context(), candidate.ResumeFileID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.respond(w, http.StatusOK, map[string]string{"url": url})
}

// CandidateIntrosHandler lists intro requests sent to the caller
// @Summary Intro requests for the current candidate
// @Tags candidates
// @Produce json
// @Success 200 {array} storage.IntroRequest
// @Router /candidates/me/intros [get]
func (a *API) CandidateIntrosHandler(w http.ResponseWriter, r *http.Request) {
	intros, err := a.svc.IntrosForCandidate(r.Context(), identityKey(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if intros == nil {
		intros = []storage.IntroRequest{}
	}
	a.respond(w, http.StatusOK, intros)
}
