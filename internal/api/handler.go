package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"talentmatch/internal/talent"
)

// identityHeader carries the caller's external identity key. Identity is
// explicit per request; nothing is resolved from ambient state.
const identityHeader = "X-Identity-Key"

type API struct {
	svc *talent.Service
	log *zap.Logger
}

func NewAPI(svc *talent.Service, log *zap.Logger) *API {
	return &API{svc: svc, log: log}
}

func identityKey(r *http.Request) string {
	return r.Header.Get(identityHeader)
}

func (a *API) respond(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.log.Error("failed to encode response", zap.Error(err))
	}
}

// writeError maps the service error taxonomy onto HTTP statuses. The reason
// stays distinguishable so a caller can tell a bad file from a bad session.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, talent.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, talent.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, talent.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, talent.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, talent.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, talent.ErrExtractionFailed):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, talent.ErrUpstream):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		a.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		a.respond(w, status, map[string]string{"error": "internal error"})
		return
	}

	a.log.Debug("request rejected", zap.String("path", r.URL.Path), zap.Error(err))
	a.respond(w, status, map[string]string{"error": err.Error()})
}
