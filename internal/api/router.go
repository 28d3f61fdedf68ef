package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRouter(a *API, uploadsDir string) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// Health check (for Railway, k8s, etc.)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Stored résumé files
	mux.Handle("GET /files/", http.StripPrefix("/files/", http.FileServer(http.Dir(uploadsDir))))

	mux.HandleFunc("POST /api/users/role", a.SelectRoleHandler)

	mux.HandleFunc("POST /api/resumes/upload", a.ResumeUploadHandler)
	mux.HandleFunc("GET /api/candidates/me", a.CurrentCandidateHandler)
	mux.HandleFunc("GET /api/candidates/me/resume-url", a.ResumeURLHandler)
	mux.HandleFunc("GET /api/candidates/me/intros", a.CandidateIntrosHandler)

	mux.HandleFunc("POST /api/jobs", a.CreateJobHandler)
	mux.HandleFunc("GET /api/jobs", a.ListJobsHandler)
	mux.HandleFunc("POST /api/jobs/{id}/filled", a.MarkJobFilledHandler)
	mux.HandleFunc("GET /api/jobs/{id}/matches", a.JobMatchesHandler)

	mux.HandleFunc("POST /api/intros", a.RequestIntroHandler)
	mux.HandleFunc("GET /api/intros/thread", a.IntroThreadHandler)

	return mux
}
