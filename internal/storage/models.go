package storage

import (
	"errors"
	"time"
)

// Sentinel errors returned by the store. The service layer translates these
// into its own taxonomy before they reach a caller.
var (
	ErrNotFound  = errors.New("storage: record not found")
	ErrDuplicate = errors.New("storage: unique constraint violated")
)

type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

// User links an external identity key to a role. One row per identity key;
// the role is mutable by re-upsert.
type User struct {
	ID          string    `json:"id"`
	IdentityKey string    `json:"identity_key"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// Candidate holds one résumé profile per user.
type Candidate struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ResumeText   string    `json:"-"`
	Embedding    []float32 `json:"-"`
	Skills       []string  `json:"skills"`
	Summary      string    `json:"summary"`
	Experience   string    `json:"experience,omitempty"` // raw JSON from extraction, may be empty
	LatentScore  float64   `json:"latent_score"`
	ResumeFileID string    `json:"resume_file_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Job is a recruiter posting. The description is embedded once at creation
// and never re-embedded.
type Job struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Embedding   []float32 `json:"-"`
	Filled      bool      `json:"filled"`
	CreatedAt   time.Time `json:"created_at"`
}

// Message is an immutable intro request from a recruiter to a candidate.
// At most one exists per (job, candidate) pair.
type Message struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	CandidateID string    `json:"candidate_id"`
	FromUserID  string    `json:"from_user_id"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}

// IntroRequest is a message enriched with the job and recruiter it came from,
// as shown to the receiving candidate.
type IntroRequest struct {
	Message
	Job       Job  `json:"job"`
	Recruiter User `json:"recruiter"`
}
