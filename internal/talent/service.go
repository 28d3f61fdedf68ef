// Package talent implements the candidate/job matching core: résumé
// ingestion, job postings, match retrieval and intro requests. Every
// operation receives the caller's identity key explicitly; there is no
// ambient current user.
package talent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"talentmatch/internal/llm"
	"talentmatch/internal/match"
	"talentmatch/internal/resume"
	"talentmatch/internal/storage"
)

// Store is the persistence contract the service depends on. *storage.DB
// implements it; tests use an in-memory fake.
type Store interface {
	UpsertUser(ctx context.Context, identityKey string, role storage.Role) (storage.User, error)
	UserByIdentityKey(ctx context.Context, identityKey string) (storage.User, error)

	UpsertCandidate(ctx context.Context, c storage.Candidate) (storage.Candidate, error)
	CandidateByUserID(ctx context.Context, userID string) (storage.Candidate, error)
	CandidateByID(ctx context.Context, id string) (storage.Candidate, error)

	InsertJob(ctx context.Context, j storage.Job) (storage.Job, error)
	JobByID(ctx context.Context, id string) (storage.Job, error)
	JobsByUser(ctx context.Context, userID string) ([]storage.Job, error)
	MarkJobFilled(ctx context.Context, jobID string) error

	InsertMessage(ctx context.Context, m storage.Message) (storage.Message, error)
	ThreadMessages(ctx context.Context, jobID, candidateID string) ([]storage.Message, error)
	IntrosForCandidate(ctx context.Context, candidateID string) ([]storage.IntroRequest, error)
}

// The external AI calls are injected capabilities so the pipeline is
// testable with deterministic fakes.
type (
	ResumeParser interface {
		ExtractResume(ctx context.Context, resumeText string) (llm.ResumeExtraction, error)
	}
	Embedder interface {
		Embed(ctx context.Context, text string) ([]float32, error)
	}
)

type TextExtractor interface {
	ExtractText(path string) (string, error)
}

type BlobStore interface {
	Store(data []byte, originalName string) (string, error)
	Path(id string) (string, error)
	URL(id string) (string, error)
}

type FileFetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

type Matcher interface {
	MatchesForJob(ctx context.Context, jobID string) ([]match.Match, error)
}

// FileRef points at an uploaded résumé: either a URL to fetch or the raw
// bytes with their original filename.
type FileRef struct {
	URL      string
	Data     []byte
	Filename string
}

type Service struct {
	store     Store
	extractor TextExtractor
	parser    ResumeParser
	embedder  Embedder
	blobs     BlobStore
	fetcher   FileFetcher
	matcher   Matcher
	log       *zap.Logger
}

func NewService(store Store, extractor TextExtractor, parser ResumeParser, embedder Embedder,
	blobs BlobStore, fetcher FileFetcher, matcher Matcher, log *zap.Logger) *Service {
	return &Service{
		store:     store,
		extractor: extractor,
		parser:    parser,
		embedder:  embedder,
		blobs:     blobs,
		fetcher:   fetcher,
		matcher:   matcher,
		log:       log,
	}
}

// SelectRole creates the user for an identity key on first call and switches
// the role on later ones.
func (s *Service) SelectRole(ctx context.Context, identityKey string, role storage.Role) (storage.User, error) {
	if identityKey == "" {
		return storage.User{}, fmt.Errorf("%w: missing identity key", ErrUnauthenticated)
	}
	if role != storage.RoleCandidate && role != storage.RoleRecruiter {
		return storage.User{}, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	return s.store.UpsertUser(ctx, identityKey, role)
}

// IngestResume runs the upload pipeline: fetch, store the blob, extract
// text, structured extraction, embed, then upsert the candidate as the very
// last step so a failed ingestion leaves no partial record. Re-ingestion
// updates the same row and preserves the existing latent score.
func (s *Service) IngestResume(ctx context.Context, identityKey string, ref FileRef) (storage.Candidate, error) {
	user, err := s.requireRole(ctx, identityKey, storage.RoleCandidate)
	if err != nil {
		return storage.Candidate{}, err
	}

	data := ref.Data
	name := ref.Filename
	if ref.URL != "" {
		if data, err = s.fetcher.FetchBytes(ctx, ref.URL); err != nil {
			return storage.Candidate{}, fmt.Errorf("fetch resume file: %w: %w", ErrUpstream, err)
		}
		if name == "" {
			name = filepath.Base(ref.URL)
		}
	}
	if len(data) == 0 {
		return storage.Candidate{}, fmt.Errorf("%w: empty resume file", ErrValidation)
	}
	if !resume.SupportedExt(filepath.Ext(name)) {
		return storage.Candidate{}, fmt.Errorf("%w: unsupported file type %q", ErrValidation, filepath.Ext(name))
	}

	fileID, err := s.blobs.Store(data, name)
	if err != nil {
		return storage.Candidate{}, fmt.Errorf("store resume file: %w", err)
	}

	path, err := s.blobs.Path(fileID)
	if err != nil {
		return storage.Candidate{}, fmt.Errorf("resolve resume file: %w", err)
	}

	text, err := s.extractor.ExtractText(path)
	if err != nil {
		return storage.Candidate{}, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}
	if strings.TrimSpace(text) == "" {
		return storage.Candidate{}, fmt.Errorf("%w: document has no text", ErrExtractionFailed)
	}

	// Structured fields are best effort: a reply the parser cannot decode
	// comes back with empty fields and the raw output preserved, and must
	// not fail the ingestion. A transport failure does.
	extraction, err := s.parser.ExtractResume(ctx, text)
	if err != nil {
		return storage.Candidate{}, fmt.Errorf("parse resume: %w: %w", ErrUpstream, err)
	}

	embedding, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return storage.Candidate{}, fmt.Errorf("embed resume: %w: %w", ErrUpstream, err)
	}

	candidate, err := s.store.UpsertCandidate(ctx, storage.Candidate{
		UserID:       user.ID,
		ResumeText:   text,
		Embedding:    embedding,
		Skills:       extraction.Skills,
		Summary:      extraction.Summary,
		Experience:   encodeExperience(extraction),
		ResumeFileID: fileID,
	})
	if err != nil {
		return storage.Candidate{}, fmt.Errorf("save candidate: %w", err)
	}

	s.log.Info("resume ingested",
		zap.String("candidate_id", candidate.ID),
		zap.String("user_id", user.ID),
		zap.Int("skills", len(candidate.Skills)),
		zap.Int("text_len", len(text)))

	return candidate, nil
}

// GetCandidateFor returns the caller's candidate profile.
func (s *Service) GetCandidateFor(ctx context.Context, identityKey string) (storage.Candidate, error) {
	user, err := s.requireUser(ctx, identityKey)
	if err != nil {
		return storage.Candidate{}, err
	}

	c, err := s.store.CandidateByUserID(ctx, user.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return storage.Candidate{}, fmt.Errorf("candidate for user %s: %w", user.ID, ErrNotFound)
	}
	if err != nil {
		return storage.Candidate{}, err
	}
	return c, nil
}

// ResumeFileURL resolves a stored résumé file id to a servable URL.
func (s *Service) ResumeFileURL(ctx context.Context, fileID string) (string, error) {
	url, err := s.blobs.URL(fileID)
	if err != nil {
		return "", fmt.Errorf("resume file %s: %w", fileID, ErrNotFound)
	}
	return url, nil
}

// CreateJob embeds the description once and stores the posting.
func (s *Service) CreateJob(ctx context.Context, identityKey, title, description string) (storage.Job, error) {
	user, err := s.requireRole(ctx, identityKey, storage.RoleRecruiter)
	if err != nil {
		return storage.Job{}, err
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return storage.Job{}, fmt.Errorf("%w: title and description are required", ErrValidation)
	}

	embedding, err := s.embedder.Embed(ctx, description)
	if err != nil {
		return storage.Job{}, fmt.Errorf("embed job description: %w: %w", ErrUpstream, err)
	}

	job, err := s.store.InsertJob(ctx, storage.Job{
		UserID:      user.ID,
		Title:       title,
		Description: description,
		Embedding:   embedding,
	})
	if err != nil {
		return storage.Job{}, fmt.Errorf("save job: %w", err)
	}

	s.log.Info("job created", zap.String("job_id", job.ID), zap.String("title", title))
	return job, nil
}

// ListJobsFor returns the caller's postings, newest first.
func (s *Service) ListJobsFor(ctx context.Context, identityKey string) ([]storage.Job, error) {
	user, err := s.requireRole(ctx, identityKey, storage.RoleRecruiter)
	if err != nil {
		return nil, err
	}
	return s.store.JobsByUser(ctx, user.ID)
}

// MarkJobFilled flips the filled flag on the caller's own posting.
func (s *Service) MarkJobFilled(ctx context.Context, identityKey, jobID string) error {
	user, err := s.requireUser(ctx, identityKey)
	if err != nil {
		return err
	}

	job, err := s.store.JobByID(ctx, jobID)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("job %s: %w", jobID, ErrNotFound)
	}
	if err != nil {
		return err
	}
	if job.UserID != user.ID {
		return fmt.Errorf("job %s: %w", jobID, ErrUnauthorized)
	}

	return s.store.MarkJobFilled(ctx, jobID)
}

// GetMatches delegates to the match engine.
func (s *Service) GetMatches(ctx context.Context, jobID string) ([]match.Match, error) {
	matches, err := s.matcher.MatchesForJob(ctx, jobID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("job %s: %w", jobID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// RequestIntro records a one-time outreach from the job's recruiter to a
// candidate. A second request for the same (job, candidate) pair fails with
// ErrConflict and creates nothing.
func (s *Service) RequestIntro(ctx context.Context, identityKey, jobID, candidateID, body string) (string, error) {
	user, err := s.requireRole(ctx, identityKey, storage.RoleRecruiter)
	if err != nil {
		return "", err
	}

	job, err := s.store.JobByID(ctx, jobID)
	if errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("job %s: %w", jobID, ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	if job.UserID != user.ID {
		return "", fmt.Errorf("job %s: %w", jobID, ErrUnauthorized)
	}

	if _, err := s.store.CandidateByID(ctx, candidateID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("candidate %s: %w", candidateID, ErrNotFound)
		}
		return "", err
	}

	msg, err := s.store.InsertMessage(ctx, storage.Message{
		JobID:       jobID,
		CandidateID: candidateID,
		FromUserID:  user.ID,
		Body:        body,
	})
	if errors.Is(err, storage.ErrDuplicate) {
		return "", fmt.Errorf("intro for job %s and candidate %s: %w", jobID, candidateID, ErrConflict)
	}
	if err != nil {
		return "", err
	}

	s.log.Info("intro requested",
		zap.String("message_id", msg.ID),
		zap.String("job_id", jobID),
		zap.String("candidate_id", candidateID))

	return msg.ID, nil
}

// IntroThread returns the messages for a (job, candidate) pair, oldest first.
func (s *Service) IntroThread(ctx context.Context, jobID, candidateID string) ([]storage.Message, error) {
	return s.store.ThreadMessages(ctx, jobID, candidateID)
}

// IntrosForCandidate returns the intro requests sent to the caller's
// candidate profile, enriched with job and recruiter, newest first.
func (s *Service) IntrosForCandidate(ctx context.Context, identityKey string) ([]storage.IntroRequest, error) {
	user, err := s.requireRole(ctx, identityKey, storage.RoleCandidate)
	if err != nil {
		return nil, err
	}

	candidate, err := s.store.CandidateByUserID(ctx, user.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return s.store.IntrosForCandidate(ctx, candidate.ID)
}

func (s *Service) requireUser(ctx context.Context, identityKey string) (storage.User, error) {
	if identityKey == "" {
		return storage.User{}, fmt.Errorf("%w: missing identity key", ErrUnauthenticated)
	}
	user, err := s.store.UserByIdentityKey(ctx, identityKey)
	if errors.Is(err, storage.ErrNotFound) {
		return storage.User{}, fmt.Errorf("identity %s has no user: %w", identityKey, ErrUnauthenticated)
	}
	if err != nil {
		return storage.User{}, err
	}
	return user, nil
}

func (s *Service) requireRole(ctx context.Context, identityKey string, role storage.Role) (storage.User, error) {
	user, err := s.requireUser(ctx, identityKey)
	if err != nil {
		return storage.User{}, err
	}
	if user.Role != role {
		return storage.User{}, fmt.Errorf("role %s required: %w", role, ErrUnauthorized)
	}
	return user, nil
}

// encodeExperience keeps the typed entries when present and falls back to
// the raw model output otherwise, so nothing the provider said is lost.
func encodeExperience(e llm.ResumeExtraction) string {
	if len(e.Experience) == 0 {
		return e.Raw
	}
	buf, err := json.Marshal(e.Experience)
	if err != nil {
		return e.Raw
	}
	return string(buf)
}
