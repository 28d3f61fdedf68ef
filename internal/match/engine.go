// Package match ranks candidates against a job posting.
package match

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"talentmatch/internal/storage"
)

// ScoreThreshold is the minimum latent score a candidate needs to appear in
// any match list.
const ScoreThreshold = 60

// Store is the slice of the persistence layer the engine reads from.
type Store interface {
	JobByID(ctx context.Context, id string) (storage.Job, error)
	CandidatesScoringAtLeast(ctx context.Context, min float64) ([]storage.Candidate, error)
}

// Match is a candidate annotated with its similarity to the job description.
type Match struct {
	Candidate  storage.Candidate `json:"candidate"`
	Similarity float64           `json:"similarity"`
}

// Engine produces ranked matches with a full scan over eligible candidates.
// There is no result cache and no incremental index; every call recomputes
// from the store.
type Engine struct {
	store Store
	log   *zap.Logger
}

func NewEngine(store Store, log *zap.Logger) *Engine {
	return &Engine{store: store, log: log}
}

// MatchesForJob returns every candidate at or above ScoreThreshold, each with
// the cosine similarity between the job and candidate embeddings. Ordering is
// latent score descending, then similarity descending, then id, so repeated
// calls on unchanged data return the same list.
func (e *Engine) MatchesForJob(ctx context.Context, jobID string) ([]Match, error) {
	job, err := e.store.JobByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("match job %s: %w", jobID, err)
	}

	candidates, err := e.store.CandidatesScoringAtLeast(ctx, ScoreThreshold)
	if err != nil {
		return nil, fmt.Errorf("match job %s: list candidates: %w", jobID, err)
	}

	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		matches = append(matches, Match{
			Candidate:  c,
			Similarity: CosineSimilarity(job.Embedding, c.Embedding),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Candidate.LatentScore != b.Candidate.LatentScore {
			return a.Candidate.LatentScore > b.Candidate.LatentScore
		}
		if a.Similarity != b.Similarity {
			return a.Similarity > b.Similarity
		}
		return a.Candidate.ID < b.Candidate.ID
	})

	e.log.Debug("matched candidates for job",
		zap.String("job_id", jobID),
		zap.Int("matches", len(matches)))

	return matches, nil
}
