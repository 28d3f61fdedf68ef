// Package scoring recomputes candidate latent scores in a periodic batch.
package scoring

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"talentmatch/internal/storage"
)

// Scorer rates a résumé. The reply is free text expected to contain a number;
// the refresher owns parsing and validation.
type Scorer interface {
	ScoreResume(ctx context.Context, resumeText string) (string, error)
}

// Store is the slice of the persistence layer the refresher needs.
type Store interface {
	AllCandidates(ctx context.Context) ([]storage.Candidate, error)
	UpdateLatentScore(ctx context.Context, candidateID string, score float64) error
}

type Refresher struct {
	store  Store
	scorer Scorer
	log    *zap.Logger
}

func NewRefresher(store Store, scorer Scorer, log *zap.Logger) *Refresher {
	return &Refresher{store: store, scorer: scorer, log: log}
}

// RefreshAll rescores every candidate sequentially. A failure on one
// candidate (provider error, unparseable or out-of-range reply) leaves that
// candidate's score untouched and never aborts the batch; only a failure to
// list candidates is returned.
func (r *Refresher) RefreshAll(ctx context.Context) error {
	candidates, err := r.store.AllCandidates(ctx)
	if err != nil {
		return fmt.Errorf("score refresh: list candidates: %w", err)
	}

	r.log.Info("score refresh started", zap.Int("candidates", len(candidates)))

	updated, failed := 0, 0
	for _, c := range candidates {
		if err := r.refreshOne(ctx, c); err != nil {
			r.log.Warn("candidate scoring skipped",
				zap.String("candidate_id", c.ID),
				zap.Error(err))
			failed++
			continue
		}
		updated++
	}

	r.log.Info("score refresh finished",
		zap.Int("updated", updated),
		zap.Int("failed", failed))
	return nil
}

func (r *Refresher) refreshOne(ctx context.Context, c storage.Candidate) error {
	reply, err := r.scorer.ScoreResume(ctx, c.ResumeText)
	if err != nil {
		return fmt.Errorf("score call: %w", err)
	}

	score, err := ParseScore(reply)
	if err != nil {
		return err
	}

	if err := r.store.UpdateLatentScore(ctx, c.ID, score); err != nil {
		return fmt.Errorf("persist score: %w", err)
	}

	r.log.Debug("candidate rescored",
		zap.String("candidate_id", c.ID),
		zap.Float64("score", score))
	return nil
}

// ParseScore validates a scorer reply. Only finite values within [0,100]
// are accepted; anything else keeps the previous score.
func ParseScore(reply string) (float64, error) {
	trimmed := strings.TrimSpace(reply)
	if trimmed == "" {
		return 0, fmt.Errorf("empty score reply")
	}

	score, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("score reply %q is not a number", trimmed)
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, fmt.Errorf("score reply %q is not finite", trimmed)
	}
	if score < 0 || score > 100 {
		return 0, fmt.Errorf("score %v out of range [0,100]", score)
	}
	return score, nil
}
