package scoring

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"talentmatch/internal/storage"
)

func TestParseScore(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"0", 0, false},
		{"100", 100, false},
		{"75", 75, false},
		{" 42.5 \n", 42.5, false},
		{"-1", 0, true},
		{"101", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"   ", 0, true},
		{"NaN", 0, true},
		{"+Inf", 0, true},
		{"85 out of 100", 0, true},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%q", tc.in), func(t *testing.T) {
			got, err := ParseScore(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

type refreshStore struct {
	candidates []storage.Candidate
	scores     map[string]float64
	updateErr  map[string]error
}

func (s *refreshStore) AllCandidates(_ context.Context) ([]storage.Candidate, error) {
	return s.candidates, nil
}

func (s *refreshStore) UpdateLatentScore(_ context.Context, id string, score float64) error {
	if err := s.updateErr[id]; err != nil {
		return err
	}
	s.scores[id] = score
	return nil
}

type stubScorer struct {
	replies map[string]string
	errs    map[string]error
}

func (s *stubScorer) ScoreResume(_ context.Context, resumeText string) (string, error) {
	if err := s.errs[resumeText]; err != nil {
		return "", err
	}
	return s.replies[resumeText], nil
}

func TestRefreshAllIsolatesFailures(t *testing.T) {
	const n = 7
	store := &refreshStore{scores: map[string]float64{}}
	scorer := &stubScorer{replies: map[string]string{}, errs: map[string]error{}}

	for i := 0; i < n; i++ {
		id := fmt.Sprintf("cand-%d", i)
		text := fmt.Sprintf("resume-%d", i)
		store.candidates = append(store.candidates, storage.Candidate{
			ID:          id,
			ResumeText:  text,
			LatentScore: 50,
		})
		scorer.replies[text] = fmt.Sprintf("%d", 60+i)
	}
	// provider errors for candidates 2 and 5
	scorer.errs["resume-2"] = errors.New("rate limited")
	scorer.errs["resume-5"] = errors.New("connection reset")

	r := NewRefresher(store, scorer, zap.NewNop())
	if err := r.RefreshAll(context.Background()); err != nil {
		t.Fatalf("refresh should complete despite per-candidate failures: %v", err)
	}

	for i := 0; i < n; i++ {
		id := fmt.Sprintf("cand-%d", i)
		score, updated := store.scores[id]
		if i == 2 || i == 5 {
			if updated {
				t.Fatalf("candidate %d should have kept its prior score, got update to %v", i, score)
			}
			continue
		}
		if !updated {
			t.Fatalf("candidate %d was not rescored", i)
		}
		if want := float64(60 + i); score != want {
			t.Fatalf("candidate %d score = %v, want %v", i, score, want)
		}
	}
}

func TestRefreshAllRejectsBadReplies(t *testing.T) {
	store := &refreshStore{
		candidates: []storage.Candidate{
			{ID: "a", ResumeText: "ra", LatentScore: 70},
			{ID: "b", ResumeText: "rb", LatentScore: 70},
			{ID: "c", ResumeText: "rc", LatentScore: 70},
		},
		scores: map[string]float64{},
	}
	scorer := &stubScorer{replies: map[string]string{
		"ra": "101",
		"rb": "abc",
		"rc": "88",
	}}

	r := NewRefresher(store, scorer, zap.NewNop())
	if err := r.RefreshAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := store.scores["a"]; ok {
		t.Fatalf("out-of-range reply must not update the score")
	}
	if _, ok := store.scores["b"]; ok {
		t.Fatalf("non-numeric reply must not update the score")
	}
	if store.scores["c"] != 88 {
		t.Fatalf("valid reply should update, got %v", store.scores["c"])
	}
}

func TestRefreshAllContinuesPastPersistFailure(t *testing.T) {
	store := &refreshStore{
		candidates: []storage.Candidate{
			{ID: "a", ResumeText: "ra"},
			{ID: "b", ResumeText: "rb"},
		},
		scores:    map[string]float64{},
		updateErr: map[string]error{"a": errors.New("row gone")},
	}
	scorer := &stubScorer{replies: map[string]string{"ra": "50", "rb": "60"}}

	r := NewRefresher(store, scorer, zap.NewNop())
	if err := r.RefreshAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.scores["b"] != 60 {
		t.Fatalf("second candidate should still be rescored")
	}
}
