package match

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"talentmatch/internal/storage"
)

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"empty", nil, nil, 0},
		{"dimension mismatch", []float32{1, 2}, []float32{1, 2, 3}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CosineSimilarity(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

type engineStore struct {
	jobs       map[string]storage.Job
	candidates []storage.Candidate
}

func (s *engineStore) JobByID(_ context.Context, id string) (storage.Job, error) {
	j, ok := s.jobs[id]
	if !ok {
		return storage.Job{}, storage.ErrNotFound
	}
	return j, nil
}

func (s *engineStore) CandidatesScoringAtLeast(_ context.Context, min float64) ([]storage.Candidate, error) {
	var out []storage.Candidate
	for _, c := range s.candidates {
		if c.LatentScore >= min {
			out = append(out, c)
		}
	}
	return out, nil
}

func TestMatchesForJobThresholdAndOrder(t *testing.T) {
	jobVec := []float32{1, 0, 0}
	store := &engineStore{
		jobs: map[string]storage.Job{
			"job-1": {ID: "job-1", Embedding: jobVec},
		},
		candidates: []storage.Candidate{
			{ID: "low", LatentScore: 59.9, Embedding: jobVec},
			{ID: "mid", LatentScore: 75, Embedding: []float32{1, 1, 0}},
			{ID: "top", LatentScore: 90, Embedding: []float32{0, 1, 0}},
			{ID: "edge", LatentScore: 60, Embedding: jobVec},
		},
	}

	e := NewEngine(store, zap.NewNop())
	matches, err := e.MatchesForJob(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var ids []string
	for _, m := range matches {
		if m.Candidate.LatentScore < ScoreThreshold {
			t.Fatalf("candidate %s below threshold returned", m.Candidate.ID)
		}
		ids = append(ids, m.Candidate.ID)
	}
	if want := []string{"top", "mid", "edge"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("order = %v, want %v", ids, want)
	}

	// similarity is computed against the job embedding, not a constant
	if matches[2].Similarity != 1 {
		t.Fatalf("identical embedding should have similarity 1, got %v", matches[2].Similarity)
	}
	if matches[0].Similarity != 0 {
		t.Fatalf("orthogonal embedding should have similarity 0, got %v", matches[0].Similarity)
	}
}

func TestMatchesForJobStable(t *testing.T) {
	store := &engineStore{
		jobs: map[string]storage.Job{"j": {ID: "j", Embedding: []float32{1, 0}}},
		candidates: []storage.Candidate{
			{ID: "b", LatentScore: 80, Embedding: []float32{1, 0}},
			{ID: "a", LatentScore: 80, Embedding: []float32{1, 0}},
		},
	}

	e := NewEngine(store, zap.NewNop())
	first, err := e.MatchesForJob(context.Background(), "j")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := e.MatchesForJob(context.Background(), "j")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated calls on unchanged data must return the same list")
	}
	if first[0].Candidate.ID != "a" {
		t.Fatalf("ties should break by id, got %s first", first[0].Candidate.ID)
	}
}

func TestMatchesForJobUnknownJob(t *testing.T) {
	e := NewEngine(&engineStore{jobs: map[string]storage.Job{}}, zap.NewNop())
	_, err := e.MatchesForJob(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScoreDropRemovesCandidate(t *testing.T) {
	store := &engineStore{
		jobs: map[string]storage.Job{"j": {ID: "j"}},
		candidates: []storage.Candidate{
			{ID: "c", LatentScore: 75},
		},
	}
	e := NewEngine(store, zap.NewNop())

	matches, err := e.MatchesForJob(context.Background(), "j")
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one match, got %v (%v)", matches, err)
	}

	store.candidates[0].LatentScore = 40
	matches, err = e.MatchesForJob(context.Background(), "j")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("lowered score should remove the candidate, got %v", matches)
	}
}
