package scoring

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"talentmatch/internal/storage"
)

type countingStore struct {
	mu    sync.Mutex
	lists int
}

func (s *countingStore) AllCandidates(context.Context) ([]storage.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	return nil, nil
}

func (s *countingStore) UpdateLatentScore(context.Context, string, float64) error { return nil }

func (s *countingStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists
}

func TestRunnerFiresAndStops(t *testing.T) {
	store := &countingStore{}
	r := NewRunner(NewRefresher(store, &stubScorer{}, zap.NewNop()), 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)

	deadline := time.After(2 * time.Second)
	for store.count() < 2 {
		select {
		case <-deadline:
			t.Fatalf("runner did not fire twice in time")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	r.Wait() // must return once the loop has observed cancellation
}
