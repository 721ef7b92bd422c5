package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/cornellappdev/score/internal/games"
	"github.com/cornellappdev/score/internal/sports"
)

type stubSource struct {
	failSlug  string
	schedules map[string]*Schedule
}

func (s *stubSource) FetchSchedule(ctx context.Context, sp sports.Sport) (*Schedule, error) {
	if sp.Slug == s.failSlug {
		return nil, errors.New("upstream unavailable")
	}
	if sched, ok := s.schedules[sp.Slug]; ok {
		return sched, nil
	}
	return &Schedule{}, nil
}

type countingReconciler struct {
	mu    sync.Mutex
	seen  []games.Candidate
	calls int
}

func (c *countingReconciler) Reconcile(ctx context.Context, cand games.Candidate) (uuid.UUID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.seen = append(c.seen, cand)
	return uuid.New(), nil
}

func TestRunnerIsolatesSportFailures(t *testing.T) {
	source := &stubSource{
		failSlug: "football",
		schedules: map[string]*Schedule{
			"mens-ice-hockey": {
				SeasonYears: SeasonYears{First: 2024, Second: 2025},
				Items: []ScrapedItem{
					{OpponentName: "Harvard", DateText: "Jan 15", LocationText: "Ithaca, N.Y."},
					{OpponentName: "Yale", DateText: "Jan 17", LocationText: "Ithaca, N.Y."},
				},
			},
		},
	}

	ingestor, err := NewIngestor(&stubResolver{})
	if err != nil {
		t.Fatalf("NewIngestor: %v", err)
	}
	engine := &countingReconciler{}

	catalog := []sports.Sport{
		{Slug: "football", Name: "Football", Gender: "Mens"},
		{Slug: "mens-ice-hockey", Name: "Ice Hockey", Gender: "Mens"},
	}
	runner := NewRunner(source, ingestor, engine, catalog)

	err = runner.Run(context.Background())
	if err == nil {
		t.Fatal("Run should report the failed sport")
	}

	// The failing sport must not stop its sibling
	if engine.calls != 2 {
		t.Errorf("reconcile calls = %d, want 2", engine.calls)
	}
	for _, cand := range engine.seen {
		if cand.Sport != "Ice Hockey" {
			t.Errorf("unexpected candidate sport %q", cand.Sport)
		}
	}
}

func TestRunnerAggregatesNothingOnSuccess(t *testing.T) {
	source := &stubSource{
		schedules: map[string]*Schedule{
			"womens-soccer": {
				SeasonYears: SeasonYears{First: 2024},
				Items: []ScrapedItem{
					{OpponentName: "Penn", DateText: "Oct 4", LocationText: "Philadelphia, Pa."},
				},
			},
		},
	}

	ingestor, err := NewIngestor(&stubResolver{})
	if err != nil {
		t.Fatalf("NewIngestor: %v", err)
	}
	engine := &countingReconciler{}

	runner := NewRunner(source, ingestor, engine, []sports.Sport{
		{Slug: "womens-soccer", Name: "Soccer", Gender: "Womens"},
	})

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if engine.calls != 1 {
		t.Errorf("reconcile calls = %d, want 1", engine.calls)
	}
}
