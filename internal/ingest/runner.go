package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cornellappdev/score/internal/games"
	"github.com/cornellappdev/score/internal/sports"
)

// Reconciler defines what the runner needs from the reconciliation engine.
type Reconciler interface {
	Reconcile(ctx context.Context, cand games.Candidate) (uuid.UUID, error)
}

// Runner drives one batch ingestion: one worker per sport, all running in
// parallel against the shared store. Workers share no in-memory state;
// the store's unique index is the only cross-worker synchronization.
type Runner struct {
	source   Source
	ingestor *Ingestor
	engine   Reconciler
	sports   []sports.Sport
}

// NewRunner creates an ingestion runner over the given sports.
func NewRunner(source Source, ingestor *Ingestor, engine Reconciler, catalog []sports.Sport) *Runner {
	return &Runner{
		source:   source,
		ingestor: ingestor,
		engine:   engine,
		sports:   catalog,
	}
}

// Run scrapes and reconciles every sport, blocking until all workers
// finish. Each worker's failure is isolated to its sport; the errors are
// aggregated and returned rather than swallowed.
func (r *Runner) Run(ctx context.Context) error {
	start := time.Now()
	log.Info().Int("sports", len(r.sports)).Msg("starting schedule ingestion")

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, sp := range r.sports {
		wg.Add(1)
		go func(sp sports.Sport) {
			defer wg.Done()
			if err := r.runSport(ctx, sp); err != nil {
				log.Error().Err(err).Str("sport", sp.Name).Str("gender", sp.Gender).Msg("schedule ingestion failed for sport")
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s %s: %w", sp.Gender, sp.Name, err))
				mu.Unlock()
			}
		}(sp)
	}

	wg.Wait()
	log.Info().Dur("elapsed", time.Since(start)).Int("failed", len(errs)).Msg("schedule ingestion finished")
	return errors.Join(errs...)
}

func (r *Runner) runSport(ctx context.Context, sp sports.Sport) error {
	schedule, err := r.source.FetchSchedule(ctx, sp)
	if err != nil {
		return err
	}

	var errs []error
	for _, item := range schedule.Items {
		cand, err := r.ingestor.Ingest(ctx, sp, schedule.SeasonYears, item)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, err := r.engine.Reconcile(ctx, cand); err != nil {
			errs = append(errs, fmt.Errorf("failed to reconcile game vs %q: %w", item.OpponentName, err))
		}
	}

	log.Debug().
		Str("sport", sp.Name).
		Str("gender", sp.Gender).
		Int("items", len(schedule.Items)).
		Int("errors", len(errs)).
		Msg("sport schedule processed")

	return errors.Join(errs...)
}
