package live

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/cornellappdev/score/internal/gateway"
	"github.com/cornellappdev/score/internal/models"
)

// Config holds live service polling configuration.
type Config struct {
	PollInterval time.Duration
}

// DefaultConfig returns default live polling configuration.
func DefaultConfig() Config {
	return Config{
		PollInterval: 30 * time.Second,
	}
}

// Poller produces live deltas for the games currently in progress.
type Poller interface {
	Poll(ctx context.Context) []Update
}

// LiveUpdater applies live deltas to stored games.
type LiveUpdater interface {
	ApplyLiveDelta(ctx context.Context, gameID uuid.UUID, plays []models.PlayEvent, breakdown models.ScoreBreakdown) (bool, error)
	DeactivateLive(ctx context.Context, gameID uuid.UUID) error
	GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error)
}

// Broadcaster pushes game events to connected clients.
type Broadcaster interface {
	BroadcastGameUpdate(gameID uuid.UUID, event *gateway.GameEvent)
}

// Service polls live feeds on an interval, persists deltas, and broadcasts
// changed games to subscribers.
type Service struct {
	poller Poller
	engine LiveUpdater
	hub    Broadcaster
	clock  clockwork.Clock
	config Config

	// Games seen active on the previous poll; touched only by the run loop
	active map[uuid.UUID]bool

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewService creates a live game service.
func NewService(poller Poller, engine LiveUpdater, hub Broadcaster, clock clockwork.Clock, cfg Config) *Service {
	return &Service{
		poller:   poller,
		engine:   engine,
		hub:      hub,
		clock:    clock,
		config:   cfg,
		active:   make(map[uuid.UUID]bool),
		stopChan: make(chan struct{}),
	}
}

// Start begins the polling loop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("live service already running")
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(ctx)

	log.Info().
		Dur("poll_interval", s.config.PollInterval).
		Msg("live service started")

	return nil
}

// Stop halts the polling loop and waits for it to drain.
func (s *Service) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return fmt.Errorf("live service not running")
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopChan)
	s.wg.Wait()

	log.Info().Msg("live service stopped")
	return nil
}

func (s *Service) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := s.clock.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	// Poll immediately on start
	s.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.Chan():
			s.poll(ctx)
		}
	}
}

// poll runs one full cycle: apply every delta, broadcast changed games, and
// deactivate games that dropped off the feeds.
func (s *Service) poll(ctx context.Context) {
	updates := s.poller.Poll(ctx)

	seen := make(map[uuid.UUID]bool, len(updates))
	for _, u := range updates {
		seen[u.GameID] = true

		changed, err := s.engine.ApplyLiveDelta(ctx, u.GameID, u.NewPlays, u.ScoreBreakdown)
		if err != nil {
			log.Error().
				Err(err).
				Str("game_id", u.GameID.String()).
				Msg("failed to apply live delta")
			continue
		}
		if !changed {
			continue
		}

		game, err := s.engine.GetGame(ctx, u.GameID)
		if err != nil || game == nil {
			log.Error().
				Err(err).
				Str("game_id", u.GameID.String()).
				Msg("failed to load game for broadcast")
			continue
		}

		s.hub.BroadcastGameUpdate(u.GameID, gateway.NewGameUpdateEvent(u.GameID, game))

		log.Info().
			Str("game_id", u.GameID.String()).
			Int("new_plays", len(u.NewPlays)).
			Msg("live update broadcasted")
	}

	for gameID := range s.active {
		if seen[gameID] {
			continue
		}
		if err := s.engine.DeactivateLive(ctx, gameID); err != nil {
			log.Error().
				Err(err).
				Str("game_id", gameID.String()).
				Msg("failed to deactivate live game")
			// Keep it in the active set so deactivation retries next poll
			seen[gameID] = true
			continue
		}

		log.Info().
			Str("game_id", gameID.String()).
			Msg("live game deactivated")
	}

	s.active = seen
}
