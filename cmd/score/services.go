package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/cornellappdev/score/internal/games"
	"github.com/cornellappdev/score/internal/gateway"
	"github.com/cornellappdev/score/internal/ingest"
	"github.com/cornellappdev/score/internal/live"
	"github.com/cornellappdev/score/internal/sports"
	"github.com/cornellappdev/score/internal/teams"
)

type Services struct {
	Teams  *teams.Directory
	Games  *games.Engine
	Runner *ingest.Runner
	Live   *live.Service
	Hub    *gateway.ConnectionManager
	WS     *gateway.WebSocketHandler
}

func setupServices(ctx context.Context, pool *pgxpool.Pool, config *Config) (*Services, error) {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Transport layer

	// Teams
	teamsRepo := teams.NewRepository(pool)
	if err := teamsRepo.InitSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to init teams schema: %w", err)
	}
	directory := teams.NewDirectory(teamsRepo)

	// Games
	gamesRepo := games.NewRepository(pool)
	if err := gamesRepo.InitSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to init games schema: %w", err)
	}
	engine := games.NewEngine(gamesRepo, directory)

	// Schedule ingestion
	ingestor, err := ingest.NewIngestor(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to create ingestor: %w", err)
	}
	source := ingest.NewHTTPSource(config.Schedule.BaseURL, ingest.NewJSONScheduleParser())
	runner := ingest.NewRunner(source, ingestor, engine, sports.ScheduleSports)

	// Live updates
	hub := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
	wsHandler := gateway.NewWebSocketHandler(hub)
	feed := live.NewFeedClient(config.Live.BaseURL)
	scraper := live.NewScraper(feed, directory, engine)
	liveService := live.NewService(scraper, engine, hub, clockwork.NewRealClock(), live.Config{
		PollInterval: config.PollInterval(),
	})

	return &Services{
		Teams:  directory,
		Games:  engine,
		Runner: runner,
		Live:   liveService,
		Hub:    hub,
		WS:     wsHandler,
	}, nil
}
