package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	config, err := loadConfig(getEnv("CONFIG_PATH", "config.yml"))
	if err != nil {
		log.Warn().Err(err).Msg("could not load config file, using defaults")
		config = defaultConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := setupDatabase(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to setup database")
	}
	defer pool.Close()

	services, err := setupServices(ctx, pool, config)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to setup services")
	}

	go services.Hub.Start(ctx)

	if err := services.Live.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start live service")
	}

	go runScheduleScraper(ctx, services, config.ScrapeInterval())

	server := setupServer(services)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")

	if err := services.Live.Stop(); err != nil {
		log.Error().Err(err).Msg("failed to stop live service")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shut down server")
	}

	cancel()
}

// runScheduleScraper runs a full schedule ingestion immediately and then on
// the configured interval until the context is cancelled.
func runScheduleScraper(ctx context.Context, services *Services, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := services.Runner.Run(ctx); err != nil {
		log.Error().Err(err).Msg("schedule ingestion failed")
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := services.Runner.Run(ctx); err != nil {
				log.Error().Err(err).Msg("schedule ingestion failed")
			}
		}
	}
}
