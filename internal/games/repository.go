package games

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cornellappdev/score/internal/models"
)

const gameColumns = `id, sport, gender, city, state, location, date, utc_date, game_time,
	opponent_id, result, ticket_link, box_score, score_breakdown, is_live, last_updated`

// Repository implements game data access operations over Postgres. Every
// mutation is a single atomic statement; the compound unique index on the
// natural key is the only synchronization between concurrent ingestion runs.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new games repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{
		pool: pool,
	}
}

// InitSchema creates the games table and its natural-key unique index.
func (r *Repository) InitSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS games (
			id UUID PRIMARY KEY,
			sport TEXT NOT NULL,
			gender TEXT NOT NULL,
			city TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL,
			utc_date TIMESTAMPTZ,
			game_time TEXT NOT NULL DEFAULT '',
			opponent_id UUID NOT NULL REFERENCES teams(id),
			result TEXT,
			ticket_link TEXT,
			box_score JSONB,
			score_breakdown JSONB,
			is_live BOOLEAN NOT NULL DEFAULT FALSE,
			last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE UNIQUE INDEX IF NOT EXISTS games_natural_key
			ON games (sport, gender, date, opponent_id, city, state, location);
	`)
	if err != nil {
		return fmt.Errorf("failed to init games schema: %w", err)
	}
	return nil
}

// InsertGame inserts a new game. A concurrent run inserting the same
// natural key wins silently: the conflicting insert reports inserted=false
// and is treated as a no-op by the caller.
func (r *Repository) InsertGame(ctx context.Context, g models.Game) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO games (
			id, sport, gender, city, state, location, date, utc_date, game_time,
			opponent_id, result, ticket_link, box_score, score_breakdown, is_live, last_updated
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		ON CONFLICT (sport, gender, date, opponent_id, city, state, location) DO NOTHING
	`,
		g.ID, g.Sport, g.Gender, g.City, g.State, g.Location, g.Date, g.UTCDate, g.Time,
		g.OpponentID, g.Result, g.TicketLink, g.BoxScore, g.ScoreBreakdown, g.IsLive, g.LastUpdated,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert game: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetGame retrieves a game by ID, or nil if not found.
func (r *Repository) GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id)
	return scanGame(row, "failed to get game")
}

// FindByTournamentKey looks a game up by its tournament key, which ignores
// the opponent: a stored placeholder game has the wrong opponent by
// definition, so the opponent cannot be part of the first-tier match.
func (r *Repository) FindByTournamentKey(ctx context.Context, sport, gender, city, state, location, date string) (*models.Game, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+gameColumns+` FROM games
		WHERE sport = $1 AND gender = $2 AND city = $3 AND state = $4 AND location = $5 AND date = $6
	`, sport, gender, city, state, location, date)
	return scanGame(row, "failed to find game by tournament key")
}

// FindByKeyFields looks a game up by sport, gender, venue and opponent,
// ignoring the kickoff date/time. This tolerates a schedule page that only
// corrected when the game starts.
func (r *Repository) FindByKeyFields(ctx context.Context, sport, gender, city, state, location string, opponentID uuid.UUID) (*models.Game, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+gameColumns+` FROM games
		WHERE sport = $1 AND gender = $2 AND city = $3 AND state = $4 AND location = $5 AND opponent_id = $6
	`, sport, gender, city, state, location, opponentID)
	return scanGame(row, "failed to find game by key fields")
}

// ListBySportGender retrieves all games for one (sport, gender) program.
func (r *Repository) ListBySportGender(ctx context.Context, sport, gender string) ([]models.Game, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+gameColumns+` FROM games WHERE sport = $1 AND gender = $2 ORDER BY utc_date NULLS LAST
	`, sport, gender)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		g, err := scanGame(rows, "failed to scan game")
		if err != nil {
			return nil, err
		}
		games = append(games, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	return games, nil
}

// UpdateGame writes the merged reconciliation field set in one statement.
func (r *Repository) UpdateGame(ctx context.Context, id uuid.UUID, req UpdateGameRequest) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE games SET
			city = $2, state = $3, location = $4, date = $5, utc_date = $6, game_time = $7,
			opponent_id = $8, result = $9, ticket_link = $10, box_score = $11,
			score_breakdown = $12, last_updated = $13
		WHERE id = $1
	`,
		id, req.City, req.State, req.Location, req.Date, req.UTCDate, req.Time,
		req.OpponentID, req.Result, req.TicketLink, req.BoxScore, req.ScoreBreakdown, req.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}
	return nil
}

// UpdateLive replaces the live fields of a game in one statement.
func (r *Repository) UpdateLive(ctx context.Context, id uuid.UUID, boxScore []models.PlayEvent, breakdown models.ScoreBreakdown, lastUpdated time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE games SET box_score = $2, score_breakdown = $3, is_live = TRUE, last_updated = $4
		WHERE id = $1
	`, id, boxScore, breakdown, lastUpdated)
	if err != nil {
		return fmt.Errorf("failed to update live game: %w", err)
	}
	return nil
}

// SetLive flips the live flag, refreshing the update timestamp.
func (r *Repository) SetLive(ctx context.Context, id uuid.UUID, isLive bool, lastUpdated time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE games SET is_live = $2, last_updated = $3 WHERE id = $1
	`, id, isLive, lastUpdated)
	if err != nil {
		return fmt.Errorf("failed to set game live flag: %w", err)
	}
	return nil
}

// DeleteGame deletes a game by ID.
func (r *Repository) DeleteGame(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM games WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return nil
}

func scanGame(row pgx.Row, msg string) (*models.Game, error) {
	var g models.Game
	err := row.Scan(
		&g.ID, &g.Sport, &g.Gender, &g.City, &g.State, &g.Location, &g.Date, &g.UTCDate, &g.Time,
		&g.OpponentID, &g.Result, &g.TicketLink, &g.BoxScore, &g.ScoreBreakdown, &g.IsLive, &g.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	return &g, nil
}
