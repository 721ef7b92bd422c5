package teams

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cornellappdev/score/internal/models"
)

// Repository implements team data access operations over Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new teams repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{
		pool: pool,
	}
}

// InitSchema creates the teams table if it does not exist.
func (r *Repository) InitSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS teams (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			color TEXT NOT NULL DEFAULT '',
			logo_url TEXT NOT NULL DEFAULT '',
			logo_b64 TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to init teams schema: %w", err)
	}
	return nil
}

// CreateTeam inserts a new team. On a concurrent insert of the same name
// the existing row wins and is returned instead.
func (r *Repository) CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.Team, error) {
	id := uuid.New()
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO teams (id, name, color, logo_url, logo_b64)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO NOTHING
	`, id, req.Name, req.Color, req.LogoURL, req.LogoB64)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Lost a creation race; the other insert owns the identity.
		return r.GetTeamByName(ctx, req.Name)
	}

	return &models.Team{
		ID:      id,
		Name:    req.Name,
		Color:   req.Color,
		LogoURL: req.LogoURL,
		LogoB64: req.LogoB64,
	}, nil
}

// GetTeam retrieves a team by ID.
func (r *Repository) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, color, logo_url, logo_b64 FROM teams WHERE id = $1
	`, id)
	return scanTeam(row, "failed to get team")
}

// GetTeamByName retrieves a team by its exact name.
func (r *Repository) GetTeamByName(ctx context.Context, name string) (*models.Team, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, color, logo_url, logo_b64 FROM teams WHERE name = $1
	`, name)
	return scanTeam(row, "failed to get team by name")
}

// ListTeamsByNameContains retrieves all teams whose name contains the
// substring, case-insensitively.
func (r *Repository) ListTeamsByNameContains(ctx context.Context, substring string) ([]models.Team, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, color, logo_url, logo_b64
		FROM teams
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name
	`, substring)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams by name: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.LogoURL, &t.LogoB64); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list teams by name: %w", err)
	}

	return teams, nil
}

// UpdateBranding overwrites a team's color and logo in a single statement.
func (r *Repository) UpdateBranding(ctx context.Context, id uuid.UUID, req UpdateBrandingRequest) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE teams SET color = $2, logo_url = $3, logo_b64 = $4 WHERE id = $1
	`, id, req.Color, req.LogoURL, req.LogoB64)
	if err != nil {
		return fmt.Errorf("failed to update team branding: %w", err)
	}
	return nil
}

func scanTeam(row pgx.Row, msg string) (*models.Team, error) {
	var t models.Team
	if err := row.Scan(&t.ID, &t.Name, &t.Color, &t.LogoURL, &t.LogoB64); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	return &t, nil
}
