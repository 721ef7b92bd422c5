package teams

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cornellappdev/score/internal/models"
)

// TeamsRepository defines what the directory needs from the repository.
type TeamsRepository interface {
	CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.Team, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	GetTeamByName(ctx context.Context, name string) (*models.Team, error)
	ListTeamsByNameContains(ctx context.Context, substring string) ([]models.Team, error)
	UpdateBranding(ctx context.Context, id uuid.UUID, req UpdateBrandingRequest) error
}

// Directory is the get-or-create lookup for opponent teams by name. A team
// is created the first time a name is seen; later sightings refresh its
// color and logo but never its identity.
type Directory struct {
	repo   TeamsRepository
	client *http.Client
}

// NewDirectory creates a new team directory.
func NewDirectory(repo TeamsRepository) *Directory {
	return &Directory{
		repo: repo,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetOrCreate resolves an opponent name to its team, creating the team on
// first sight. On a hit the stored color and logo are overwritten with the
// freshly derived values. Logo fetch failures are logged and tolerated.
func (d *Directory) GetOrCreate(ctx context.Context, name, logoURL string) (*models.Team, error) {
	if name == "" {
		return nil, fmt.Errorf("opponent name is required")
	}

	color := fallbackColor
	logoB64 := ""
	if logoURL != "" {
		data, err := d.fetchLogo(ctx, logoURL)
		if err != nil {
			log.Warn().Err(err).Str("team", name).Str("logo_url", logoURL).Msg("failed to fetch opponent logo")
			color = defaultColor
		} else {
			color = DominantColor(data)
			logoB64 = base64.StdEncoding.EncodeToString(data)
		}
	}

	existing, err := d.repo.GetTeamByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		branding := UpdateBrandingRequest{Color: color, LogoURL: logoURL, LogoB64: logoB64}
		if err := d.repo.UpdateBranding(ctx, existing.ID, branding); err != nil {
			return nil, err
		}
		existing.Color = color
		existing.LogoURL = logoURL
		existing.LogoB64 = logoB64
		return existing, nil
	}

	team, err := d.repo.CreateTeam(ctx, CreateTeamRequest{
		Name:    name,
		Color:   color,
		LogoURL: logoURL,
		LogoB64: logoB64,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("team", name).Str("color", color).Msg("created opponent team")
	return team, nil
}

// GetTeam retrieves a team by ID.
func (d *Directory) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	return d.repo.GetTeam(ctx, id)
}

// FindByNameContains retrieves teams whose name contains the substring,
// case-insensitively. The live feed reports names that only loosely match
// the schedule page ("Cornell" vs "CORNELL Big Red"), so exact lookup is
// not enough there.
func (d *Directory) FindByNameContains(ctx context.Context, substring string) ([]models.Team, error) {
	return d.repo.ListTeamsByNameContains(ctx, substring)
}

func (d *Directory) fetchLogo(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch logo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("logo fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read logo body: %w", err)
	}
	return data, nil
}
