package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cornellappdev/score/internal/games"
	"github.com/cornellappdev/score/internal/models"
	"github.com/cornellappdev/score/internal/sports"
)

// OpponentResolver defines what the ingestor needs from the team directory.
type OpponentResolver interface {
	GetOrCreate(ctx context.Context, name, logoURL string) (*models.Team, error)
}

// Ingestor turns one raw scraped schedule item into a canonical candidate
// record: opponent identity, season-aware date, UTC instant, location
// split and placeholder normalization. It persists nothing itself.
type Ingestor struct {
	teams   OpponentResolver
	eastern *time.Location
}

// NewIngestor creates a schedule ingestor. Event times on the schedule
// pages are US Eastern.
func NewIngestor(teams OpponentResolver) (*Ingestor, error) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("failed to load eastern timezone: %w", err)
	}
	return &Ingestor{
		teams:   teams,
		eastern: loc,
	}, nil
}

// Ingest builds the candidate for one scraped schedule row.
func (i *Ingestor) Ingest(ctx context.Context, sp sports.Sport, years SeasonYears, item ScrapedItem) (games.Candidate, error) {
	team, err := i.teams.GetOrCreate(ctx, strings.TrimSpace(item.OpponentName), item.OpponentLogoURL)
	if err != nil {
		return games.Candidate{}, fmt.Errorf("failed to resolve opponent %q: %w", item.OpponentName, err)
	}

	date := StripWeekday(item.DateText)
	if year := InferGameYear(date, years); date != "" && year != 0 {
		date = fmt.Sprintf("%s %d", date, year)
	}

	gameTime := ParseTimeString(normalizePlaceholder(item.TimeText))
	city, state, location := splitLocation(item.LocationText)
	city = normalizePlaceholder(city)
	state = normalizePlaceholder(state)

	cand := games.Candidate{
		Sport:          sp.Name,
		Gender:         sp.Gender,
		City:           city,
		State:          state,
		Location:       location,
		Date:           date,
		UTCDate:        ConvertToUTC(date, gameTime, i.eastern),
		Time:           gameTime,
		OpponentID:     team.ID,
		OpponentName:   team.Name,
		BoxScore:       item.BoxScore,
		ScoreBreakdown: item.ScoreBreakdown,
	}

	if result := strings.TrimSpace(strings.ReplaceAll(item.ResultText, "\n", "")); result != "" {
		cand.Result = &result
	}
	if link := strings.TrimSpace(item.TicketLink); link != "" {
		cand.TicketLink = &link
	}

	return cand, nil
}

// splitLocation parses free-text location into (city, state, detail). The
// first line is the geographic part: with no comma it names both city and
// state; otherwise the last comma separates them. A second line is venue
// detail ("Lynah Rink").
func splitLocation(raw string) (city, state, detail string) {
	lines := strings.SplitN(strings.TrimSpace(raw), "\n", 2)
	geo := strings.TrimSpace(lines[0])
	if len(lines) > 1 {
		detail = strings.TrimSpace(lines[1])
	}

	idx := strings.LastIndex(geo, ",")
	if idx < 0 {
		return geo, geo, detail
	}
	return strings.TrimSpace(geo[:idx]), strings.TrimSpace(geo[idx+1:]), detail
}

// normalizePlaceholder maps TBA/TBD display strings to empty.
func normalizePlaceholder(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TBA", "TBD":
		return ""
	}
	return strings.TrimSpace(s)
}
