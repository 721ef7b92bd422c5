package live

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cornellappdev/score/internal/models"
	"github.com/cornellappdev/score/internal/sports"
)

// scoringKeywords mark plays worth keeping from the play-by-play stream.
var scoringKeywords = []string{"GOAL", "SCORE", "TOUCHDOWN", "FIELD GOAL", "SHOT"}

// FeedFetcher fetches the current live game document for a sport code.
type FeedFetcher interface {
	FetchGame(ctx context.Context, sportCode string) (*FeedGame, error)
}

// TeamFinder finds stored teams by partial name.
type TeamFinder interface {
	FindByNameContains(ctx context.Context, substring string) ([]models.Team, error)
}

// GameFinder lists stored games for live matching.
type GameFinder interface {
	ListBySportGender(ctx context.Context, sport, gender string) ([]models.Game, error)
}

// Update is one live delta the scraper produced for a stored game.
type Update struct {
	GameID         uuid.UUID
	NewPlays       []models.PlayEvent
	ScoreBreakdown models.ScoreBreakdown
}

// Scraper polls live feeds and matches them against stored games.
type Scraper struct {
	feed   FeedFetcher
	teams  TeamFinder
	games  GameFinder
	sports []sports.LiveSport
}

// NewScraper creates a live scraper over the sports that have feeds.
func NewScraper(feed FeedFetcher, teams TeamFinder, games GameFinder) *Scraper {
	return &Scraper{
		feed:   feed,
		teams:  teams,
		games:  games,
		sports: sports.LiveSports,
	}
}

// Poll fetches every live feed and returns deltas for the active games it
// could match to stored games. Per-sport failures are logged and skipped.
func (s *Scraper) Poll(ctx context.Context) []Update {
	var updates []Update

	for _, ls := range s.sports {
		game, err := s.feed.FetchGame(ctx, ls.Code)
		if err != nil {
			log.Warn().
				Err(err).
				Str("sport", ls.Code).
				Msg("Failed to fetch live feed")
			continue
		}

		if !game.Active() {
			continue
		}

		stored, err := s.matchStoredGame(ctx, ls, game)
		if err != nil {
			log.Warn().
				Err(err).
				Str("sport", ls.Code).
				Msg("Failed to match live game")
			continue
		}
		if stored == nil {
			log.Warn().
				Str("sport", ls.Code).
				Str("home", game.HomeTeam.Name).
				Str("visitor", game.VisitingTeam.Name).
				Msg("No stored game matches live feed")
			continue
		}

		cor, opp, _ := cornellSide(game)
		updates = append(updates, Update{
			GameID:         stored.ID,
			NewPlays:       extractScoringPlays(game, cor, opp, stored.BoxScore),
			ScoreBreakdown: buildBreakdown(cor, opp),
		})
	}

	return updates
}

// matchStoredGame resolves the feed game to a stored game by opponent name
// and date, or nil when nothing matches.
func (s *Scraper) matchStoredGame(ctx context.Context, ls sports.LiveSport, game *FeedGame) (*models.Game, error) {
	_, opp, _ := cornellSide(game)

	candidates, err := s.teams.FindByNameContains(ctx, opp.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to find opponent candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	stored, err := s.games.ListBySportGender(ctx, ls.Name, ls.Gender)
	if err != nil {
		return nil, fmt.Errorf("failed to list stored games: %w", err)
	}

	for _, team := range candidates {
		for i := range stored {
			if stored[i].OpponentID == team.ID && datesMatch(stored[i].Date, game.Date) {
				return &stored[i], nil
			}
		}
	}

	return nil, nil
}

// cornellSide splits the feed game into the Cornell side and the opponent
// side, plus whether Cornell is the home team.
func cornellSide(game *FeedGame) (cor, opp FeedTeam, corIsHome bool) {
	if strings.EqualFold(game.HomeTeam.Name, "Cornell") {
		return game.HomeTeam, game.VisitingTeam, true
	}
	return game.VisitingTeam, game.HomeTeam, false
}

// extractScoringPlays converts feed plays with scoring keywords into box
// score events, dropping ones the stored game already has.
func extractScoringPlays(game *FeedGame, cor, opp FeedTeam, existing []models.PlayEvent) []models.PlayEvent {
	var plays []models.PlayEvent

	for _, play := range game.LastPlays {
		desc := strings.ToUpper(play.Description)
		if !containsScoringKeyword(desc) {
			continue
		}

		team := "OPP"
		if strings.Contains(desc, "COR") {
			team = "COR"
		}

		corScore, oppScore := cor.Score, opp.Score
		event := models.PlayEvent{
			Team:        team,
			Period:      strconv.Itoa(play.Period),
			Time:        formatClock(play.ClockSeconds),
			Description: play.Description,
			CorScore:    &corScore,
			OppScore:    &oppScore,
		}

		if containsEvent(existing, event) {
			continue
		}
		plays = append(plays, event)
	}

	return plays
}

// buildBreakdown rebuilds the two-sided per-period score arrays from the
// feed, Cornell side first.
func buildBreakdown(cor, opp FeedTeam) models.ScoreBreakdown {
	corScores := make([]string, len(cor.PeriodScores))
	for i, v := range cor.PeriodScores {
		corScores[i] = strconv.Itoa(v)
	}
	oppScores := make([]string, len(opp.PeriodScores))
	for i, v := range opp.PeriodScores {
		oppScores[i] = strconv.Itoa(v)
	}
	return models.ScoreBreakdown{corScores, oppScores}
}

func containsScoringKeyword(desc string) bool {
	for _, kw := range scoringKeywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

func containsEvent(events []models.PlayEvent, ev models.PlayEvent) bool {
	for _, e := range events {
		if e.SameEvent(ev) {
			return true
		}
	}
	return false
}

// formatClock renders clock seconds as M:SS.
func formatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// datesMatch loosely matches a stored display date against the feed's
// M/D/YYYY date by token containment.
func datesMatch(storedDate, feedDate string) bool {
	parsed, err := time.Parse("1/2/2006", feedDate)
	if err != nil {
		return false
	}

	month := parsed.Format("Jan")
	day := strconv.Itoa(parsed.Day())
	year := strconv.Itoa(parsed.Year())

	return strings.Contains(storedDate, month) &&
		strings.Contains(storedDate, day) &&
		strings.Contains(storedDate, year)
}
