package games

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cornellappdev/score/internal/models"
	"github.com/cornellappdev/score/internal/sports"
)

// GamesRepository defines what the engine needs from the repository.
type GamesRepository interface {
	InsertGame(ctx context.Context, g models.Game) (bool, error)
	GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error)
	FindByTournamentKey(ctx context.Context, sport, gender, city, state, location, date string) (*models.Game, error)
	FindByKeyFields(ctx context.Context, sport, gender, city, state, location string, opponentID uuid.UUID) (*models.Game, error)
	ListBySportGender(ctx context.Context, sport, gender string) ([]models.Game, error)
	UpdateGame(ctx context.Context, id uuid.UUID, req UpdateGameRequest) error
	UpdateLive(ctx context.Context, id uuid.UUID, boxScore []models.PlayEvent, breakdown models.ScoreBreakdown, lastUpdated time.Time) error
	SetLive(ctx context.Context, id uuid.UUID, isLive bool, lastUpdated time.Time) error
	DeleteGame(ctx context.Context, id uuid.UUID) error
}

// TeamLookup defines what the engine needs from the team directory.
type TeamLookup interface {
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
}

// Engine reconciles candidate records against the stored games. It owns the
// tiered matching strategy, placeholder-opponent promotion and the
// tournament-loss cascade.
type Engine struct {
	repo       GamesRepository
	teams      TeamLookup
	normalizer *ScoreOrderNormalizer
	now        func() time.Time
}

// NewEngine creates a new reconciliation engine.
func NewEngine(repo GamesRepository, teams TeamLookup) *Engine {
	return &Engine{
		repo:       repo,
		teams:      teams,
		normalizer: NewScoreOrderNormalizer(),
		now:        time.Now,
	}
}

// Reconcile matches a candidate against the stored games and either merges
// it into the match or inserts it as a new game. It returns the ID of the
// stored game the candidate now describes.
func (e *Engine) Reconcile(ctx context.Context, cand Candidate) (uuid.UUID, error) {
	cand.ScoreBreakdown = e.normalizer.Normalize(cand)

	stored, err := e.findMatch(ctx, cand)
	if err != nil {
		return uuid.Nil, err
	}
	if stored != nil {
		return stored.ID, e.mergeInto(ctx, stored, cand)
	}

	return e.insert(ctx, cand)
}

// findMatch applies the tiered key strategy, most specific first. The
// tournament key runs before the opponent-based key because a stored
// placeholder game carries the wrong opponent by definition.
func (e *Engine) findMatch(ctx context.Context, cand Candidate) (*models.Game, error) {
	stored, err := e.repo.FindByTournamentKey(ctx, cand.Sport, cand.Gender, cand.City, cand.State, cand.Location, cand.Date)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		return stored, nil
	}

	return e.repo.FindByKeyFields(ctx, cand.Sport, cand.Gender, cand.City, cand.State, cand.Location, cand.OpponentID)
}

func (e *Engine) mergeInto(ctx context.Context, stored *models.Game, cand Candidate) error {
	upd := mergeUpdate(stored, cand, e.now().UTC())

	promoted := false
	if cand.OpponentID != stored.OpponentID && !sports.IsPlaceholderTeam(cand.OpponentName) {
		storedOpp, err := e.teams.GetTeam(ctx, stored.OpponentID)
		if err != nil {
			return err
		}
		if storedOpp != nil && sports.IsPlaceholderTeam(storedOpp.Name) {
			upd.OpponentID = cand.OpponentID
			promoted = true
			log.Info().
				Str("game_id", stored.ID.String()).
				Str("placeholder", storedOpp.Name).
				Str("opponent", cand.OpponentName).
				Msg("promoted placeholder opponent")
		}
	}

	if err := e.repo.UpdateGame(ctx, stored.ID, upd); err != nil {
		return err
	}

	// A confirmed elimination makes every later bracket slot impossible.
	if promoted && cand.Result != nil && sports.IsLoss(*cand.Result) && cand.UTCDate != nil {
		if err := e.cascadeTournamentLoss(ctx, cand.Sport, cand.Gender, *cand.UTCDate, stored.ID); err != nil {
			return err
		}
	}

	return nil
}

// cascadeTournamentLoss deletes every other stored game for the program
// whose opponent is still a placeholder and whose UTC date is strictly
// after the loss. Real-opponent games are never touched.
func (e *Engine) cascadeTournamentLoss(ctx context.Context, sport, gender string, lossDate time.Time, lossGameID uuid.UUID) error {
	all, err := e.repo.ListBySportGender(ctx, sport, gender)
	if err != nil {
		return err
	}

	for _, g := range all {
		if g.ID == lossGameID || g.UTCDate == nil || !g.UTCDate.After(lossDate) {
			continue
		}
		opp, err := e.teams.GetTeam(ctx, g.OpponentID)
		if err != nil {
			return err
		}
		if opp == nil || !sports.IsPlaceholderTeam(opp.Name) {
			continue
		}
		if err := e.repo.DeleteGame(ctx, g.ID); err != nil {
			return err
		}
		log.Info().
			Str("game_id", g.ID.String()).
			Str("sport", sport).
			Str("gender", gender).
			Str("placeholder", opp.Name).
			Msg("deleted future placeholder game after tournament loss")
	}

	return nil
}

func (e *Engine) insert(ctx context.Context, cand Candidate) (uuid.UUID, error) {
	// A game without a valid opponent reference breaks every downstream
	// join, so an unresolvable opponent is rejected rather than tolerated.
	opp, err := e.teams.GetTeam(ctx, cand.OpponentID)
	if err != nil {
		return uuid.Nil, err
	}
	if opp == nil {
		return uuid.Nil, fmt.Errorf("opponent team %s does not exist", cand.OpponentID)
	}

	game := models.Game{
		ID:             uuid.New(),
		Sport:          cand.Sport,
		Gender:         cand.Gender,
		City:           cand.City,
		State:          cand.State,
		Location:       cand.Location,
		Date:           cand.Date,
		UTCDate:        cand.UTCDate,
		Time:           cand.Time,
		OpponentID:     cand.OpponentID,
		Result:         cand.Result,
		TicketLink:     cand.TicketLink,
		BoxScore:       cand.BoxScore,
		ScoreBreakdown: cand.ScoreBreakdown,
		LastUpdated:    e.now().UTC(),
	}

	inserted, err := e.repo.InsertGame(ctx, game)
	if err != nil {
		return uuid.Nil, err
	}
	if inserted {
		return game.ID, nil
	}

	// A concurrent run inserted the same natural key first; its row is the
	// canonical one.
	winner, err := e.findMatch(ctx, cand)
	if err != nil {
		return uuid.Nil, err
	}
	if winner == nil {
		return uuid.Nil, fmt.Errorf("insert of game vs %s conflicted but no stored game matches", cand.OpponentName)
	}
	return winner.ID, nil
}

// ApplyLiveDelta merges net-new plays and the recomputed breakdown into a
// stored game, marking it live. It reports whether anything changed.
func (e *Engine) ApplyLiveDelta(ctx context.Context, gameID uuid.UUID, plays []models.PlayEvent, breakdown models.ScoreBreakdown) (bool, error) {
	game, err := e.repo.GetGame(ctx, gameID)
	if err != nil {
		return false, err
	}
	if game == nil {
		return false, fmt.Errorf("game %s does not exist", gameID)
	}

	merged := game.BoxScore
	added := 0
	for _, p := range plays {
		if !containsEvent(merged, p) {
			merged = append(merged, p)
			added++
		}
	}

	changed := added > 0 || !breakdownEqual(game.ScoreBreakdown, breakdown) || !game.IsLive
	if !changed {
		return false, nil
	}

	if err := e.repo.UpdateLive(ctx, gameID, merged, breakdown, e.now().UTC()); err != nil {
		return false, err
	}
	return true, nil
}

// DeactivateLive marks a game no longer in progress: one final state write,
// no further broadcast.
func (e *Engine) DeactivateLive(ctx context.Context, gameID uuid.UUID) error {
	return e.repo.SetLive(ctx, gameID, false, e.now().UTC())
}

// GetGame retrieves a stored game by ID.
func (e *Engine) GetGame(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	return e.repo.GetGame(ctx, id)
}

// ListBySportGender retrieves all stored games for one program.
func (e *Engine) ListBySportGender(ctx context.Context, sport, gender string) ([]models.Game, error) {
	return e.repo.ListBySportGender(ctx, sport, gender)
}

// mergeUpdate folds a candidate into a stored game. Concrete values win;
// absent candidate fields keep what is stored.
func mergeUpdate(stored *models.Game, cand Candidate, now time.Time) UpdateGameRequest {
	upd := UpdateGameRequest{
		City:           cand.City,
		State:          cand.State,
		Location:       cand.Location,
		Date:           stored.Date,
		UTCDate:        stored.UTCDate,
		Time:           stored.Time,
		OpponentID:     stored.OpponentID,
		Result:         stored.Result,
		TicketLink:     stored.TicketLink,
		BoxScore:       stored.BoxScore,
		ScoreBreakdown: stored.ScoreBreakdown,
		LastUpdated:    now,
	}

	if cand.Date != "" {
		upd.Date = cand.Date
	}
	if cand.Time != "" {
		// A placeholder kickoff time is only replaced by a concrete one.
		upd.Time = cand.Time
	}
	if cand.UTCDate != nil {
		upd.UTCDate = cand.UTCDate
	}
	if cand.Result != nil {
		upd.Result = cand.Result
	}
	if cand.TicketLink != nil {
		upd.TicketLink = cand.TicketLink
	}
	if cand.BoxScore != nil {
		upd.BoxScore = cand.BoxScore
	}
	if cand.ScoreBreakdown != nil {
		upd.ScoreBreakdown = cand.ScoreBreakdown
	}

	return upd
}

func containsEvent(events []models.PlayEvent, p models.PlayEvent) bool {
	for _, e := range events {
		if e.SameEvent(p) {
			return true
		}
	}
	return false
}

func breakdownEqual(a, b models.ScoreBreakdown) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}
