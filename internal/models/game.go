package models

import (
	"time"

	"github.com/google/uuid"
)

// Game is the canonical persisted record of a scheduled or played game.
// At most one non-placeholder game exists per reconciliation key
// (sport, gender, city, state, location, date); a placeholder-opponent
// game at that key is rewritten in place once the real opponent is known.
type Game struct {
	ID             uuid.UUID      `json:"id"`
	Sport          string         `json:"sport"`
	Gender         string         `json:"gender"`
	City           string         `json:"city"`
	State          string         `json:"state"`
	Location       string         `json:"location,omitempty"`
	Date           string         `json:"date"`
	UTCDate        *time.Time     `json:"utc_date,omitempty"`
	Time           string         `json:"time,omitempty"`
	OpponentID     uuid.UUID      `json:"opponent_id"`
	Result         *string        `json:"result,omitempty"`
	TicketLink     *string        `json:"ticket_link,omitempty"`
	BoxScore       []PlayEvent    `json:"box_score,omitempty"`
	ScoreBreakdown ScoreBreakdown `json:"score_breakdown,omitempty"`
	IsLive         bool           `json:"is_live"`
	LastUpdated    time.Time      `json:"last_updated"`
}

// PlayEvent is a single box-score entry. Events are append-only per game;
// two events with the same (Description, Time) pair are the same event.
type PlayEvent struct {
	Team        string `json:"team,omitempty"`
	Period      string `json:"period,omitempty"`
	Time        string `json:"time,omitempty"`
	Description string `json:"description,omitempty"`
	Scorer      string `json:"scorer,omitempty"`
	Assist      string `json:"assist,omitempty"`
	CorScore    *int   `json:"cor_score,omitempty"`
	OppScore    *int   `json:"opp_score,omitempty"`
}

// SameEvent reports whether two play events describe the same play.
func (p PlayEvent) SameEvent(other PlayEvent) bool {
	return p.Description == other.Description && p.Time == other.Time
}

// ScoreBreakdown holds the per-period score arrays for the two sides of a
// game. Index 0 is the side listed first after orientation normalization
// (the home side when known).
type ScoreBreakdown [][]string

// Valid reports whether the breakdown carries both sides.
func (sb ScoreBreakdown) Valid() bool {
	return len(sb) == 2 && len(sb[0]) > 0 && len(sb[1]) > 0
}

// Reversed returns the breakdown with the two sides swapped.
func (sb ScoreBreakdown) Reversed() ScoreBreakdown {
	if len(sb) != 2 {
		return sb
	}
	return ScoreBreakdown{sb[1], sb[0]}
}
