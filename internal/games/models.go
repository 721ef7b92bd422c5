package games

import (
	"time"

	"github.com/google/uuid"

	"github.com/cornellappdev/score/internal/models"
)

// Candidate is a normalized, not-yet-persisted game record produced by
// schedule ingestion. Reconcile decides whether it updates an existing
// stored game or becomes a new one.
type Candidate struct {
	Sport          string
	Gender         string
	City           string
	State          string
	Location       string
	Date           string
	UTCDate        *time.Time
	Time           string
	OpponentID     uuid.UUID
	OpponentName   string
	Result         *string
	TicketLink     *string
	BoxScore       []models.PlayEvent
	ScoreBreakdown models.ScoreBreakdown
}

// UpdateGameRequest carries the merged field set written back to a matched
// stored game in a single statement.
type UpdateGameRequest struct {
	City           string
	State          string
	Location       string
	Date           string
	UTCDate        *time.Time
	Time           string
	OpponentID     uuid.UUID
	Result         *string
	TicketLink     *string
	BoxScore       []models.PlayEvent
	ScoreBreakdown models.ScoreBreakdown
	LastUpdated    time.Time
}
