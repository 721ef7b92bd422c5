package gateway

import (
	"time"

	"github.com/google/uuid"

	"github.com/cornellappdev/score/internal/models"
)

// GameEvent represents the base structure for all game events sent to clients
type GameEvent struct {
	Type      EventType         `json:"type"`
	GameID    string            `json:"gameId"`
	Timestamp time.Time         `json:"timestamp"`
	Data      GameUpdatePayload `json:"data"`
}

// EventType represents the type of game event
type EventType string

const (
	EventTypeGameUpdate EventType = "game_update"
)

// GameUpdatePayload carries the live-mutable slice of a game's state
type GameUpdatePayload struct {
	IsLive         bool                  `json:"isLive"`
	LastUpdated    time.Time             `json:"lastUpdated"`
	BoxScore       []models.PlayEvent    `json:"boxScore"`
	ScoreBreakdown models.ScoreBreakdown `json:"scoreBreakdown"`
	Result         *string               `json:"result"`
}

// NewGameUpdateEvent builds a game_update event from a stored game
func NewGameUpdateEvent(gameID uuid.UUID, game *models.Game) *GameEvent {
	return &GameEvent{
		Type:      EventTypeGameUpdate,
		GameID:    gameID.String(),
		Timestamp: time.Now(),
		Data: GameUpdatePayload{
			IsLive:         game.IsLive,
			LastUpdated:    game.LastUpdated,
			BoxScore:       game.BoxScore,
			ScoreBreakdown: game.ScoreBreakdown,
			Result:         game.Result,
		},
	}
}

// ClientMessage is a command received from a connected client
type ClientMessage struct {
	Type   string `json:"type"`
	GameID string `json:"gameId"`
}

const (
	ClientSubscribeGame   = "subscribe_game"
	ClientUnsubscribeGame = "unsubscribe_game"
)
