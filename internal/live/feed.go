package live

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Feed is the live-stats document served per sport code.
type Feed struct {
	Game FeedGame `json:"Game"`
}

// FeedGame is the in-progress game state the feed reports.
type FeedGame struct {
	HasStarted   bool       `json:"HasStarted"`
	IsComplete   bool       `json:"IsComplete"`
	HomeTeam     FeedTeam   `json:"HomeTeam"`
	VisitingTeam FeedTeam   `json:"VisitingTeam"`
	LastPlays    []FeedPlay `json:"LastPlays"`
	Date         string     `json:"Date"` // M/D/YYYY
}

// Active reports whether the game has started and is not yet complete.
func (g FeedGame) Active() bool {
	return g.HasStarted && !g.IsComplete
}

// FeedTeam is one side of a live game.
type FeedTeam struct {
	Name         string `json:"Name"`
	Score        int    `json:"Score"`
	PeriodScores []int  `json:"PeriodScores"`
}

// FeedPlay is one play-by-play entry.
type FeedPlay struct {
	Description  string `json:"Description"`
	Period       int    `json:"Period"`
	ClockSeconds int    `json:"ClockSeconds"`
	Team         string `json:"Team"`
}

// FeedClient fetches live game documents per sport code.
type FeedClient struct {
	baseURL string
	client  *http.Client
}

// NewFeedClient creates a live-feed client rooted at the stats host.
func NewFeedClient(baseURL string) *FeedClient {
	return &FeedClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchGame fetches the current game document for a sport code.
func (c *FeedClient) FetchGame(ctx context.Context, sportCode string) (*FeedGame, error) {
	url := fmt.Sprintf("%s/%s/game.json?detail=full", c.baseURL, sportCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch live feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("live feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read live feed body: %w", err)
	}

	var feed Feed
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to decode live feed: %w", err)
	}

	return &feed.Game, nil
}
