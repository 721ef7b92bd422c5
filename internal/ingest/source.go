package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cornellappdev/score/internal/models"
	"github.com/cornellappdev/score/internal/sports"
)

// ScrapedItem is one raw schedule row as extracted from an upstream page.
// Fields are partially specified: only the opponent name is guaranteed.
type ScrapedItem struct {
	OpponentName    string
	OpponentLogoURL string
	DateText        string
	TimeText        string
	LocationText    string
	ResultText      string
	TicketLink      string
	BoxScore        []models.PlayEvent
	ScoreBreakdown  models.ScoreBreakdown
}

// Schedule is everything a schedule page yields for one sport.
type Schedule struct {
	SeasonYears SeasonYears
	Items       []ScrapedItem
}

// Source supplies raw schedule items per sport. Implementations own the
// page layout; the ingestion pipeline only sees structured items.
type Source interface {
	FetchSchedule(ctx context.Context, sp sports.Sport) (*Schedule, error)
}

// PageParser extracts the title and schedule rows from a fetched document.
// Selector details for each sport's layout live behind this interface.
type PageParser interface {
	Parse(body []byte) (title string, items []ScrapedItem, err error)
}

// HTTPSource fetches schedule pages over HTTP and delegates row extraction
// to a PageParser.
type HTTPSource struct {
	baseURL string
	client  *http.Client
	parser  PageParser
}

// NewHTTPSource creates a schedule source rooted at the athletics site.
func NewHTTPSource(baseURL string, parser PageParser) *HTTPSource {
	return &HTTPSource{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		parser: parser,
	}
}

// FetchSchedule downloads and parses one sport's schedule page.
func (s *HTTPSource) FetchSchedule(ctx context.Context, sp sports.Sport) (*Schedule, error) {
	url := fmt.Sprintf("%s/sports/%s/schedule", s.baseURL, sp.Slug)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("schedule page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule page: %w", err)
	}

	title, items, err := s.parser.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schedule page: %w", err)
	}

	return &Schedule{
		SeasonYears: ParseSeasonYears(title),
		Items:       items,
	}, nil
}
