package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/cornellappdev/score/internal/models"
)

type scheduleDocument struct {
	Title string        `json:"title"`
	Games []scheduleRow `json:"games"`
}

type scheduleRow struct {
	Opponent struct {
		Name  string `json:"name"`
		Image string `json:"image"`
	} `json:"opponent"`
	Date           string                `json:"date"`
	Time           string                `json:"time"`
	Location       string                `json:"location"`
	Result         string                `json:"result"`
	TicketLink     string                `json:"ticket_link"`
	BoxScore       []models.PlayEvent    `json:"box_score"`
	ScoreBreakdown models.ScoreBreakdown `json:"score_breakdown"`
}

// JSONScheduleParser reads the schedule site's JSON export. Rows missing an
// opponent name are skipped.
type JSONScheduleParser struct{}

// NewJSONScheduleParser creates a parser for the JSON schedule export.
func NewJSONScheduleParser() *JSONScheduleParser {
	return &JSONScheduleParser{}
}

// Parse decodes a schedule document into raw items.
func (p *JSONScheduleParser) Parse(body []byte) (string, []ScrapedItem, error) {
	var doc scheduleDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", nil, fmt.Errorf("failed to decode schedule document: %w", err)
	}

	items := make([]ScrapedItem, 0, len(doc.Games))
	for _, row := range doc.Games {
		if row.Opponent.Name == "" {
			continue
		}
		items = append(items, ScrapedItem{
			OpponentName:    row.Opponent.Name,
			OpponentLogoURL: row.Opponent.Image,
			DateText:        row.Date,
			TimeText:        row.Time,
			LocationText:    row.Location,
			ResultText:      row.Result,
			TicketLink:      row.TicketLink,
			BoxScore:        row.BoxScore,
			ScoreBreakdown:  row.ScoreBreakdown,
		})
	}

	return doc.Title, items, nil
}
