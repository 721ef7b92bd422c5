package models

import (
	"github.com/google/uuid"
)

// Team represents an opponent program. Identity is the name: a team is
// created once per distinct opponent name and its ID is never reassigned,
// but color and logo are refreshed on every re-scrape.
type Team struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Color   string    `json:"color"`
	LogoURL string    `json:"image,omitempty"`
	LogoB64 string    `json:"b64_image,omitempty"`
}
