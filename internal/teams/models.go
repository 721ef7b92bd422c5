package teams

// CreateTeamRequest represents the data needed to create a new team.
type CreateTeamRequest struct {
	Name    string `json:"name" validate:"required"`
	Color   string `json:"color"`
	LogoURL string `json:"image,omitempty"`
	LogoB64 string `json:"b64_image,omitempty"`
}

// UpdateBrandingRequest carries the freshly scraped color and logo values
// that replace a team's stored branding on every re-scrape.
type UpdateBrandingRequest struct {
	Color   string `json:"color"`
	LogoURL string `json:"image,omitempty"`
	LogoB64 string `json:"b64_image,omitempty"`
}
