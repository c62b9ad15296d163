package models

// Game represents a board game entry authored as a markdown file
type Game struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Designer   string   `json:"designer,omitempty"`
	Publisher  string   `json:"publisher,omitempty"`
	MinPlayers *int     `json:"minPlayers,omitempty"`
	MaxPlayers *int     `json:"maxPlayers,omitempty"`
	PlayTime   *int     `json:"playTime,omitempty"` // minutes
	Weight     *float64 `json:"weight,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	BGGID      *int     `json:"bggId,omitempty"`
	Image      string   `json:"image,omitempty"`
	Body       string   `json:"body,omitempty"`
}
