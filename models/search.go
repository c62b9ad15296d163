package models

const (
	RowPost = "post"
	RowGame = "game"
	RowPlay = "play"
)

// SearchRow is one searchable entry. Which of Slug/ID/GameID is set depends on Type.
type SearchRow struct {
	Type     string   `json:"type"`
	Title    string   `json:"title,omitempty"`
	Slug     string   `json:"slug,omitempty"`
	ID       string   `json:"id,omitempty"`
	Date     string   `json:"date,omitempty"`
	GameID   string   `json:"gameId,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Category string   `json:"category,omitempty"`
}
