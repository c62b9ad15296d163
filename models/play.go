package models

const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// Play represents a single play session, either authored locally or submitted through the remote form
type Play struct {
	ID       string   `json:"id"`
	Date     string   `json:"date"`
	GameID   string   `json:"gameId"`
	Location string   `json:"location,omitempty"`
	Players  []Player `json:"players,omitempty"`
	Notes    string   `json:"notes,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Image    string   `json:"image,omitempty"`
	Body     string   `json:"body,omitempty"`
	Source   string   `json:"source,omitempty"`
}

// Player is owned by its Play and has no identity of its own
type Player struct {
	Name  string   `json:"name"`
	Score *float64 `json:"score,omitempty"`
	Win   *bool    `json:"win,omitempty"`
}

// PlayPage is one page of remote play sessions
type PlayPage struct {
	Page  int    `json:"page"`
	Size  int    `json:"size"`
	Total int    `json:"total"`
	Items []Play `json:"items"`
}
