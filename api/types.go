package api

import (
	"context"

	"github.com/rpupo63/boardgame-journal/models"
	"github.com/rpupo63/boardgame-journal/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	gameHandler     gameHandler
	playHandler     playHandler
	postHandler     postHandler
	taxonomyHandler taxonomyHandler
	searchHandler   searchHandler
	uploadHandler   uploadHandler
	healthHandler   healthHandler
}

// playSource is the remote play log.
type playSource interface {
	Configured() bool
	FetchPlays(ctx context.Context, page, size int) (*models.PlayPage, error)
	FindPlay(ctx context.Context, id string) (models.Play, bool, error)
}

type imageUploader interface {
	IsReady() bool
	Upload(ctx context.Context, data []byte, opts services.ImageUploadOptions) (*models.UploadedImage, error)
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"collection"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

type GameCollection struct {
	Games []models.Game `json:"games"`
	Total int           `json:"total"`
}

// GameWithPlays is a game together with every known session of it
type GameWithPlays struct {
	Game  models.Game   `json:"game"`
	Plays []models.Play `json:"plays"`
}

type PlayCollection struct {
	Plays []models.Play `json:"plays"`
	Total int           `json:"total"`
	// RemoteError is set when the remote log could not be read and only local plays are listed
	RemoteError string `json:"remoteError,omitempty"`
}

type PostCollection struct {
	Posts []models.Post `json:"posts"`
	Total int           `json:"total"`
}

type NameCollection struct {
	Names []string `json:"names"`
	Total int      `json:"total"`
}

type SearchResults struct {
	Query   string             `json:"query"`
	Results []models.SearchRow `json:"results"`
	Total   int                `json:"total"`
}

type UploadMarkdownResponse struct {
	OK bool `json:"ok"`
	models.StoredDocument
}

type UploadImageResponse struct {
	OK bool `json:"ok"`
	models.UploadedImage
}

type HealthResponse struct {
	Status      string `json:"status"`
	StartedAt   string `json:"startedAt"`
	Uptime      string `json:"uptime"`
	RemoteReady bool   `json:"remoteReady"`
	ImagesReady bool   `json:"imagesReady"`
}
