package api

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/boardgame-journal/remote"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, startupTime time.Time) *routeHandlers {
	var source playSource
	var submitter playSubmitter
	if deps.Remote != nil {
		source, submitter = deps.Remote, deps.Remote
	}
	var images imageUploader
	if deps.Images != nil {
		images = deps.Images
	}

	return &routeHandlers{
		gameHandler:     newGameHandler(deps.Content, source),
		playHandler:     newPlayHandler(deps.Content, source, submitter),
		postHandler:     newPostHandler(deps.Content),
		taxonomyHandler: newTaxonomyHandler(deps.Content),
		searchHandler:   newSearchHandler(deps.Content),
		uploadHandler:   newUploadHandler(deps.Content, images),
		healthHandler:   newHealthHandler(startupTime, source, images),
	}
}

// pathParam returns the decoded, trimmed URL parameter
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return strings.TrimSpace(raw)
}

var _ playSource = (*remote.Client)(nil)
