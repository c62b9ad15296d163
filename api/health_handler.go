package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type healthHandler struct {
	responder   Responder
	startupTime time.Time
	remote      playSource
	images      imageUploader
}

func newHealthHandler(startupTime time.Time, source playSource, images imageUploader) healthHandler {
	return healthHandler{
		responder:   NewResponder(log.With().Str("handlerName", "healthHandler").Logger()),
		startupTime: startupTime,
		remote:      source,
		images:      images,
	}
}

// @Router /healthz [get]
func (h healthHandler) healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, HealthResponse{
			Status:      "ok",
			StartedAt:   h.startupTime.UTC().Format(time.RFC3339),
			Uptime:      time.Since(h.startupTime).Truncate(time.Second).String(),
			RemoteReady: h.remote != nil && h.remote.Configured(),
			ImagesReady: h.images != nil && h.images.IsReady(),
		})
	}
}
