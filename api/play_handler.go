package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rpupo63/boardgame-journal/content"
	"github.com/rpupo63/boardgame-journal/errs"
	"github.com/rpupo63/boardgame-journal/models"
	"github.com/rpupo63/boardgame-journal/remote"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// remotePlaysPageSize is the page of the remote log merged into listings
	remotePlaysPageSize = 200
	maxSubmitBodySize   = 64 * 1024
)

// playLog combines the local play files with the remote log.
type playLog struct {
	content *content.Repository
	remote  playSource
	logger  zerolog.Logger
}

// merged returns local and remote plays merged by id. A remote failure is logged
// and returned next to the local-only result instead of failing the listing.
func (l playLog) merged(ctx context.Context, local []models.Play, page, size int, keep func(models.Play) bool) ([]models.Play, error) {
	if l.remote == nil || !l.remote.Configured() {
		return content.MergePlays(local, nil), nil
	}

	remotePage, err := l.remote.FetchPlays(ctx, page, size)
	if err != nil {
		l.logger.Warn().Err(err).Msg("Failed to fetch remote plays, listing local plays only")
		return content.MergePlays(local, nil), err
	}

	var remotePlays []models.Play
	for _, play := range remotePage.Items {
		if keep == nil || keep(play) {
			remotePlays = append(remotePlays, play)
		}
	}
	return content.MergePlays(local, remotePlays), nil
}

type playHandler struct {
	responder Responder
	logger    zerolog.Logger
	plays     playLog
	submitter playSubmitter
}

type playSubmitter interface {
	SubmitPlay(ctx context.Context, payload map[string]any) (*remote.SubmitResult, error)
}

func newPlayHandler(repo *content.Repository, source playSource, submitter playSubmitter) playHandler {
	logger := log.With().Str("handlerName", "playHandler").Logger()

	return playHandler{
		responder: NewResponder(logger),
		logger:    logger,
		plays:     playLog{content: repo, remote: source, logger: logger},
		submitter: submitter,
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(key)))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// listPlays returns local and remote plays merged by id, newest first
// @Router /plays [get]
func (h playHandler) listPlays() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryInt(r, "page", remote.DefaultPage)
		size := queryInt(r, "size", remotePlaysPageSize)

		plays, remoteErr := h.plays.merged(r.Context(), h.plays.content.Plays(), page, size, nil)

		response := PlayCollection{Plays: plays, Total: len(plays)}
		if remoteErr != nil {
			response.RemoteError = remoteErr.Error()
		}
		h.responder.WriteJSON(w, response)
	}
}

// getPlay looks the play up locally first and then in the remote log. An
// unreachable remote log is treated as a miss.
// @Router /plays/{playID} [get]
func (h playHandler) getPlay() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playID := pathParam(r, "playID")
		if playID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing playID"))
			return
		}

		if play, ok := h.plays.content.PlayByID(playID); ok {
			h.responder.WriteJSON(w, play)
			return
		}

		if h.plays.remote == nil || !h.plays.remote.Configured() {
			h.responder.WriteError(w, errs.NewNotFound("play"))
			return
		}

		play, found, err := h.plays.remote.FindPlay(r.Context(), playID)
		switch {
		case errs.IsRemoteFetchError(err):
			h.logger.Warn().Err(err).Str("playID", playID).Msg("Failed to look up remote play")
		case err != nil:
			h.logger.Error().Err(err).Str("playID", playID).Msg("Remote play lookup misconfigured")
		}
		if err != nil || !found {
			h.responder.WriteError(w, errs.NewNotFound("play"))
			return
		}
		h.responder.WriteJSON(w, play)
	}
}

// submitPlay forwards a JSON play record to the remote log and relays its answer
// @Router /api/submit-play [post]
func (h playHandler) submitPlay() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.submitter == nil {
			h.responder.WriteError(w, errs.NewConfigMissingError("GAS_ENDPOINT"))
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSubmitBodySize))
		if err != nil {
			h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxSubmitBodySize))
			return
		}

		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		result, err := h.submitter.SubmitPlay(r.Context(), payload)
		if err != nil {
			if errs.IsRemoteSubmitError(err) {
				h.logger.Warn().Err(err).Msg("Remote play submission failed")
			}
			h.responder.WriteError(w, err)
			return
		}

		status := http.StatusOK
		if !result.OK {
			status = http.StatusBadGateway
		}
		h.responder.WriteJSONStatus(w, status, result.Body)
	}
}
