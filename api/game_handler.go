package api

import (
	"net/http"

	"github.com/rpupo63/boardgame-journal/content"
	"github.com/rpupo63/boardgame-journal/errs"
	"github.com/rpupo63/boardgame-journal/models"
	"github.com/rpupo63/boardgame-journal/remote"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type gameHandler struct {
	responder Responder
	logger    zerolog.Logger
	content   *content.Repository
	plays     playLog
}

func newGameHandler(repo *content.Repository, source playSource) gameHandler {
	logger := log.With().Str("handlerName", "gameHandler").Logger()

	return gameHandler{
		responder: NewResponder(logger),
		logger:    logger,
		content:   repo,
		plays:     playLog{content: repo, remote: source, logger: logger},
	}
}

// listGames returns every game in read order
// @Router /games [get]
func (h gameHandler) listGames() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games := h.content.Games()
		if games == nil {
			games = []models.Game{}
		}
		h.responder.WriteJSON(w, GameCollection{Games: games, Total: len(games)})
	}
}

// getGame returns one game with its local and remote plays
// @Router /games/{gameID} [get]
func (h gameHandler) getGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := pathParam(r, "gameID")
		if gameID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing gameID"))
			return
		}

		game, ok := h.content.GameByID(gameID)
		if !ok {
			h.responder.WriteError(w, errs.NewNotFound("game"))
			return
		}

		plays, _ := h.plays.merged(r.Context(), h.content.PlaysByGame(gameID), remote.DefaultPage, remotePlaysPageSize,
			func(p models.Play) bool { return p.GameID == gameID })

		h.responder.WriteJSON(w, GameWithPlays{Game: game, Plays: plays})
	}
}
