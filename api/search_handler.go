package api

import (
	"net/http"

	"github.com/rpupo63/boardgame-journal/content"
	"github.com/rpupo63/boardgame-journal/services"
	"github.com/rs/zerolog/log"
)

type searchHandler struct {
	responder Responder
	content   *content.Repository
}

func newSearchHandler(repo *content.Repository) searchHandler {
	logger := log.With().Str("handlerName", "searchHandler").Logger()

	return searchHandler{
		responder: NewResponder(logger),
		content:   repo,
	}
}

// search matches q against posts, games and local plays
// @Router /search [get]
func (h searchHandler) search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		rows := services.SearchRows(h.content.Posts(), h.content.Games(), h.content.Plays())
		results := services.Search(rows, query)

		h.responder.WriteJSON(w, SearchResults{Query: query, Results: results, Total: len(results)})
	}
}
