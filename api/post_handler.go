package api

import (
	"net/http"

	"github.com/rpupo63/boardgame-journal/content"
	"github.com/rpupo63/boardgame-journal/errs"
	"github.com/rpupo63/boardgame-journal/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	content   *content.Repository
}

func newPostHandler(repo *content.Repository) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder: NewResponder(logger),
		logger:    logger,
		content:   repo,
	}
}

func postCollection(posts []models.Post) PostCollection {
	if posts == nil {
		posts = []models.Post{}
	}
	return PostCollection{Posts: posts, Total: len(posts)}
}

// listPosts returns every article, newest first
// @Router /posts [get]
func (h postHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, postCollection(h.content.Posts()))
	}
}

// @Router /posts/{slug} [get]
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := pathParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		post, ok := h.content.PostBySlug(slug)
		if !ok {
			h.responder.WriteError(w, errs.NewNotFound("post"))
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

type taxonomyHandler struct {
	responder Responder
	content   *content.Repository
}

func newTaxonomyHandler(repo *content.Repository) taxonomyHandler {
	logger := log.With().Str("handlerName", "taxonomyHandler").Logger()

	return taxonomyHandler{
		responder: NewResponder(logger),
		content:   repo,
	}
}

func nameCollection(names []string) NameCollection {
	if names == nil {
		names = []string{}
	}
	return NameCollection{Names: names, Total: len(names)}
}

// @Router /categories [get]
func (h taxonomyHandler) listCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, nameCollection(h.content.Categories()))
	}
}

// postsInCategory lists the articles filed under one category
// @Router /categories/{name} [get]
func (h taxonomyHandler) postsInCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, postCollection(h.content.PostsByCategory(pathParam(r, "name"))))
	}
}

// @Router /tags [get]
func (h taxonomyHandler) listTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, nameCollection(h.content.Tags()))
	}
}

// @Router /tags/{name} [get]
func (h taxonomyHandler) postsWithTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, postCollection(h.content.PostsByTag(pathParam(r, "name"))))
	}
}
