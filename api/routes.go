package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes registers the read-only content routes and the guarded upload routes
func setupRoutes(r chi.Router, handlers *routeHandlers, markdownAuth, imageAuth uploadAuth) {
	r.Get("/healthz", handlers.healthHandler.healthz())

	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/games", handlers.gameHandler.listGames())
		r.Get("/games/{gameID}", handlers.gameHandler.getGame())

		r.Get("/plays", handlers.playHandler.listPlays())
		r.Get("/plays/{playID}", handlers.playHandler.getPlay())

		r.Get("/posts", handlers.postHandler.listPosts())
		r.Get("/posts/{slug}", handlers.postHandler.getPost())

		r.Get("/categories", handlers.taxonomyHandler.listCategories())
		r.Get("/categories/{name}", handlers.taxonomyHandler.postsInCategory())
		r.Get("/tags", handlers.taxonomyHandler.listTags())
		r.Get("/tags/{name}", handlers.taxonomyHandler.postsWithTag())

		r.Get("/search", handlers.searchHandler.search())

		r.Route("/api", func(r chi.Router) {
			r.Post("/submit-play", handlers.playHandler.submitPlay())
			r.With(markdownAuth.authenticate).Post("/upload-markdown", handlers.uploadHandler.uploadMarkdown())
			r.With(imageAuth.authenticate).Post("/upload-image", handlers.uploadHandler.uploadImage())
		})
	})
}
