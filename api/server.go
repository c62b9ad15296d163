package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/boardgame-journal/config"
	"github.com/rpupo63/boardgame-journal/content"
	"github.com/rpupo63/boardgame-journal/remote"
	"github.com/rpupo63/boardgame-journal/services"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

// Dependencies are the stores and integrations the handlers serve from.
// Remote and Images may be nil.
type Dependencies struct {
	Content *content.Repository
	Remote  *remote.Client
	Images  *services.ImageHost
}

func NewServer(c map[string]string, deps Dependencies) (Server, error) {
	if deps.Content == nil {
		return Server{}, fmt.Errorf("content repository is required")
	}

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router := newRouter(deps, withConfig(c), withStartupTime(startupTime))

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 60)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 60)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 120)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func acceptedOrigins(c map[string]string) []string {
	var origins []string
	for _, origin := range strings.Split(config.GetString(c, "ACCEPTED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func newRouter(deps Dependencies, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	origins := acceptedOrigins(router.config)
	chiRouter.Use(CORSCheckMiddleware(origins))
	chiRouter.Use(corsMiddleware(origins))

	handlers := initializeHandlers(deps, router.startupTime)

	uploadToken := config.GetString(router.config, "CONTENT_UPLOAD_TOKEN", "")
	jwtSecret := config.GetString(router.config, "ADMIN_JWT_SECRET", "")
	markdownAuth := newUploadAuth(uploadToken, jwtSecret, maxMarkdownBodySize)
	imageAuth := newUploadAuth(uploadToken, jwtSecret, maxImageBodySize)
	if markdownAuth.open() {
		log.Warn().Msg("Neither CONTENT_UPLOAD_TOKEN nor ADMIN_JWT_SECRET is set, upload routes are open")
	}

	setupRoutes(chiRouter, handlers, markdownAuth, imageAuth)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
