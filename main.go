package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/boardgame-journal/api"
	"github.com/rpupo63/boardgame-journal/config"
	"github.com/rpupo63/boardgame-journal/content"
	"github.com/rpupo63/boardgame-journal/remote"
	"github.com/rpupo63/boardgame-journal/services"
)

// secretKeys may hold ssm:<parameter> references resolved at start-up
var secretKeys = []string{"SECRET_TOKEN", "CONTENT_UPLOAD_TOKEN", "ADMIN_JWT_SECRET"}

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg := config.New()
	setupLogger(config.GetString(cfg, "LOG_LEVEL", "info"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err := config.ResolveSecrets(ctx, cfg, secretKeys...)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Error resolving secrets")
	}

	workDir, err := os.Getwd()
	if err != nil {
		log.Fatal().Err(err).Msg("Error reading working directory")
	}

	roots := content.RootsFromConfig(cfg, workDir)
	log.Info().Strs("roots", roots.Read()).Str("writeRoot", roots.Write()).Msg("Content roots")

	repo := content.NewRepository(roots, log.With().Str("component", "content").Logger())

	remoteClient := remote.NewClient(remote.ConfigFromMap(cfg), nil)
	if !remoteClient.Configured() {
		log.Warn().Msg("GAS_ENDPOINT not set, listing local plays only")
	}

	imageHost := services.NewImageHost(services.ImageHostConfigFromMap(cfg))
	if !imageHost.IsReady() {
		log.Warn().Msg("IMAGE_BUCKET or AWS_REGION not set, image uploads are disabled")
	}

	server, err := api.NewServer(cfg, api.Dependencies{
		Content: repo,
		Remote:  remoteClient,
		Images:  imageHost,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	errChannel := make(chan error, 2)

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

func setupLogger(level string) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	zerolog.TimeFieldFormat = time.RFC3339
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
