package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spacesedan/personaforge/config"
	"github.com/spacesedan/personaforge/internal/clients"
	"github.com/spacesedan/personaforge/internal/generation"
	"github.com/spacesedan/personaforge/internal/jobs"
	"github.com/spacesedan/personaforge/internal/logging"
	"github.com/spacesedan/personaforge/internal/persona"
	"github.com/spacesedan/personaforge/internal/scraper"
	"github.com/spacesedan/personaforge/internal/server"
	"github.com/spacesedan/personaforge/internal/storage"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	cfg, err := config.Parse()
	if err != nil {
		slog.Error("[Main] Failed to parse configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tracker := jobs.NewTracker()

	candidates := []generation.Candidate{}
	if cfg.OpenAIKey != "" {
		candidates = append(candidates, generation.RemoteCandidate("gpt-4o-mini"))
	}
	candidates = append(candidates, generation.LocalCandidates(cfg.ModelDir)...)
	manager := generation.NewManager(candidates)

	fetcher := scraper.NewScraper(clients.GetRedditClient(), cfg.MaxPosts, cfg.MaxComments)

	var store storage.Store
	var resolver server.ArtifactResolver
	if cfg.StorageBackend == "dynamodb" {
		store = storage.NewDynamoStore(cfg.DynamoTable)
	} else {
		fileStore, err := storage.NewFileStore(cfg.OutputDir)
		if err != nil {
			slog.Error("[Main] Failed to initialize file store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		store = fileStore
		resolver = fileStore
	}

	orchestrator := &persona.Orchestrator{
		Tracker: tracker,
		Fetcher: fetcher,
		Models:  manager,
		Store:   store,
		Options: generation.Options{
			MaxNewTokens: cfg.MaxNewTokens,
			Temperature:  cfg.Temperature,
			TopP:         cfg.TopP,
			NumSequences: 1,
		},
	}

	var cache server.ArtifactLookup
	if cfg.ValkeyAddr != "" {
		valkeyClient := clients.InitValkey()
		defer clients.CloseValkey()
		orchestrator.Cache = valkeyClient
		cache = valkeyClient
	}
	if cfg.KafkaBroker != "" {
		if err := clients.InitKafkaProducer(); err != nil {
			slog.Error("[Main] Failed to initialize Kafka producer", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer clients.CloseKafkaProducer()
		orchestrator.Publish = clients.PublishPersonaEvent
		orchestrator.KafkaTopic = cfg.KafkaTopic
	}

	srv := &server.Server{
		Tracker:      tracker,
		Orchestrator: orchestrator,
		Artifacts:    resolver,
		Cache:        cache,
	}

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Routes(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("[Main] Listening", slog.String("addr", cfg.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("[Main] Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("[Main] Graceful shutdown failed", slog.String("error", err.Error()))
	}

	manager.Invalidate()
}
