package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/spacesedan/personaforge/config"
	"github.com/spacesedan/personaforge/internal/clients"
	"github.com/spacesedan/personaforge/internal/generation"
	"github.com/spacesedan/personaforge/internal/jobs"
	"github.com/spacesedan/personaforge/internal/logging"
	"github.com/spacesedan/personaforge/internal/persona"
	"github.com/spacesedan/personaforge/internal/scraper"
	"github.com/spacesedan/personaforge/internal/storage"
)

// One-shot persona generation for a single username, no web front end.
func main() {
	flag.Parse()
	username := flag.Arg(0)
	if username == "" {
		fmt.Fprintln(os.Stderr, "usage: generate <reddit-username>")
		os.Exit(2)
	}

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

	candidates := []generation.Candidate{}
	if cfg.OpenAIKey != "" {
		candidates = append(candidates, generation.RemoteCandidate("gpt-4o-mini"))
	}
	candidates = append(candidates, generation.LocalCandidates(cfg.ModelDir)...)
	manager := generation.NewManager(candidates)
	defer manager.Invalidate()

	fileStore, err := storage.NewFileStore(cfg.OutputDir)
	if err != nil {
		slog.Error("[Main] Failed to initialize file store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tracker := jobs.NewTracker()
	orchestrator := &persona.Orchestrator{
		Tracker: tracker,
		Fetcher: scraper.NewScraper(clients.GetRedditClient(), cfg.MaxPosts, cfg.MaxComments),
		Models:  manager,
		Store:   fileStore,
		Options: generation.Options{
			MaxNewTokens: cfg.MaxNewTokens,
			Temperature:  cfg.Temperature,
			TopP:         cfg.TopP,
			NumSequences: 1,
		},
	}

	if _, err := tracker.Begin(username); err != nil {
		slog.Error("[Main] Could not start job", slog.String("error", err.Error()))
		os.Exit(1)
	}

	artifactRef, err := orchestrator.Run(context.Background(), username)
	if err != nil {
		slog.Error("[Main] Generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Println(artifactRef)
}
