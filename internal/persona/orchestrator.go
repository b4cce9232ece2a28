package persona

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/personaforge/internal/analysis"
	"github.com/spacesedan/personaforge/internal/generation"
	"github.com/spacesedan/personaforge/internal/jobs"
	"github.com/spacesedan/personaforge/internal/models"
	"github.com/spacesedan/personaforge/internal/scraper"
	"github.com/spacesedan/personaforge/internal/storage"
)

// ErrNoDataFound aborts a job whose identity has neither posts nor
// comments.
var ErrNoDataFound = errors.New("no data found for user")

// Fetcher is the data collaborator.
type Fetcher interface {
	ScrapeUser(ctx context.Context, username string, progress scraper.ProgressFunc) ([]models.RedditPost, []models.RedditComment, error)
}

// ModelProvider is the generation collaborator; *generation.Manager is the
// production implementation.
type ModelProvider interface {
	Acquire(ctx context.Context) (*generation.Handle, error)
	Invoke(ctx context.Context, handle *generation.Handle, prompt string, opts generation.Options) (string, error)
	Invalidate()
}

// ArtifactCache optionally remembers the newest artifact per identity.
type ArtifactCache interface {
	RecordArtifact(ctx context.Context, username, artifactRef string) error
}

// EventPublisher optionally announces completed generations.
type EventPublisher func(topic string, event models.PersonaEvent) error

// Orchestrator drives the full per-job pipeline, reporting every step to
// the job tracker.
type Orchestrator struct {
	Tracker *jobs.Tracker
	Fetcher Fetcher
	Models  ModelProvider
	Store   storage.Store
	Options generation.Options

	// Optional collaborators; nil disables them.
	Cache      ArtifactCache
	Publish    EventPublisher
	KafkaTopic string

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

// Run executes one generation job. The caller must already hold the
// single-flight lock via Tracker.Begin; Run releases it on every exit path.
func (o *Orchestrator) Run(ctx context.Context, username string) (artifactRef string, err error) {
	defer o.Tracker.Release()
	defer func() {
		if err != nil {
			o.Tracker.Fail(err)
		}
	}()

	slog.Info("[Orchestrator] Persona generation started", slog.String("username", username))

	o.Tracker.Update(jobs.StageInitializing, 0, "Setting up generation environment...")

	// Model acquisition is lazy and cached process-wide. Failure here is
	// not fatal: the rule-based engine covers generation.
	handle, acquireErr := o.Models.Acquire(ctx)
	if acquireErr != nil {
		slog.Warn("[Orchestrator] No generation model available, will use rule-based fallback",
			slog.String("error", acquireErr.Error()))
	}
	o.Tracker.Update(jobs.StageInitializing, 100, "Initialization complete")

	posts, comments, err := o.Fetcher.ScrapeUser(ctx, username, o.Tracker.Update)
	if err != nil {
		return "", err
	}
	if len(posts) == 0 && len(comments) == 0 {
		return "", fmt.Errorf("%w '%s'", ErrNoDataFound, username)
	}

	o.Tracker.Update(jobs.StagePreparingData, 0, "Processing collected data...")
	o.Tracker.Update(jobs.StagePreparingData, 50,
		fmt.Sprintf("Found %d posts and %d comments", len(posts), len(comments)))
	o.Tracker.Update(jobs.StagePreparingData, 100, "Data preparation complete")

	// Sentiment always runs; it is the sentiment authority regardless of
	// which path produces the persona body.
	o.Tracker.Update(jobs.StageAnalyzingSentiment, 0, "Starting sentiment analysis...")
	profile := analysis.AnalyzeSentiment(comments)
	o.Tracker.Update(jobs.StageAnalyzingSentiment, 100, "Sentiment analysis complete")

	o.Tracker.Update(jobs.StageGeneratingPersona, 0, "Creating persona prompt...")
	prompt := BuildPrompt(username, posts, comments)

	personaText, modelName, usedFallback := o.generatePersona(ctx, handle, prompt)
	if usedFallback {
		o.Tracker.Update(jobs.StageGeneratingPersona, 60, "Using fallback generation method...")
		personaText = FallbackPersona(username, posts, comments, profile)
	}
	o.Tracker.Update(jobs.StageGeneratingPersona, 100, "Persona generation complete!")

	o.Tracker.Update(jobs.StageSavingResults, 0, "Saving persona to file...")
	snapshot := o.Tracker.Snapshot()
	record := models.PersonaRecord{
		GenerationID: snapshot.GenerationID,
		Username:     username,
		GeneratedAt:  o.now(),
		Persona:      personaText,
		Posts:        posts,
		Comments:     comments,
		Sentiment:    profile,
		UsedFallback: usedFallback,
		ModelName:    modelName,
	}
	artifactRef, err = o.Store.SavePersona(ctx, record)
	if err != nil {
		return "", err
	}
	o.Tracker.Update(jobs.StageSavingResults, 100, "Results saved successfully")

	o.recordArtifact(ctx, username, artifactRef)
	o.publishEvent(record, artifactRef)

	o.Tracker.Update(jobs.StageFinalizing, 0, "Finalizing generation...")
	o.Tracker.Update(jobs.StageFinalizing, 100, "Generation complete!")
	o.Tracker.Complete(artifactRef)

	slog.Info("[Orchestrator] Persona generation finished",
		slog.String("username", username),
		slog.String("artifact", artifactRef),
		slog.Bool("used_fallback", usedFallback))

	return artifactRef, nil
}

// generatePersona attempts the model path. Every failure mode here -
// missing handle, timeout, generation error, unusable output - degrades to
// the fallback; nothing is fatal.
func (o *Orchestrator) generatePersona(ctx context.Context, handle *generation.Handle, prompt string) (string, string, bool) {
	if handle == nil {
		return "", "", true
	}

	o.Tracker.Update(jobs.StageGeneratingPersona, 20, "AI generating personality profile...")

	raw, err := o.Models.Invoke(ctx, handle, prompt, o.Options)
	if err != nil {
		if errors.Is(err, generation.ErrGenerationTimeout) {
			slog.Warn("[Orchestrator] Generation timed out, falling back to rule-based generation")
		} else {
			slog.Warn("[Orchestrator] AI generation failed, falling back to rule-based generation",
				slog.String("error", err.Error()))
		}
		return "", "", true
	}

	text, ok := AcceptGenerated(raw)
	if !ok {
		slog.Warn("[Orchestrator] Generated persona rejected as unusable, falling back",
			slog.Int("raw_length", len(raw)))
		return "", "", true
	}

	o.Tracker.Update(jobs.StageGeneratingPersona, 80, "AI generation complete, processing results...")
	return text, handle.Name, false
}

func (o *Orchestrator) recordArtifact(ctx context.Context, username, artifactRef string) {
	if o.Cache == nil {
		return
	}
	if err := o.Cache.RecordArtifact(ctx, username, artifactRef); err != nil {
		slog.Warn("[Orchestrator] Failed to cache artifact reference",
			slog.String("error", err.Error()))
	}
}

func (o *Orchestrator) publishEvent(record models.PersonaRecord, artifactRef string) {
	if o.Publish == nil {
		return
	}
	event := models.PersonaEvent{
		GenerationID: record.GenerationID,
		Username:     record.Username,
		ArtifactRef:  artifactRef,
		UsedFallback: record.UsedFallback,
		CompletedAt:  record.GeneratedAt,
	}
	if err := o.Publish(o.KafkaTopic, event); err != nil {
		slog.Warn("[Orchestrator] Failed to publish persona event",
			slog.String("error", err.Error()))
	}
}

// InvalidateModel discards the cached model handle so the next job
// reinitializes from the top of the candidate list. Called on manual reset,
// which also releases any accelerator memory the handle held.
func (o *Orchestrator) InvalidateModel() {
	o.Models.Invalidate()
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}
