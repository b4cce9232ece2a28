package generation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/options"
	"github.com/knights-analytics/hugot/pipelines"
)

// Local ONNX candidates in order of preference, fastest first.
var localModelNames = []string{
	"microsoft/DialoGPT-medium",
	"gpt2",
	"distilgpt2",
}

type localGenerator struct {
	session  *hugot.Session
	pipeline *pipelines.TextGenerationPipeline
}

func (g *localGenerator) generate(ctx context.Context, prompt string, opts Options) (string, error) {
	applyOptions(g.pipeline, opts)

	output, err := g.pipeline.RunPipeline(ctx, []string{prompt})
	if err != nil {
		return "", err
	}
	if len(output.Responses) == 0 {
		return "", fmt.Errorf("pipeline returned no output")
	}
	return output.Responses[0], nil
}

// applyOptions pushes the per-invocation knobs onto the pipeline. The handle
// serves one job at a time, so mutating the pipeline between runs is safe.
// Decoding is single-sequence in this backend, so NumSequences needs no
// mapping.
func applyOptions(pipeline *pipelines.TextGenerationPipeline, opts Options) {
	if opts.MaxNewTokens > 0 {
		pipeline.MaxLength = opts.MaxNewTokens
	}
	if opts.Temperature > 0 {
		temperature := opts.Temperature
		pipeline.Temperature = &temperature
	}
	if opts.TopP > 0 {
		topP := opts.TopP
		pipeline.TopP = &topP
	}
}

func (g *localGenerator) close() {
	if g.session == nil {
		return
	}
	if err := g.session.Destroy(); err != nil {
		slog.Warn("[ModelManager] Failed to destroy session",
			slog.String("error", err.Error()))
	}
}

// LocalCandidates builds the hugot-backed candidates. Each load selects a
// device, fetches model weights if missing, builds a generation pipeline and
// runs a smoke test; any failure destroys the session so accelerator memory
// is released before the next candidate runs.
func LocalCandidates(modelDir string) []Candidate {
	candidates := make([]Candidate, 0, len(localModelNames))
	for _, name := range localModelNames {
		name := name
		candidates = append(candidates, Candidate{
			Name: name,
			Load: func(ctx context.Context) (*Handle, error) {
				return loadLocalModel(ctx, name, modelDir)
			},
		})
	}
	return candidates
}

func loadLocalModel(ctx context.Context, name, modelDir string) (*Handle, error) {
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create model directory: %w", err)
	}

	modelPath := filepath.Join(modelDir, strings.ReplaceAll(name, "/", "_"))
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		slog.Info("[ModelManager] Model not found locally, downloading...",
			slog.String("model", name))
		downloaded, err := hugot.DownloadModel(ctx, name, modelDir, hugot.NewDownloadOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to download %s: %w", name, err)
		}
		modelPath = downloaded
	}

	session, device, err := newSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize runtime session: %w", err)
	}

	config := hugot.TextGenerationConfig{
		ModelPath: modelPath,
		Name:      "personaGenerationPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			slog.Warn("[ModelManager] Failed to destroy session",
				slog.String("error", destroyErr.Error()))
		}
		return nil, fmt.Errorf("failed to build pipeline for %s: %w", name, err)
	}

	gen := &localGenerator{session: session, pipeline: pipeline}

	// Deterministic smoke test: a load that cannot produce tokens is
	// treated the same as a load failure.
	if err := smokeTest(ctx, gen); err != nil {
		gen.close()
		return nil, fmt.Errorf("smoke test failed for %s: %w", name, err)
	}

	return &Handle{Name: name, Device: device, gen: gen}, nil
}

// newSession prefers an accelerated session when CUDA is exposed, falling
// back to CPU when acceleration is unavailable or fails to initialize.
func newSession(ctx context.Context) (*hugot.Session, Device, error) {
	if os.Getenv("CUDA_VISIBLE_DEVICES") != "" {
		session, err := hugot.NewORTSession(ctx, options.WithCuda(map[string]string{
			"device_id": "0",
		}))
		if err == nil {
			slog.Info("[ModelManager] CUDA detected, using accelerated session")
			return session, DeviceCUDA, nil
		}
		slog.Warn("[ModelManager] CUDA session failed, falling back to CPU",
			slog.String("error", err.Error()))
	}

	session, err := hugot.NewORTSession(ctx)
	if err != nil {
		return nil, DeviceCPU, err
	}
	return session, DeviceCPU, nil
}

func smokeTest(ctx context.Context, gen generator) error {
	text, err := gen.generate(ctx, "Hello", Options{MaxNewTokens: 5, NumSequences: 1})
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("empty smoke test output")
	}
	return nil
}
