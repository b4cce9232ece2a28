package generation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// generator is one working generation capability behind a handle.
type generator interface {
	generate(ctx context.Context, prompt string, opts Options) (string, error)
	close()
}

// Handle is a fully validated generation capability. It is process-wide
// state: lazily created once, reused across jobs, and never mutated
// concurrently because the job tracker admits one running job at a time.
type Handle struct {
	Name   string
	Device Device
	gen    generator
}

// Candidate is one entry in the preference-ordered fallback list.
type Candidate struct {
	Name string
	Load func(ctx context.Context) (*Handle, error)
}

// Manager resolves one usable model from the ordered candidate list and
// exposes deadline-guarded invocation against it.
type Manager struct {
	mu         sync.Mutex
	handle     *Handle
	candidates []Candidate
}

func NewManager(candidates []Candidate) *Manager {
	return &Manager{candidates: candidates}
}

// Acquire returns the cached handle, or walks the candidate list until one
// loads and passes its smoke test. A candidate failure releases whatever the
// candidate allocated and moves on; only full exhaustion is an error.
func (m *Manager) Acquire(ctx context.Context) (*Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handle != nil {
		return m.handle, nil
	}

	for _, candidate := range m.candidates {
		slog.Info("[ModelManager] Trying candidate", slog.String("model", candidate.Name))

		handle, err := candidate.Load(ctx)
		if err != nil {
			slog.Warn("[ModelManager] Failed to load candidate, trying next",
				slog.String("model", candidate.Name),
				slog.String("error", err.Error()))
			continue
		}

		slog.Info("[ModelManager] Model loaded successfully",
			slog.String("model", handle.Name),
			slog.String("device", string(handle.Device)))
		m.handle = handle
		return handle, nil
	}

	return nil, ErrNoModelAvailable
}

// Invalidate discards the cached handle and releases its resources, forcing
// the next Acquire to reinitialize from the top of the candidate list.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handle != nil {
		m.handle.gen.close()
		m.handle = nil
		slog.Info("[ModelManager] Cached model handle invalidated")
	}
}

// Invoke runs one generation under a wall-clock deadline. On CPU the token
// budget is capped and decoding forced to a single sequence. A deadline
// overrun returns ErrGenerationTimeout; the goroutine running the backend
// call is left to finish on its own since the backends are not interruptible
// mid-decode.
func (m *Manager) Invoke(ctx context.Context, handle *Handle, prompt string, opts Options) (string, error) {
	if handle.Device == DeviceCPU {
		if opts.MaxNewTokens > cpuTokenBudget {
			opts.MaxNewTokens = cpuTokenBudget
		}
		opts.NumSequences = 1
	}

	ctx, cancel := context.WithTimeout(ctx, invokeTimeout(handle.Device))
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		text, err := handle.gen.generate(ctx, prompt, opts)
		done <- result{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w after %s on %s", ErrGenerationTimeout, invokeTimeout(handle.Device), handle.Device)
		}
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", fmt.Errorf("[ModelManager] generation failed: %w", r.err)
		}
		return r.text, nil
	}
}
