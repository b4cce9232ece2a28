package jobs

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// ErrAlreadyRunning is returned by Begin while another job holds the lock
// and its recorded status is non-terminal.
var ErrAlreadyRunning = errors.New("generation already in progress")

type Stage string

const (
	StageIdle               Stage = "idle"
	StageStarting           Stage = "starting"
	StageInitializing       Stage = "initializing"
	StageFetchingPosts      Stage = "fetching_posts"
	StageFetchingComments   Stage = "fetching_comments"
	StagePreparingData      Stage = "preparing_data"
	StageAnalyzingSentiment Stage = "analyzing_sentiment"
	StageGeneratingPersona  Stage = "generating_persona"
	StageSavingResults      Stage = "saving_results"
	StageFinalizing         Stage = "finalizing"
	StageCompleted          Stage = "completed"
	StageError              Stage = "error"
)

// Terminal reports whether the stage ends a job.
func (s Stage) Terminal() bool {
	return s == StageCompleted || s == StageError
}

// Status is the full job record. It is replaced atomically on every update;
// readers always observe a complete snapshot, never a torn one.
type Status struct {
	Stage        Stage  `json:"stage"`
	Progress     int    `json:"progress"`
	Message      string `json:"message"`
	Error        string `json:"error,omitempty"`
	Completed    bool   `json:"completed"`
	LockHeld     bool   `json:"lock"`
	OutputRef    string `json:"output_file,omitempty"`
	GenerationID string `json:"generation_id,omitempty"`
	Username     string `json:"username,omitempty"`
}

// Tracker is the process-wide single-flight job slot: one writer (the job
// worker), arbitrarily many readers (status pollers).
type Tracker struct {
	mu     sync.Mutex
	locked bool
	status atomic.Pointer[Status]
}

func NewTracker() *Tracker {
	t := &Tracker{}
	t.status.Store(&Status{Stage: StageIdle, Message: "Ready"})
	return t
}

// Begin admits a new job for username. If the lock is held but the recorded
// status is terminal, the lock is treated as stale from a worker that never
// released it; it is force-cleared and admission proceeds.
func (t *Tracker) Begin(username string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.locked {
		snap := t.status.Load()
		if snap.Completed || snap.Stage.Terminal() {
			slog.Warn("[JobTracker] Stale generation lock detected, forcing reset",
				slog.String("stage", string(snap.Stage)),
				slog.Bool("completed", snap.Completed))
			t.locked = false
		} else {
			slog.Info("[JobTracker] Generation blocked, job already running",
				slog.String("stage", string(snap.Stage)),
				slog.String("username", snap.Username))
			return "", ErrAlreadyRunning
		}
	}

	t.locked = true
	generationID := uuid.NewString()
	t.status.Store(&Status{
		Stage:        StageStarting,
		Message:      "Initializing...",
		LockHeld:     true,
		GenerationID: generationID,
		Username:     username,
	})
	return generationID, nil
}

// Update atomically overwrites the shared status. Progress is expected to be
// non-decreasing within a stage; that is the caller's responsibility.
func (t *Tracker) Update(stage Stage, progress int, message string) {
	prev := t.status.Load()
	t.status.Store(&Status{
		Stage:        stage,
		Progress:     progress,
		Message:      message,
		Error:        prev.Error,
		LockHeld:     prev.LockHeld,
		OutputRef:    prev.OutputRef,
		GenerationID: prev.GenerationID,
		Username:     prev.Username,
	})
	slog.Info("[JobTracker] Progress update",
		slog.String("stage", string(stage)),
		slog.Int("progress", progress),
		slog.String("message", message))
}

// Complete marks the job successful and records the artifact reference.
func (t *Tracker) Complete(outputRef string) {
	prev := t.status.Load()
	t.status.Store(&Status{
		Stage:        StageCompleted,
		Progress:     100,
		Message:      "Persona generation completed successfully!",
		Completed:    true,
		LockHeld:     prev.LockHeld,
		OutputRef:    outputRef,
		GenerationID: prev.GenerationID,
		Username:     prev.Username,
	})
}

// Fail records the error with its verbatim message.
func (t *Tracker) Fail(err error) {
	prev := t.status.Load()
	t.status.Store(&Status{
		Stage:        StageError,
		Message:      "Error: " + err.Error(),
		Error:        err.Error(),
		LockHeld:     prev.LockHeld,
		GenerationID: prev.GenerationID,
		Username:     prev.Username,
	})
	slog.Error("[JobTracker] Generation failed", slog.String("error", err.Error()))
}

// Release clears the single-flight lock. It must run on every worker exit
// path, success or failure.
func (t *Tracker) Release() {
	t.mu.Lock()
	t.locked = false
	t.mu.Unlock()

	prev := t.status.Load()
	next := *prev
	next.LockHeld = false
	t.status.Store(&next)
}

// Reset forces the tracker back to idle and clears the lock unconditionally.
// Manual recovery path: it does not stop an in-flight worker.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.locked = false
	t.mu.Unlock()

	t.status.Store(&Status{Stage: StageIdle, Message: "Ready (manually reset)"})
	slog.Info("[JobTracker] Generation state reset")
}

// Snapshot returns the current full status record.
func (t *Tracker) Snapshot() Status {
	return *t.status.Load()
}
