package generation

import (
	"errors"
	"time"
)

var (
	// ErrNoModelAvailable means every candidate in the fallback chain
	// failed to load or failed its smoke test.
	ErrNoModelAvailable = errors.New("no suitable model could be loaded")

	// ErrGenerationTimeout means an invocation exceeded its wall-clock
	// deadline. It is absorbed by the orchestrator, never fatal.
	ErrGenerationTimeout = errors.New("generation timed out")
)

type Device string

const (
	DeviceCUDA   Device = "cuda:0"
	DeviceCPU    Device = "cpu"
	DeviceRemote Device = "remote"
)

const (
	// Unaccelerated inference is materially slower, so CPU invocations get
	// the longer deadline.
	cpuInvokeTimeout         = 300 * time.Second
	acceleratedInvokeTimeout = 120 * time.Second

	// Token budget cap applied on CPU to keep latency bounded.
	cpuTokenBudget = 128
)

// Options are the per-invocation generation knobs.
type Options struct {
	MaxNewTokens   int
	Temperature    float64
	TopP           float64
	ReturnFullText bool

	// NumSequences > 1 enables multi-path search where the backend
	// supports it; forced to 1 on CPU.
	NumSequences int
}

func DefaultOptions() Options {
	return Options{
		MaxNewTokens: 256,
		Temperature:  0.7,
		TopP:         0.9,
		NumSequences: 1,
	}
}

func invokeTimeout(device Device) time.Duration {
	if device == DeviceCPU {
		return cpuInvokeTimeout
	}
	return acceleratedInvokeTimeout
}
