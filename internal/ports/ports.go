package ports

import (
	"context"

	"github.com/victor141516/espoquen/internal/domain"
)

// AudioConfig describes how the microphone should be captured.
type AudioConfig struct {
	SampleRate      int
	Channels        int
	FramesPerBuffer int
}

// Recording is a live capture session. Stop closes the input device and
// returns ownership of the accumulated samples; no further writes happen
// after Stop returns.
type Recording interface {
	Stop() (domain.Clip, error)
}

// AudioCapture opens microphone capture sessions. Start fails synchronously
// when no input device can be opened.
type AudioCapture interface {
	Start(cfg AudioConfig) (Recording, error)
}

// Engine is the opaque, blocking speech-recognition call. It is always
// invoked from a dedicated worker goroutine, never from the orchestrator
// loop.
type Engine interface {
	Transcribe(ctx context.Context, clip domain.Clip) (string, error)
}

// Injector synthesizes the given text into whatever window has focus.
type Injector interface {
	Inject(ctx context.Context, text string) error
}

// Rules transforms a transcript deterministically before injection.
type Rules interface {
	Apply(text string) (string, error)
}

// StatusSink receives state transitions in the exact order they occur.
// Implementations must not block the orchestrator for more than a small,
// bounded duration.
type StatusSink interface {
	Report(ev domain.StatusEvent)
}
