package audio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/victor141516/espoquen/internal/domain"
	"github.com/victor141516/espoquen/internal/ports"
)

// Initialize brings up the PortAudio runtime. Call once at startup, paired
// with Terminate at shutdown.
func Initialize() error {
	return portaudio.Initialize()
}

// Terminate tears the PortAudio runtime down.
func Terminate() {
	_ = portaudio.Terminate()
}

// PortAudioCapture opens recording sessions on the default input device.
type PortAudioCapture struct{}

// NewPortAudioCapture creates the capture factory. It touches no audio
// state until Start.
func NewPortAudioCapture() *PortAudioCapture {
	return &PortAudioCapture{}
}

// Start opens the default input device and begins accumulating frames on
// the audio callback thread. A missing or failing device is reported here,
// synchronously, never later.
func (c *PortAudioCapture) Start(cfg ports.AudioConfig) (ports.Recording, error) {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 16000
	}
	if cfg.Channels <= 0 {
		cfg.Channels = 1
	}
	if cfg.FramesPerBuffer <= 0 {
		cfg.FramesPerBuffer = 1024
	}

	buf := NewBuffer()
	stream, err := portaudio.OpenDefaultStream(
		cfg.Channels, 0,
		float64(cfg.SampleRate),
		cfg.FramesPerBuffer,
		func(in []float32) { buf.Append(in) },
	)
	if err != nil {
		return nil, fmt.Errorf("open input device: %w", err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		return nil, fmt.Errorf("start input stream: %w", err)
	}

	return &recording{stream: stream, buf: buf, sampleRate: cfg.SampleRate}, nil
}

type recording struct {
	stream     *portaudio.Stream
	buf        *Buffer
	sampleRate int

	stopOnce sync.Once
	clip     domain.Clip
	stopErr  error
}

// Stop closes the device and returns ownership of the accumulated samples.
// Idempotent: later calls return the same clip.
func (r *recording) Stop() (domain.Clip, error) {
	r.stopOnce.Do(func() {
		if err := r.stream.Stop(); err != nil {
			r.stopErr = fmt.Errorf("stop input stream: %w", err)
		}
		if err := r.stream.Close(); err != nil && r.stopErr == nil {
			r.stopErr = fmt.Errorf("close input stream: %w", err)
		}
		r.clip = domain.Clip{Samples: r.buf.Take(), SampleRate: r.sampleRate}
	})
	return r.clip, r.stopErr
}
