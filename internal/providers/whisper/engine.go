// Package whisper implements the transcription engine over an
// OpenAI-compatible audio transcriptions API. The call is whole-utterance
// and blocking; the orchestrator isolates it onto a worker goroutine.
package whisper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/victor141516/espoquen/internal/domain"
	"github.com/victor141516/espoquen/pkg/logger"
)

// Config holds engine settings.
type Config struct {
	APIKey   string
	BaseURL  string        // optional, defaults to the OpenAI endpoint
	Model    string        // optional, defaults to whisper-1
	Language string        // optional, empty means auto-detect
	Timeout  time.Duration // per-request budget
	TempDir  string        // where the upload WAV is staged, "" = os.TempDir
}

// Engine is a batch speech-to-text client.
type Engine struct {
	client openai.Client
	cfg    Config
	log    *logger.Logger
}

// New creates an engine. It performs no network calls.
func New(cfg Config, log *logger.Logger) *Engine {
	if cfg.Model == "" {
		cfg.Model = string(openai.AudioModelWhisper1)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Engine{
		client: openai.NewClient(opts...),
		cfg:    cfg,
		log:    log.Named("whisper"),
	}
}

// Transcribe encodes the clip to WAV, uploads it, and blocks until the API
// returns text or an error. The clip is owned by this call and never
// mutated.
func (e *Engine) Transcribe(ctx context.Context, clip domain.Clip) (string, error) {
	if clip.Empty() {
		return "", nil
	}

	path, err := e.stageWAV(clip)
	if err != nil {
		return "", err
	}
	defer os.Remove(path)

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open staged audio: %w", err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	params := openai.AudioTranscriptionNewParams{
		Model: openai.AudioModel(e.cfg.Model),
		File:  f,
	}
	if lang := strings.TrimSpace(e.cfg.Language); lang != "" && lang != "auto" {
		params.Language = openai.String(lang)
	}

	started := time.Now()
	resp, err := e.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}

	e.log.Info("transcription completed",
		logger.Duration("took", time.Since(started)),
		logger.Float64("audio_seconds", float64(len(clip.Samples))/float64(clip.SampleRate)),
	)
	return strings.TrimSpace(resp.Text), nil
}

// stageWAV writes the clip as a 16-bit mono WAV the API accepts. The file
// carries a unique name so concurrent runs of the binary cannot collide.
func (e *Engine) stageWAV(clip domain.Clip) (string, error) {
	dir := e.cfg.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, fmt.Sprintf("espoquen_%s.wav", uuid.NewString()))
	if err := encodeWAV(path, clip); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("stage audio: %w", err)
	}
	return path, nil
}
