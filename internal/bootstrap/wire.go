// Package bootstrap assembles the runtime dependency graph.
package bootstrap

import (
	"time"

	"github.com/victor141516/espoquen/internal/audio"
	"github.com/victor141516/espoquen/internal/config"
	"github.com/victor141516/espoquen/internal/hotkey"
	"github.com/victor141516/espoquen/internal/inject"
	"github.com/victor141516/espoquen/internal/ports"
	"github.com/victor141516/espoquen/internal/providers/whisper"
	"github.com/victor141516/espoquen/internal/rules"
	"github.com/victor141516/espoquen/internal/usecase"
	"github.com/victor141516/espoquen/pkg/logger"
)

// Services is the assembled runtime graph. PortAudio itself is initialized
// by the caller; Build only constructs objects.
type Services struct {
	Orchestrator *usecase.Orchestrator
	Listener     *hotkey.Listener
	Binding      *hotkey.Binding
	Config       config.Config
}

// Build wires all dependencies for the current runtime. The status sink
// receives every orchestrator transition.
func Build(status ports.StatusSink, log *logger.Logger) (Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return Services{}, err
	}

	key, err := hotkey.ParseKey(cfg.Hotkey.Key)
	if err != nil {
		return Services{}, err
	}
	binding := hotkey.NewBinding(key)

	rulesEngine, err := rules.Load(cfg.Rules.Path, cfg.Rules.IterationLimit)
	if err != nil {
		return Services{}, err
	}

	engine := whisper.New(whisper.Config{
		APIKey:   cfg.Engine.APIKey,
		BaseURL:  cfg.Engine.BaseURL,
		Model:    cfg.Engine.Model,
		Language: cfg.Engine.Language,
		Timeout:  cfg.Engine.Timeout(),
	}, log)

	injector := inject.New(inject.Config{
		SettleDelay:      time.Duration(cfg.Inject.SettleDelayMS) * time.Millisecond,
		PasteDelay:       time.Duration(cfg.Inject.PasteDelayMS) * time.Millisecond,
		RestoreClipboard: cfg.Inject.RestoreClipboard,
	}, log)

	orch := usecase.New(
		audio.NewPortAudioCapture(),
		engine,
		injector,
		rulesEngine,
		binding,
		status,
		usecase.Config{
			Audio: ports.AudioConfig{
				SampleRate:      cfg.Audio.SampleRate,
				Channels:        cfg.Audio.Channels,
				FramesPerBuffer: cfg.Audio.FramesPerBuffer,
			},
		},
		log,
	)

	listener := hotkey.NewListener(binding, orch.HandleKey, log)

	return Services{
		Orchestrator: orch,
		Listener:     listener,
		Binding:      binding,
		Config:       cfg,
	}, nil
}
