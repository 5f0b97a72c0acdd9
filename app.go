package main

import (
	"sync"

	"github.com/victor141516/espoquen/internal/bootstrap"
	"github.com/victor141516/espoquen/internal/domain"
	"github.com/victor141516/espoquen/internal/ports"
	"github.com/victor141516/espoquen/internal/tray"
	"github.com/victor141516/espoquen/pkg/logger"
)

// App owns process lifetime wiring: the orchestrator loop, the OS hotkey
// listener, and the tray presenter, joined by an ordered status fan-out.
type App struct {
	services bootstrap.Services
	tray     *tray.Tray
	sink     *multiSink
	log      *logger.Logger
}

// NewApp assembles the application. PortAudio must be initialized by the
// caller before recording can start.
func NewApp(log *logger.Logger) (*App, error) {
	sink := &multiSink{}

	services, err := bootstrap.Build(sink, log)
	if err != nil {
		return nil, err
	}

	presenter := tray.New(tray.Options{
		Rebind:  services.Listener.SetHotkey,
		Current: services.Listener.GetHotkey,
		Notify:  services.Config.Notify.Enabled,
	}, log)

	// The tray renders a transition before the listener reacts to it, so
	// the user never sees a stale phase while a re-arm is pending.
	sink.add(presenter)
	sink.add(services.Listener)

	return &App{
		services: services,
		tray:     presenter,
		sink:     sink,
		log:      log.Named("app"),
	}, nil
}

// Start announces startup and launches the orchestrator loop plus the
// hotkey listener. The first transition the orchestrator emits is Ready.
func (a *App) Start() {
	a.sink.Report(domain.StatusEvent{Phase: domain.PhaseLoadingModel})
	a.services.Orchestrator.Start()

	go func() {
		if err := a.services.Listener.Run(); err != nil {
			a.log.Error("hotkey listener failed", logger.Error(err))
			a.sink.Report(domain.StatusEvent{
				Phase:   domain.PhaseError,
				Code:    domain.ErrorCodeDevice,
				Message: err.Error(),
			})
		}
	}()
}

// Stop tears everything down in dependency order: no more key events, then
// the loop. In-flight transcription is abandoned.
func (a *App) Stop() {
	a.services.Listener.Stop()
	a.services.Orchestrator.Shutdown()
	a.log.Info("shutdown complete")
}

// TrayReady is the systray ready callback.
func (a *App) TrayReady() {
	a.tray.OnReady()
}

// multiSink fans one status stream out to several sinks, preserving the
// emission order for each of them.
type multiSink struct {
	mu    sync.Mutex
	sinks []ports.StatusSink
}

func (m *multiSink) add(sink ports.StatusSink) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sinks = append(m.sinks, sink)
}

func (m *multiSink) Report(ev domain.StatusEvent) {
	m.mu.Lock()
	sinks := append([]ports.StatusSink(nil), m.sinks...)
	m.mu.Unlock()

	for _, sink := range sinks {
		sink.Report(ev)
	}
}
