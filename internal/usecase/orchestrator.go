// Package usecase contains the session orchestrator: the single decision
// point that turns hotkey presses into recording sessions, hands finished
// audio to the transcription engine, and pushes the result into the focused
// window.
package usecase

import (
	"context"
	"strings"

	"github.com/victor141516/espoquen/internal/domain"
	"github.com/victor141516/espoquen/internal/hotkey"
	"github.com/victor141516/espoquen/internal/ports"
	"github.com/victor141516/espoquen/pkg/logger"
)

// Config controls orchestrator behavior.
type Config struct {
	Audio ports.AudioConfig
	// QueueSize bounds the event channel. The hotkey listener is an
	// unbounded-rate source; when the queue is full its events are dropped
	// rather than blocking the producer.
	QueueSize int
}

// Orchestrator is a finite-state machine over {Idle, Recording,
// Transcribing} owning exactly one current-session slot. All state lives on
// the run loop goroutine; every other thread talks to it through the event
// channel.
type Orchestrator struct {
	audio    ports.AudioCapture
	engine   ports.Engine
	injector ports.Injector
	rules    ports.Rules
	status   ports.StatusSink
	binding  *hotkey.Binding
	cfg      Config
	log      *logger.Logger

	events chan event
	stop   chan struct{}
	done   chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	// owned exclusively by the run loop
	phase   domain.Phase
	current *session
	lastID  uint64
}

// New assembles an orchestrator. Call Start to begin consuming events.
func New(
	audio ports.AudioCapture,
	engine ports.Engine,
	injector ports.Injector,
	rules ports.Rules,
	binding *hotkey.Binding,
	status ports.StatusSink,
	cfg Config,
	log *logger.Logger,
) *Orchestrator {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Orchestrator{
		audio:    audio,
		engine:   engine,
		injector: injector,
		rules:    rules,
		status:   status,
		binding:  binding,
		cfg:      cfg,
		log:      log.Named("orchestrator"),
		events:   make(chan event, cfg.QueueSize),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
		phase:    domain.PhaseReady,
	}
}

// Start launches the event loop. The first observable transition is Ready.
func (o *Orchestrator) Start() {
	go o.run()
}

// Shutdown tears the loop down from any state: capture is stopped if
// active, but an in-flight transcription worker is not awaited (it has no
// external side effects until its result is consumed here).
func (o *Orchestrator) Shutdown() {
	close(o.stop)
	<-o.done
}

// HandleKey enqueues one key transition. Never blocks: if the queue is
// full the event is dropped, which is safe because a dropped press is
// indistinguishable from a press that arrived while busy.
func (o *Orchestrator) HandleKey(ev domain.KeyEvent) {
	select {
	case o.events <- keyEvent{key: ev}:
	default:
		o.log.Warn("event queue full, key event dropped",
			logger.String("key", string(ev.Key)))
	}
}

func (o *Orchestrator) run() {
	defer close(o.done)
	defer o.cancel()

	o.report(domain.StatusEvent{Phase: domain.PhaseReady})

	for {
		select {
		case <-o.stop:
			o.teardown()
			return
		case ev := <-o.events:
			switch e := ev.(type) {
			case keyEvent:
				o.handleKey(e.key)
			case completionEvent:
				o.handleCompletion(e)
			}
		}
	}
}

// handleKey applies the transition table. Only Down edges participate; Up
// edges are consumed by the listener's gesture tracking and carry no
// meaning here.
func (o *Orchestrator) handleKey(ev domain.KeyEvent) {
	if ev.Edge != domain.EdgeDown {
		return
	}

	switch o.phase {
	case domain.PhaseReady:
		// Idle: the binding is read exactly here, so a rebind takes effect
		// on the next session, never an active one.
		if ev.Key != o.binding.Current() {
			return
		}
		o.startSession(ev.Key)
	case domain.PhaseRecording:
		if ev.Key != o.current.key {
			return
		}
		o.finishRecording()
	case domain.PhaseTranscribing:
		// A session in flight cannot be interrupted: the press is dropped,
		// not queued, and no status is emitted.
		o.log.Debug("hotkey ignored while transcribing",
			logger.Uint64("session", o.current.id))
	}
}

func (o *Orchestrator) startSession(key domain.Key) {
	o.lastID++
	rec, err := o.audio.Start(o.cfg.Audio)
	if err != nil {
		// The session never reaches Recording; stay idle.
		o.log.Error("audio capture start failed", logger.Error(err))
		o.report(domain.StatusEvent{
			Phase:   domain.PhaseError,
			Code:    domain.ErrorCodeDevice,
			Message: err.Error(),
		})
		return
	}

	o.current = &session{id: o.lastID, key: key, rec: rec}
	o.phase = domain.PhaseRecording
	o.log.Info("recording started", logger.Uint64("session", o.current.id))
	o.report(domain.StatusEvent{Phase: domain.PhaseRecording})
}

func (o *Orchestrator) finishRecording() {
	sess := o.current
	clip, err := sess.rec.Stop()
	if err != nil {
		o.log.Error("audio capture stop failed",
			logger.Uint64("session", sess.id), logger.Error(err))
		o.current = nil
		o.phase = domain.PhaseReady
		o.report(domain.StatusEvent{
			Phase:   domain.PhaseError,
			Code:    domain.ErrorCodeDevice,
			Message: err.Error(),
		})
		return
	}

	o.phase = domain.PhaseTranscribing
	o.report(domain.StatusEvent{Phase: domain.PhaseTranscribing})
	o.log.Info("recording stopped",
		logger.Uint64("session", sess.id),
		logger.Int("samples", len(clip.Samples)))

	if clip.Empty() {
		// Nothing was captured; synthesize an empty completion instead of
		// paying for an engine call.
		o.postCompletion(completionEvent{sessionID: sess.id})
		return
	}

	// The blocking engine call runs on a disposable worker goroutine so
	// this loop keeps consuming (and correctly ignoring) input events.
	go func(id uint64, clip domain.Clip) {
		text, err := o.engine.Transcribe(o.ctx, clip)
		o.postCompletion(completionEvent{sessionID: id, text: text, err: err})
	}(sess.id, clip)
}

func (o *Orchestrator) handleCompletion(e completionEvent) {
	if o.phase != domain.PhaseTranscribing || o.current == nil || e.sessionID != o.current.id {
		// Stale fencing token: a completion from a superseded session must
		// not corrupt current state.
		o.log.Debug("stale completion discarded", logger.Uint64("session", e.sessionID))
		return
	}

	o.current = nil
	o.phase = domain.PhaseReady

	if e.err != nil {
		o.log.Error("transcription failed",
			logger.Uint64("session", e.sessionID), logger.Error(e.err))
		o.report(domain.StatusEvent{
			Phase:   domain.PhaseError,
			Code:    domain.ErrorCodeEngine,
			Message: e.err.Error(),
		})
		return
	}

	text := e.text
	if o.rules != nil {
		cleaned, err := o.rules.Apply(text)
		if err != nil {
			o.report(domain.StatusEvent{
				Phase:   domain.PhaseError,
				Code:    domain.ErrorCodeRules,
				Message: err.Error(),
			})
			return
		}
		text = cleaned
	}

	if strings.TrimSpace(text) == "" {
		o.log.Info("no text to inject", logger.Uint64("session", e.sessionID))
		o.report(domain.StatusEvent{Phase: domain.PhaseReady})
		return
	}

	if err := o.injector.Inject(o.ctx, text); err != nil {
		o.log.Error("injection failed",
			logger.Uint64("session", e.sessionID), logger.Error(err))
		o.report(domain.StatusEvent{
			Phase:   domain.PhaseError,
			Code:    domain.ErrorCodeInject,
			Message: err.Error(),
		})
		return
	}

	o.log.Info("text injected",
		logger.Uint64("session", e.sessionID),
		logger.Int("chars", len(text)))
	o.report(domain.StatusEvent{Phase: domain.PhaseReady})
}

// postCompletion delivers a worker result back through the serialized
// channel. Blocks until the loop takes it, unless shutdown wins.
func (o *Orchestrator) postCompletion(e completionEvent) {
	select {
	case o.events <- e:
	case <-o.stop:
	}
}

func (o *Orchestrator) teardown() {
	if o.current != nil && o.phase == domain.PhaseRecording {
		if _, err := o.current.rec.Stop(); err != nil {
			o.log.Warn("capture stop during shutdown failed", logger.Error(err))
		}
	}
	o.current = nil
}

func (o *Orchestrator) report(ev domain.StatusEvent) {
	o.status.Report(ev)
}
