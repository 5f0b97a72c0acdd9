package hotkey

import (
	"fmt"
	"sync"

	"golang.design/x/hotkey"

	"github.com/victor141516/espoquen/internal/domain"
	"github.com/victor141516/espoquen/pkg/logger"
)

// Listener grabs the bound key at the OS level and forwards its Down/Up
// edges to the orchestrator. Only the bound key is grabbed; every other key
// keeps its default system effect.
//
// Rebinds are picked up when the listener re-arms. Re-arming never happens
// mid-gesture, and while a session is in flight it is deferred until the
// orchestrator reports an idle phase again, so the key that started a
// session is the key that ends it.
type Listener struct {
	binding *Binding
	forward func(domain.KeyEvent)
	log     *logger.Logger

	mu    sync.Mutex
	busy  bool
	armed domain.Key

	rearm chan struct{}
	stop  chan struct{}
	done  chan struct{}
}

// NewListener creates a listener that forwards key events to forward.
func NewListener(binding *Binding, forward func(domain.KeyEvent), log *logger.Logger) *Listener {
	return &Listener{
		binding: binding,
		forward: forward,
		log:     log.Named("hotkey"),
		rearm:   make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// SetHotkey rebinds the active key. Fire-and-forget: the grab re-arms at the
// next safe point.
func (l *Listener) SetHotkey(key domain.Key) {
	l.binding.Set(key)
	l.poke()
	l.log.Info("hotkey rebound", logger.String("key", string(key)))
}

// GetHotkey returns the currently bound key without blocking.
func (l *Listener) GetHotkey() domain.Key {
	return l.binding.Current()
}

// Report implements ports.StatusSink so the listener learns when a session
// is in flight. A pending rebind is applied once the phase is idle again.
func (l *Listener) Report(ev domain.StatusEvent) {
	busy := ev.Phase == domain.PhaseRecording || ev.Phase == domain.PhaseTranscribing
	l.mu.Lock()
	l.busy = busy
	l.mu.Unlock()
	if !busy {
		l.poke()
	}
}

// Run grabs the bound key and blocks until Stop. It is intended to run on
// its own goroutine for the process lifetime.
func (l *Listener) Run() error {
	defer close(l.done)

	for {
		key := l.binding.Current()
		native, err := nativeKey(key)
		if err != nil {
			return err
		}

		hk := hotkey.New(nil, native)
		if err := hk.Register(); err != nil {
			return fmt.Errorf("register hotkey %s: %w", key, err)
		}
		l.setArmed(key)
		l.log.Info("hotkey armed", logger.String("key", string(key)))

		if stopped := l.watch(hk, key); stopped {
			_ = hk.Unregister()
			return nil
		}
		_ = hk.Unregister()
	}
}

// Stop tears the listener down. Safe to call once.
func (l *Listener) Stop() {
	close(l.stop)
	<-l.done
}

// watch delivers edges for one armed key until a rebind forces a re-arm
// (false) or Stop is called (true).
func (l *Listener) watch(hk *hotkey.Hotkey, key domain.Key) bool {
	for {
		select {
		case <-l.stop:
			return true
		case <-hk.Keydown():
			l.forward(domain.KeyEvent{Key: key, Edge: domain.EdgeDown})
			select {
			case <-hk.Keyup():
				l.forward(domain.KeyEvent{Key: key, Edge: domain.EdgeUp})
			case <-l.stop:
				return true
			}
		case <-l.rearm:
			if l.wantsRearm(key) {
				return false
			}
		}
	}
}

func (l *Listener) setArmed(key domain.Key) {
	l.mu.Lock()
	l.armed = key
	l.mu.Unlock()
}

func (l *Listener) wantsRearm(key domain.Key) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.busy && l.binding.Current() != key
}

func (l *Listener) poke() {
	select {
	case l.rearm <- struct{}{}:
	default:
	}
}
