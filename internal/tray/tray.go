package tray

import (
	"fmt"
	"sync"

	"github.com/gen2brain/beeep"
	"github.com/getlantern/systray"

	"github.com/victor141516/espoquen/internal/domain"
	"github.com/victor141516/espoquen/internal/hotkey"
	"github.com/victor141516/espoquen/pkg/logger"
)

const appName = "espoquen"

// Options configures the tray presenter.
type Options struct {
	// Rebind is invoked when the user picks a key from the Set Hotkey menu.
	Rebind func(domain.Key)
	// Current returns the bound key, used for tooltips and checkmarks.
	Current func() domain.Key
	// Notify raises a desktop notification on error phases.
	Notify bool
}

// Tray renders orchestrator status on the system tray and hosts the
// Set Hotkey submenu. It implements ports.StatusSink; Report only updates
// presentation state and never blocks on the menu.
type Tray struct {
	opts Options
	log  *logger.Logger

	mu       sync.Mutex
	ready    bool
	last     domain.StatusEvent
	keyItems map[domain.Key]*systray.MenuItem
}

func New(opts Options, log *logger.Logger) *Tray {
	return &Tray{
		opts:     opts,
		log:      log.Named("tray"),
		last:     domain.StatusEvent{Phase: domain.PhaseLoadingModel},
		keyItems: make(map[domain.Key]*systray.MenuItem),
	}
}

// OnReady builds the menu. Pass it to systray.Run.
func (t *Tray) OnReady() {
	systray.SetTitle(appName)

	parent := systray.AddMenuItem("Set Hotkey", "Choose the dictation toggle key")
	for _, key := range hotkey.Keys {
		key := key
		item := parent.AddSubMenuItemCheckbox(string(key), "", key == t.opts.Current())
		t.keyItems[key] = item
		go func() {
			for range item.ClickedCh {
				t.opts.Rebind(key)
				t.refreshKeyMarks()
				t.render(t.snapshot())
			}
		}()
	}

	systray.AddSeparator()
	quit := systray.AddMenuItem("Quit", "Quit "+appName)
	go func() {
		<-quit.ClickedCh
		systray.Quit()
	}()

	t.mu.Lock()
	t.ready = true
	last := t.last
	t.mu.Unlock()
	t.render(last)
}

// Report implements ports.StatusSink.
func (t *Tray) Report(ev domain.StatusEvent) {
	t.mu.Lock()
	t.last = ev
	ready := t.ready
	t.mu.Unlock()

	if ready {
		t.render(ev)
	}
	if ev.Phase == domain.PhaseError && t.opts.Notify {
		go func() {
			if err := beeep.Notify(appName, statusLine(ev, t.opts.Current()), ""); err != nil {
				t.log.Warn("notification failed", logger.Error(err))
			}
		}()
	}
}

func (t *Tray) render(ev domain.StatusEvent) {
	systray.SetTooltip(statusLine(ev, t.opts.Current()))
}

func (t *Tray) refreshKeyMarks() {
	current := t.opts.Current()
	for key, item := range t.keyItems {
		if key == current {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
}

func (t *Tray) snapshot() domain.StatusEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

// statusLine formats one tooltip per phase.
func statusLine(ev domain.StatusEvent, key domain.Key) string {
	switch ev.Phase {
	case domain.PhaseLoadingModel:
		return "Loading model..."
	case domain.PhaseReady:
		return fmt.Sprintf("Ready (press %s)", key)
	case domain.PhaseRecording:
		return "Recording..."
	case domain.PhaseTranscribing:
		return "Transcribing..."
	case domain.PhaseError:
		if ev.Message != "" {
			return "Error: " + ev.Message
		}
		return "Error"
	default:
		return appName
	}
}
