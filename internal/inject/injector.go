// Package inject types transcribed text into the focused window. It uses
// the clipboard-paste strategy: stash the clipboard, write the text, send
// the paste chord, restore the clipboard.
package inject

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/atotto/clipboard"
	"github.com/micmonay/keybd_event"

	"github.com/victor141516/espoquen/pkg/logger"
)

// Config tunes injection timing.
type Config struct {
	// SettleDelay gives the previously focused window time to accept input
	// again after the hotkey press.
	SettleDelay time.Duration
	// PasteDelay is how long the paste chord is given before the clipboard
	// is restored.
	PasteDelay time.Duration
	// RestoreClipboard puts the user's previous clipboard content back.
	RestoreClipboard bool
}

// DefaultConfig returns the timing that works across the desktops tested.
func DefaultConfig() Config {
	return Config{
		SettleDelay:      100 * time.Millisecond,
		PasteDelay:       120 * time.Millisecond,
		RestoreClipboard: true,
	}
}

// ClipboardInjector implements ports.Injector.
type ClipboardInjector struct {
	cfg Config
	log *logger.Logger
}

// New creates an injector.
func New(cfg Config, log *logger.Logger) *ClipboardInjector {
	return &ClipboardInjector{cfg: cfg, log: log.Named("inject")}
}

// Inject pastes text into the focused window. Failures are returned to the
// caller and reported through the status sink; they are never fatal.
func (i *ClipboardInjector) Inject(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}

	previous, restoreErr := clipboard.ReadAll()
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}

	if err := sleepCtx(ctx, i.cfg.SettleDelay); err != nil {
		return err
	}
	if err := sendPasteChord(); err != nil {
		return fmt.Errorf("send paste keystroke: %w", err)
	}
	if err := sleepCtx(ctx, i.cfg.PasteDelay); err != nil {
		return err
	}

	if i.cfg.RestoreClipboard && restoreErr == nil {
		if err := clipboard.WriteAll(previous); err != nil {
			i.log.Warn("clipboard restore failed", logger.Error(err))
		}
	}
	return nil
}

func sendPasteChord() error {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return err
	}
	if runtime.GOOS == "darwin" {
		kb.HasSuper(true)
	} else {
		kb.HasCTRL(true)
	}
	kb.SetKeys(keybd_event.VK_V)
	return kb.Launching()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
