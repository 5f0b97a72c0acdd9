package main

import (
	"path/filepath"
	"testing"

	"github.com/victor141516/espoquen/internal/domain"
	"github.com/victor141516/espoquen/pkg/logger"
)

func TestMultiSinkPreservesOrderAcrossSinks(t *testing.T) {
	t.Parallel()

	first := &recordingSink{}
	second := &recordingSink{}
	sink := &multiSink{}
	sink.add(first)
	sink.add(second)

	sink.Report(domain.StatusEvent{Phase: domain.PhaseRecording})
	sink.Report(domain.StatusEvent{Phase: domain.PhaseTranscribing})

	for _, rec := range []*recordingSink{first, second} {
		if len(rec.events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(rec.events))
		}
		if rec.events[0].Phase != domain.PhaseRecording || rec.events[1].Phase != domain.PhaseTranscribing {
			t.Fatalf("order lost: %+v", rec.events)
		}
	}
}

func TestNewAppAssemblesGraph(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ESPOQUEN_CONFIG", filepath.Join(dir, "config.toml"))
	t.Setenv("ESPOQUEN_RULES_FILE", filepath.Join(dir, "no.rules"))
	t.Setenv("ESPOQUEN_HOTKEY", "F3")
	t.Setenv("OPENAI_API_KEY", "test-key")

	app, err := NewApp(logger.Nop())
	if err != nil {
		t.Fatalf("new app failed: %v", err)
	}
	if app.services.Listener.GetHotkey() != domain.KeyF3 {
		t.Fatalf("unexpected binding: %s", app.services.Listener.GetHotkey())
	}
}

func TestNewAppRejectsInvalidHotkey(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ESPOQUEN_CONFIG", filepath.Join(dir, "config.toml"))
	t.Setenv("ESPOQUEN_RULES_FILE", filepath.Join(dir, "no.rules"))
	t.Setenv("ESPOQUEN_HOTKEY", "Escape")

	if _, err := NewApp(logger.Nop()); err == nil {
		t.Fatalf("expected hotkey error")
	}
}

type recordingSink struct {
	events []domain.StatusEvent
}

func (r *recordingSink) Report(ev domain.StatusEvent) {
	r.events = append(r.events, ev)
}
