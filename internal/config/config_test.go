package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ESPOQUEN_HOTKEY", "ESPOQUEN_MODEL", "ESPOQUEN_LANGUAGE",
		"ESPOQUEN_ENGINE_TIMEOUT_MS", "ESPOQUEN_SAMPLE_RATE", "ESPOQUEN_CHANNELS",
		"ESPOQUEN_RULES_FILE", "ESPOQUEN_RULE_ITERATION_LIMIT",
		"OPENAI_API_KEY", "OPENAI_BASE_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Hotkey.Key != "F6" {
		t.Fatalf("expected default hotkey F6, got %q", cfg.Hotkey.Key)
	}
	if cfg.Audio.SampleRate != 16000 || cfg.Audio.Channels != 1 || cfg.Audio.FramesPerBuffer != 1024 {
		t.Fatalf("unexpected audio defaults: %+v", cfg.Audio)
	}
	if cfg.Engine.Model != "whisper-1" || cfg.Engine.Timeout() != time.Minute {
		t.Fatalf("unexpected engine defaults: %+v", cfg.Engine)
	}
	if !cfg.Inject.RestoreClipboard || !cfg.Notify.Enabled {
		t.Fatalf("unexpected toggle defaults: %+v %+v", cfg.Inject, cfg.Notify)
	}
	if cfg.Rules.IterationLimit != 30 {
		t.Fatalf("unexpected rules defaults: %+v", cfg.Rules)
	}
}

func TestLoadFromReadsFileValues(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	contents := `
[hotkey]
key = "F2"

[audio]
sample_rate = 22050
channels = 2

[engine]
model = "whisper-large"
language = "es"
timeout_ms = 5000
base_url = "https://example.com/v1"

[inject]
settle_delay_ms = 10
paste_delay_ms = 20
restore_clipboard = false

[rules]
path = "/tmp/my.rules"
iteration_limit = 7

[notify]
enabled = false
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Hotkey.Key != "F2" {
		t.Fatalf("unexpected hotkey: %q", cfg.Hotkey.Key)
	}
	if cfg.Audio.SampleRate != 22050 || cfg.Audio.Channels != 2 {
		t.Fatalf("unexpected audio config: %+v", cfg.Audio)
	}
	if cfg.Engine.Model != "whisper-large" || cfg.Engine.Language != "es" {
		t.Fatalf("unexpected engine config: %+v", cfg.Engine)
	}
	if cfg.Engine.BaseURL != "https://example.com/v1" || cfg.Engine.Timeout() != 5*time.Second {
		t.Fatalf("unexpected engine base/timeout: %+v", cfg.Engine)
	}
	if cfg.Inject.SettleDelayMS != 10 || cfg.Inject.PasteDelayMS != 20 || cfg.Inject.RestoreClipboard {
		t.Fatalf("unexpected inject config: %+v", cfg.Inject)
	}
	if cfg.Rules.Path != "/tmp/my.rules" || cfg.Rules.IterationLimit != 7 {
		t.Fatalf("unexpected rules config: %+v", cfg.Rules)
	}
	if cfg.Notify.Enabled {
		t.Fatalf("expected notifications disabled")
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[hotkey]\nkey = \"F2\"\n[engine]\nmodel = \"whisper-large\"\n"), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	t.Setenv("ESPOQUEN_HOTKEY", "F7")
	t.Setenv("ESPOQUEN_MODEL", "gpt-4o-transcribe")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "https://proxy.example.com/v1")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Hotkey.Key != "F7" {
		t.Fatalf("expected env hotkey override, got %q", cfg.Hotkey.Key)
	}
	if cfg.Engine.Model != "gpt-4o-transcribe" {
		t.Fatalf("expected env model override, got %q", cfg.Engine.Model)
	}
	if cfg.Engine.APIKey != "sk-test" || cfg.Engine.BaseURL != "https://proxy.example.com/v1" {
		t.Fatalf("unexpected engine credentials: %+v", cfg.Engine)
	}
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	contents := `
[hotkey]
key = "  "

[audio]
sample_rate = -1
channels = 0

[engine]
model = ""
timeout_ms = -5

[rules]
iteration_limit = 0
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	t.Setenv("ESPOQUEN_SAMPLE_RATE", "bad")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Hotkey.Key != "F6" {
		t.Fatalf("expected default hotkey, got %q", cfg.Hotkey.Key)
	}
	if cfg.Audio.SampleRate != 16000 || cfg.Audio.Channels != 1 {
		t.Fatalf("unexpected audio fallback: %+v", cfg.Audio)
	}
	if cfg.Engine.Model != "whisper-1" || cfg.Engine.Timeout() != time.Minute {
		t.Fatalf("unexpected engine fallback: %+v", cfg.Engine)
	}
	if cfg.Rules.IterationLimit != 30 {
		t.Fatalf("unexpected rules fallback: %+v", cfg.Rules)
	}
}

func TestLoadFromRejectsMalformedFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not toml at all ==="), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
