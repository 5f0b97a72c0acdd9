package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config stores runtime configuration for the dictation app.
type Config struct {
	Hotkey HotkeyConfig `toml:"hotkey"`
	Audio  AudioConfig  `toml:"audio"`
	Engine EngineConfig `toml:"engine"`
	Inject InjectConfig `toml:"inject"`
	Rules  RulesConfig  `toml:"rules"`
	Notify NotifyConfig `toml:"notify"`
}

type HotkeyConfig struct {
	Key string `toml:"key"`
}

type AudioConfig struct {
	SampleRate      int `toml:"sample_rate"`
	Channels        int `toml:"channels"`
	FramesPerBuffer int `toml:"frames_per_buffer"`
}

type EngineConfig struct {
	APIKey    string `toml:"-"`
	BaseURL   string `toml:"base_url"`
	Model     string `toml:"model"`
	Language  string `toml:"language"`
	TimeoutMS int    `toml:"timeout_ms"`
}

func (c EngineConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

type InjectConfig struct {
	SettleDelayMS    int  `toml:"settle_delay_ms"`
	PasteDelayMS     int  `toml:"paste_delay_ms"`
	RestoreClipboard bool `toml:"restore_clipboard"`
}

type RulesConfig struct {
	Path           string `toml:"path"`
	IterationLimit int    `toml:"iteration_limit"`
}

type NotifyConfig struct {
	Enabled bool `toml:"enabled"`
}

// Load resolves configuration from the user config file, environment
// overrides and sensible defaults. A missing file is not an error.
func Load() (Config, error) {
	return LoadFrom(defaultPath())
}

// LoadFrom is Load with an explicit file path.
func LoadFrom(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	cfg.Hotkey.Key = envOrDefault("ESPOQUEN_HOTKEY", cfg.Hotkey.Key)
	cfg.Engine.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	cfg.Engine.BaseURL = envOrDefault("OPENAI_BASE_URL", cfg.Engine.BaseURL)
	cfg.Engine.Model = envOrDefault("ESPOQUEN_MODEL", cfg.Engine.Model)
	cfg.Engine.Language = envOrDefault("ESPOQUEN_LANGUAGE", cfg.Engine.Language)
	cfg.Engine.TimeoutMS = envOrDefaultInt("ESPOQUEN_ENGINE_TIMEOUT_MS", cfg.Engine.TimeoutMS)
	cfg.Audio.SampleRate = envOrDefaultInt("ESPOQUEN_SAMPLE_RATE", cfg.Audio.SampleRate)
	cfg.Audio.Channels = envOrDefaultInt("ESPOQUEN_CHANNELS", cfg.Audio.Channels)
	cfg.Rules.Path = envOrDefault("ESPOQUEN_RULES_FILE", cfg.Rules.Path)
	cfg.Rules.IterationLimit = envOrDefaultInt("ESPOQUEN_RULE_ITERATION_LIMIT", cfg.Rules.IterationLimit)

	sanitize(&cfg)
	return cfg, nil
}

func defaults() Config {
	return Config{
		Hotkey: HotkeyConfig{Key: "F6"},
		Audio: AudioConfig{
			SampleRate:      16000,
			Channels:        1,
			FramesPerBuffer: 1024,
		},
		Engine: EngineConfig{
			Model:     "whisper-1",
			TimeoutMS: 60000,
		},
		Inject: InjectConfig{
			SettleDelayMS:    100,
			PasteDelayMS:     120,
			RestoreClipboard: true,
		},
		Rules: RulesConfig{
			Path:           filepath.Join(configDir(), "substitutions.rules"),
			IterationLimit: 30,
		},
		Notify: NotifyConfig{Enabled: true},
	}
}

func sanitize(cfg *Config) {
	if strings.TrimSpace(cfg.Hotkey.Key) == "" {
		cfg.Hotkey.Key = "F6"
	}
	if cfg.Audio.SampleRate <= 0 {
		cfg.Audio.SampleRate = 16000
	}
	if cfg.Audio.Channels <= 0 {
		cfg.Audio.Channels = 1
	}
	if cfg.Audio.FramesPerBuffer <= 0 {
		cfg.Audio.FramesPerBuffer = 1024
	}
	if strings.TrimSpace(cfg.Engine.Model) == "" {
		cfg.Engine.Model = "whisper-1"
	}
	if cfg.Engine.TimeoutMS <= 0 {
		cfg.Engine.TimeoutMS = 60000
	}
	if cfg.Inject.SettleDelayMS < 0 {
		cfg.Inject.SettleDelayMS = 100
	}
	if cfg.Inject.PasteDelayMS < 0 {
		cfg.Inject.PasteDelayMS = 120
	}
	if cfg.Rules.IterationLimit <= 0 {
		cfg.Rules.IterationLimit = 30
	}
}

func defaultPath() string {
	if path := strings.TrimSpace(os.Getenv("ESPOQUEN_CONFIG")); path != "" {
		return path
	}
	return filepath.Join(configDir(), "config.toml")
}

func configDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "espoquen")
}

func envOrDefault(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrDefaultInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
