package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Icons string `koanf:"icons"` // "nerd", "unicode", or "none" (default)

	// Playback engine timings and gesture thresholds
	Engine EngineConfig `koanf:"engine"`

	Log LogConfig `koanf:"log"`

	// Watch-progress persistence (resume where you left off)
	State StateConfig `koanf:"state"`

	// MPRIS D-Bus integration (media keys, desktop widgets)
	MPRIS MPRISConfig `koanf:"mpris"`

	// Desktop notifications
	Notifications NotificationsConfig `koanf:"notifications"`

	// Simulated surfaces used by the terminal host
	Sim SimConfig `koanf:"sim"`
}

// EngineConfig holds the controller timings and gesture thresholds.
// Durations accept Go duration strings ("2.5s", "300ms").
type EngineConfig struct {
	HideDelay          time.Duration `koanf:"hide_delay"`           // overlay auto-hide (default: 2.5s)
	SettleDelay        time.Duration `koanf:"settle_delay"`         // seek delay for surfaces without readiness (default: 250ms)
	DoubleTapWindow    time.Duration `koanf:"double_tap_window"`    // default: 300ms
	DoubleTapTolerance float64       `koanf:"double_tap_tolerance"` // max distance between taps (default: 40)
	SwipeThreshold     float64       `koanf:"swipe_threshold"`      // min horizontal travel (default: 45)
	SkipInterval       time.Duration `koanf:"skip_interval"`        // swipe seek amount (default: 10s)
	EndTolerance       time.Duration `koanf:"end_tolerance"`        // ended when within this of the end (default: 300ms)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level   string `koanf:"level"`   // "debug", "info", "warn", "error" (default: "info")
	JSON    bool   `koanf:"json"`    // JSON lines instead of text
	Enabled *bool  `koanf:"enabled"` // default: true
	Path    string `koanf:"path"`    // log directory (default: xdg state dir)
}

// StateConfig holds watch-progress store configuration.
type StateConfig struct {
	Enabled *bool  `koanf:"enabled"` // default: true
	Path    string `koanf:"path"`    // database file (default: xdg data dir)
}

// MPRISConfig holds MPRIS configuration.
type MPRISConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// NotificationsConfig holds desktop notification settings.
type NotificationsConfig struct {
	Enabled    *bool `koanf:"enabled"`     // master switch (default: true)
	NowPlaying *bool `koanf:"now_playing"` // when a new item becomes ready (default: false)
	Failures   *bool `koanf:"failures"`    // when playback fails (default: true)
	ShowPoster *bool `koanf:"show_poster"` // poster image as icon (default: true)
	Timeout    int32 `koanf:"timeout"`     // ms, default 5000
}

// SimConfig tunes the simulated surfaces.
type SimConfig struct {
	Duration    time.Duration `koanf:"duration"`     // default: 2m
	LoadLatency time.Duration `koanf:"load_latency"` // default: 400ms
	Tick        time.Duration `koanf:"tick"`         // default: 250ms
	StallEvery  time.Duration `koanf:"stall_every"`  // 0 never stalls
	StallFor    time.Duration `koanf:"stall_for"`    // default: 1s
}

// Engine defaults.
const (
	DefaultHideDelay          = 2500 * time.Millisecond
	DefaultSettleDelay        = 250 * time.Millisecond
	DefaultDoubleTapWindow    = 300 * time.Millisecond
	DefaultDoubleTapTolerance = 40.0
	DefaultSwipeThreshold     = 45.0
	DefaultSkipInterval       = 10 * time.Second
	DefaultEndTolerance       = 300 * time.Millisecond
)

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Path != "" {
		cfg.Log.Path = expandPath(cfg.Log.Path)
	}
	if cfg.State.Path != "" {
		cfg.State.Path = expandPath(cfg.State.Path)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/vidctl/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "vidctl", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// DefaultEngineConfig returns the stock engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		HideDelay:          DefaultHideDelay,
		SettleDelay:        DefaultSettleDelay,
		DoubleTapWindow:    DefaultDoubleTapWindow,
		DoubleTapTolerance: DefaultDoubleTapTolerance,
		SwipeThreshold:     DefaultSwipeThreshold,
		SkipInterval:       DefaultSkipInterval,
		EndTolerance:       DefaultEndTolerance,
	}
}

// GetEngineConfig returns the engine configuration with defaults applied.
func (c *Config) GetEngineConfig() EngineConfig {
	return c.Engine.WithDefaults()
}

// WithDefaults replaces unset or invalid values with the defaults.
func (e EngineConfig) WithDefaults() EngineConfig {
	d := DefaultEngineConfig()
	if e.HideDelay <= 0 {
		e.HideDelay = d.HideDelay
	}
	if e.SettleDelay <= 0 {
		e.SettleDelay = d.SettleDelay
	}
	if e.DoubleTapWindow <= 0 {
		e.DoubleTapWindow = d.DoubleTapWindow
	}
	if e.DoubleTapTolerance <= 0 {
		e.DoubleTapTolerance = d.DoubleTapTolerance
	}
	if e.SwipeThreshold <= 0 {
		e.SwipeThreshold = d.SwipeThreshold
	}
	if e.SkipInterval <= 0 {
		e.SkipInterval = d.SkipInterval
	}
	if e.EndTolerance <= 0 {
		e.EndTolerance = d.EndTolerance
	}
	return e
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		cfg.Level = "info"
	}
	return cfg
}

// LogEnabled returns true unless logging was explicitly disabled.
func (c *Config) LogEnabled() bool {
	return boolOr(c.Log.Enabled, true)
}

// StateEnabled returns true unless the progress store was explicitly disabled.
func (c *Config) StateEnabled() bool {
	return boolOr(c.State.Enabled, true)
}

// MPRISEnabled returns true unless MPRIS was explicitly disabled.
func (c *Config) MPRISEnabled() bool {
	return boolOr(c.MPRIS.Enabled, true)
}

// GetNotificationsConfig returns the notification configuration with defaults applied.
func (c *Config) GetNotificationsConfig() NotificationsConfig {
	cfg := c.Notifications
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5000
	}
	return cfg
}

// NotificationsEnabled returns true unless notifications were explicitly disabled.
func (n NotificationsConfig) NotificationsEnabled() bool {
	return boolOr(n.Enabled, true)
}

// NowPlayingEnabled reports whether ready items are announced.
func (n NotificationsConfig) NowPlayingEnabled() bool {
	return n.NotificationsEnabled() && boolOr(n.NowPlaying, false)
}

// FailuresEnabled reports whether playback failures are announced.
func (n NotificationsConfig) FailuresEnabled() bool {
	return n.NotificationsEnabled() && boolOr(n.Failures, true)
}

// PosterEnabled reports whether the poster is used as notification icon.
func (n NotificationsConfig) PosterEnabled() bool {
	return boolOr(n.ShowPoster, true)
}

// GetSimConfig returns the simulated surface configuration with defaults applied.
func (c *Config) GetSimConfig() SimConfig {
	cfg := c.Sim
	if cfg.Duration <= 0 {
		cfg.Duration = 2 * time.Minute
	}
	if cfg.LoadLatency <= 0 {
		cfg.LoadLatency = 400 * time.Millisecond
	}
	if cfg.Tick <= 0 {
		cfg.Tick = 250 * time.Millisecond
	}
	if cfg.StallEvery < 0 {
		cfg.StallEvery = 0
	}
	if cfg.StallFor <= 0 {
		cfg.StallFor = time.Second
	}
	return cfg
}
