package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/videos",
			expected: filepath.Join(home, "videos"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/var/lib/vidctl",
			expected: "/var/lib/vidctl",
		},
		{
			name:     "relative path unchanged",
			input:    "data/progress.db",
			expected: "data/progress.db",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}

	// Last path should be local config.toml
	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "vidctl", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}

func TestGetEngineConfig_Defaults(t *testing.T) {
	cfg := &Config{}
	got := cfg.GetEngineConfig()

	if got != DefaultEngineConfig() {
		t.Errorf("GetEngineConfig() = %+v, want %+v", got, DefaultEngineConfig())
	}
	if got.HideDelay != 2500*time.Millisecond {
		t.Errorf("HideDelay = %v, want 2.5s", got.HideDelay)
	}
	if got.DoubleTapWindow != 300*time.Millisecond {
		t.Errorf("DoubleTapWindow = %v, want 300ms", got.DoubleTapWindow)
	}
	if got.SkipInterval != 10*time.Second {
		t.Errorf("SkipInterval = %v, want 10s", got.SkipInterval)
	}
}

func TestGetEngineConfig_CustomAndInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		engine EngineConfig
		check  func(t *testing.T, e EngineConfig)
	}{
		{
			name:   "custom hide delay kept",
			engine: EngineConfig{HideDelay: 4 * time.Second},
			check: func(t *testing.T, e EngineConfig) {
				if e.HideDelay != 4*time.Second {
					t.Errorf("HideDelay = %v, want 4s", e.HideDelay)
				}
			},
		},
		{
			name:   "negative settle delay reset",
			engine: EngineConfig{SettleDelay: -time.Second},
			check: func(t *testing.T, e EngineConfig) {
				if e.SettleDelay != DefaultSettleDelay {
					t.Errorf("SettleDelay = %v, want %v", e.SettleDelay, DefaultSettleDelay)
				}
			},
		},
		{
			name:   "zero thresholds reset",
			engine: EngineConfig{SwipeThreshold: 0, DoubleTapTolerance: -3},
			check: func(t *testing.T, e EngineConfig) {
				if e.SwipeThreshold != DefaultSwipeThreshold {
					t.Errorf("SwipeThreshold = %v, want %v", e.SwipeThreshold, DefaultSwipeThreshold)
				}
				if e.DoubleTapTolerance != DefaultDoubleTapTolerance {
					t.Errorf("DoubleTapTolerance = %v, want %v", e.DoubleTapTolerance, DefaultDoubleTapTolerance)
				}
			},
		},
		{
			name:   "custom skip interval kept",
			engine: EngineConfig{SkipInterval: 5 * time.Second},
			check: func(t *testing.T, e EngineConfig) {
				if e.SkipInterval != 5*time.Second {
					t.Errorf("SkipInterval = %v, want 5s", e.SkipInterval)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Engine: tt.engine}
			tt.check(t, cfg.GetEngineConfig())
		})
	}
}

func TestGetLogConfig_Level(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{"", "info"},
		{"debug", "debug"},
		{"warn", "warn"},
		{"verbose", "info"},
	}
	for _, tt := range tests {
		cfg := &Config{Log: LogConfig{Level: tt.level}}
		if got := cfg.GetLogConfig().Level; got != tt.want {
			t.Errorf("GetLogConfig().Level for %q = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestEnabledFlags(t *testing.T) {
	off := false
	on := true

	tests := []struct {
		name  string
		cfg   Config
		log   bool
		state bool
		mpris bool
	}{
		{
			name:  "unset defaults to enabled",
			cfg:   Config{},
			log:   true,
			state: true,
			mpris: true,
		},
		{
			name: "explicitly disabled",
			cfg: Config{
				Log:   LogConfig{Enabled: &off},
				State: StateConfig{Enabled: &off},
				MPRIS: MPRISConfig{Enabled: &off},
			},
		},
		{
			name:  "explicitly enabled",
			cfg:   Config{MPRIS: MPRISConfig{Enabled: &on}},
			log:   true,
			state: true,
			mpris: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.LogEnabled(); got != tt.log {
				t.Errorf("LogEnabled() = %v, want %v", got, tt.log)
			}
			if got := tt.cfg.StateEnabled(); got != tt.state {
				t.Errorf("StateEnabled() = %v, want %v", got, tt.state)
			}
			if got := tt.cfg.MPRISEnabled(); got != tt.mpris {
				t.Errorf("MPRISEnabled() = %v, want %v", got, tt.mpris)
			}
		})
	}
}

func TestGetNotificationsConfig(t *testing.T) {
	off := false
	on := true

	tests := []struct {
		name       string
		cfg        NotificationsConfig
		nowPlaying bool
		failures   bool
		poster     bool
	}{
		{
			name:     "unset defaults",
			cfg:      NotificationsConfig{},
			failures: true,
			poster:   true,
		},
		{
			name:       "master switch off wins",
			cfg:        NotificationsConfig{Enabled: &off, NowPlaying: &on, Failures: &on},
			nowPlaying: false,
			failures:   false,
			poster:     true,
		},
		{
			name:       "now playing opt-in",
			cfg:        NotificationsConfig{NowPlaying: &on, ShowPoster: &off},
			nowPlaying: true,
			failures:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := (&Config{Notifications: tt.cfg}).GetNotificationsConfig()
			if got.Timeout != 5000 {
				t.Errorf("Timeout = %d, want 5000", got.Timeout)
			}
			if got.NowPlayingEnabled() != tt.nowPlaying {
				t.Errorf("NowPlayingEnabled() = %v, want %v", got.NowPlayingEnabled(), tt.nowPlaying)
			}
			if got.FailuresEnabled() != tt.failures {
				t.Errorf("FailuresEnabled() = %v, want %v", got.FailuresEnabled(), tt.failures)
			}
			if got.PosterEnabled() != tt.poster {
				t.Errorf("PosterEnabled() = %v, want %v", got.PosterEnabled(), tt.poster)
			}
		})
	}
}

func TestGetSimConfig_Defaults(t *testing.T) {
	cfg := &Config{Sim: SimConfig{StallEvery: -time.Second}}
	got := cfg.GetSimConfig()

	if got.Duration != 2*time.Minute {
		t.Errorf("Duration = %v, want 2m", got.Duration)
	}
	if got.LoadLatency != 400*time.Millisecond {
		t.Errorf("LoadLatency = %v, want 400ms", got.LoadLatency)
	}
	if got.StallEvery != 0 {
		t.Errorf("StallEvery = %v, want 0", got.StallEvery)
	}
}

func chdirTemp(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("could not change to temp directory: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(originalWd)
	})
}

func TestLoad_EmptyConfig(t *testing.T) {
	chdirTemp(t)

	if err := os.WriteFile("config.toml", []byte(""), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	// Note: values may be inherited from ~/.config/vidctl/config.toml if it exists
}

func TestLoad_EngineSection(t *testing.T) {
	chdirTemp(t)

	configContent := `
icons = "nerd"

[engine]
hide_delay = "4s"
double_tap_window = "250ms"
swipe_threshold = 60.0

[log]
level = " DEBUG "
json = true

[state]
path = "~/vidctl/progress.db"
`
	if err := os.WriteFile("config.toml", []byte(configContent), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Icons != "nerd" {
		t.Errorf("Icons = %q, want %q", cfg.Icons, "nerd")
	}

	engine := cfg.GetEngineConfig()
	if engine.HideDelay != 4*time.Second {
		t.Errorf("HideDelay = %v, want 4s", engine.HideDelay)
	}
	if engine.DoubleTapWindow != 250*time.Millisecond {
		t.Errorf("DoubleTapWindow = %v, want 250ms", engine.DoubleTapWindow)
	}
	if engine.SwipeThreshold != 60 {
		t.Errorf("SwipeThreshold = %v, want 60", engine.SwipeThreshold)
	}
	if engine.SettleDelay != DefaultSettleDelay {
		t.Errorf("SettleDelay = %v, want default", engine.SettleDelay)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
	if !cfg.Log.JSON {
		t.Error("Log.JSON = false, want true")
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, "vidctl", "progress.db")
	if cfg.State.Path != expected {
		t.Errorf("State.Path = %q, want %q", cfg.State.Path, expected)
	}
}

func TestLoad_InvalidToml(t *testing.T) {
	chdirTemp(t)

	if err := os.WriteFile("config.toml", []byte("invalid = [[["), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for invalid TOML, got nil")
	}
}
