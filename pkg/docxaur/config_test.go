package docxaur

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.StrictDimensions {
		t.Error("default config should be lenient about dimensions")
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("default fetch timeout = %v, want 30s", cfg.FetchTimeout)
	}
	if cfg.BaseDir != "." {
		t.Errorf("default base dir = %q, want .", cfg.BaseDir)
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("DOCXAUR_STRICT_DIMENSIONS", "true")
	t.Setenv("DOCXAUR_FETCH_TIMEOUT", "5s")
	t.Setenv("DOCXAUR_BASE_DIR", "/srv/assets")
	t.Setenv("DOCXAUR_LOG_LEVEL", "debug")

	cfg := ConfigFromEnvironment()
	if !cfg.StrictDimensions {
		t.Error("StrictDimensions not read from environment")
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Errorf("FetchTimeout = %v, want 5s", cfg.FetchTimeout)
	}
	if cfg.BaseDir != "/srv/assets" {
		t.Errorf("BaseDir = %q, want /srv/assets", cfg.BaseDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestConfigFromEnvironmentIgnoresBadDuration(t *testing.T) {
	t.Setenv("DOCXAUR_FETCH_TIMEOUT", "soon")
	cfg := ConfigFromEnvironment()
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("bad duration changed FetchTimeout to %v", cfg.FetchTimeout)
	}
}

func TestParseBool(t *testing.T) {
	for _, truthy := range []string{"1", "true", "TRUE", "yes", "on"} {
		if !parseBool(truthy) {
			t.Errorf("parseBool(%q) = false, want true", truthy)
		}
	}
	for _, falsy := range []string{"0", "false", "off", "maybe", ""} {
		if parseBool(falsy) {
			t.Errorf("parseBool(%q) = true, want false", falsy)
		}
	}
}
