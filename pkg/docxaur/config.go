package docxaur

import (
	"os"
	"strings"
	"time"
)

// Config contains the tunable behavior of the assembly engine.
type Config struct {
	// StrictDimensions makes unparsable dimension strings fail with
	// InvalidDimensionError instead of substituting the caller's default.
	StrictDimensions bool
	// FetchTimeout bounds a single image fetch over HTTP.
	FetchTimeout time.Duration
	// BaseDir is the directory root-relative image locators resolve against.
	BaseDir string
	// LogLevel controls the verbosity of logging (debug, info, warn, error)
	LogLevel string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		StrictDimensions: false,
		FetchTimeout:     30 * time.Second,
		BaseDir:          ".",
		LogLevel:         "info",
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	if val := os.Getenv("DOCXAUR_STRICT_DIMENSIONS"); val != "" {
		config.StrictDimensions = parseBool(val)
	}
	if val := os.Getenv("DOCXAUR_FETCH_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			config.FetchTimeout = d
		}
	}
	if val := os.Getenv("DOCXAUR_BASE_DIR"); val != "" {
		config.BaseDir = val
	}
	if val := os.Getenv("DOCXAUR_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	return config
}

func parseBool(val string) bool {
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
