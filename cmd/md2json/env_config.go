package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-md2json/internal/config"
)

// Environment variable names.
const (
	envConfig     = "MD2JSON_CONFIG"
	envStyle      = "MD2JSON_STYLE"
	envDateFormat = "MD2JSON_DATE_FORMAT"
	envFormat     = "MD2JSON_FORMAT"
	envTimeout    = "MD2JSON_TIMEOUT"
	envPrefix     = "MD2JSON_"
)

// envSettings holds configuration from environment variables.
// Provides CI/CD-friendly overrides without editing options files.
type envSettings struct {
	ConfigPath string        // MD2JSON_CONFIG: options file name or path
	Style      string        // MD2JSON_STYLE: highlight style
	DateFormat string        // MD2JSON_DATE_FORMAT: strftime pattern or preset
	Format     string        // MD2JSON_FORMAT: json or yaml
	Timeout    time.Duration // MD2JSON_TIMEOUT: render timeout
}

// knownEnvVars lists valid MD2JSON_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	envConfig:     true,
	envStyle:      true,
	envDateFormat: true,
	envFormat:     true,
	envTimeout:    true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envSettings {
	cfg := &envSettings{
		ConfigPath: os.Getenv(envConfig),
		Style:      os.Getenv(envStyle),
		DateFormat: os.Getenv(envDateFormat),
		Format:     os.Getenv(envFormat),
	}

	// Invalid durations are ignored, as are non-positive ones
	if timeout := os.Getenv(envTimeout); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2JSON_* variables.
// Helps catch typos like MD2JSON_STYEL.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values over the options file.
// Set variables win over the file; CLI flags are applied later via
// mergeFlags, giving: CLI flags > env vars > options file.
func applyEnvConfig(env *envSettings, cfg *config.Config) {
	if env.Style != "" {
		cfg.Highlight.Style = env.Style
	}
	if env.DateFormat != "" {
		cfg.DateFormat = env.DateFormat
	}
}
