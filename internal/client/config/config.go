package config

import (
	"time"

	"github.com/dmitrijs2005/taskboard/internal/flagx"
)

// TokenDirName is the directory under $HOME where the session token is kept.
const TokenDirName = ".taskboard"

// Config holds runtime settings for the taskctl CLI.
//
// Fields:
//   - ServerURL: base URL of the HTTP API, without the /api suffix.
//   - RequestTimeout: deadline for a single HTTP request.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

func parseEnv(cfg *Config) {
	cfg.ServerURL = flagx.EnvString("TASKBOARD_SERVER", cfg.ServerURL)
	cfg.RequestTimeout = flagx.EnvDuration("TASKBOARD_TIMEOUT", cfg.RequestTimeout)
}
