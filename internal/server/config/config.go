// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment and command-line flags.
package config

import "time"

// DefaultSecretKey is the development signing key. The server warns at
// startup when it is still in use.
const DefaultSecretKey = "your-secret-key"

// Config holds runtime settings for the taskboard server.
//
// Fields:
//   - ListenAddr: bind address for the HTTP API.
//   - DatabaseDSN: storage DSN; empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default in prod.
//   - TokenValidityDuration: token lifetime; 0 issues tokens without expiry.
//   - LogLevel: debug, info, warn or error.
//   - LoginRateLimit: register/login requests per minute per client; 0 disables.
//   - RedisAddr: when set, rate limiting is shared through Redis.
//   - NatsURL: when set, domain events are published to NATS.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage for export snapshots;
//     an empty bucket disables snapshots.
//   - StrictCategoryOwnership: reject tasks that point at another user's category.
type Config struct {
	ListenAddr              string
	DatabaseDSN             string
	SecretKey               string
	TokenValidityDuration   time.Duration
	LogLevel                string
	LoginRateLimit          int
	RedisAddr               string
	NatsURL                 string
	S3RootUser              string
	S3RootPassword          string
	S3Bucket                string
	S3Region                string
	S3BaseEndpoint          string
	StrictCategoryOwnership bool
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":5000"
	c.DatabaseDSN = ""
	c.SecretKey = DefaultSecretKey
	c.TokenValidityDuration = 7 * 24 * time.Hour
	c.LogLevel = "info"
	c.LoginRateLimit = 20
	c.RedisAddr = ""
	c.NatsURL = ""
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.StrictCategoryOwnership = false
}

// SnapshotsEnabled reports whether object storage is configured.
func (c *Config) SnapshotsEnabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment (including a .env file) and
// finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
