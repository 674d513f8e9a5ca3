package config

import (
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/flagx"
	"github.com/joho/godotenv"
)

// dotenvFile is read before the environment is consulted; a missing file is
// not an error. Variables already set in the process environment win.
var dotenvFile = ".env"

// parseEnv overlays values from environment variables:
//
//	PORT / LISTEN_ADDR, DATABASE_URL, JWT_SECRET, TOKEN_TTL, LOG_LEVEL,
//	LOGIN_RATE_LIMIT, REDIS_ADDR, NATS_URL, S3_ROOT_USER, S3_ROOT_PASSWORD,
//	S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT, STRICT_CATEGORY_OWNERSHIP
func parseEnv(config *Config) {
	_ = godotenv.Load(dotenvFile)

	if port := flagx.EnvString("PORT", ""); port != "" {
		config.ListenAddr = ":" + strings.TrimPrefix(port, ":")
	}
	config.ListenAddr = flagx.EnvString("LISTEN_ADDR", config.ListenAddr)
	config.DatabaseDSN = flagx.EnvString("DATABASE_URL", config.DatabaseDSN)
	config.SecretKey = flagx.EnvString("JWT_SECRET", config.SecretKey)
	config.TokenValidityDuration = flagx.EnvDuration("TOKEN_TTL", config.TokenValidityDuration)
	config.LogLevel = flagx.EnvString("LOG_LEVEL", config.LogLevel)
	config.LoginRateLimit = flagx.EnvInt("LOGIN_RATE_LIMIT", config.LoginRateLimit)
	config.RedisAddr = flagx.EnvString("REDIS_ADDR", config.RedisAddr)
	config.NatsURL = flagx.EnvString("NATS_URL", config.NatsURL)
	config.S3RootUser = flagx.EnvString("S3_ROOT_USER", config.S3RootUser)
	config.S3RootPassword = flagx.EnvString("S3_ROOT_PASSWORD", config.S3RootPassword)
	config.S3Bucket = flagx.EnvString("S3_BUCKET", config.S3Bucket)
	config.S3Region = flagx.EnvString("S3_REGION", config.S3Region)
	config.S3BaseEndpoint = flagx.EnvString("S3_BASE_ENDPOINT", config.S3BaseEndpoint)
	config.StrictCategoryOwnership = flagx.EnvBool("STRICT_CATEGORY_OWNERSHIP", config.StrictCategoryOwnership)
}
