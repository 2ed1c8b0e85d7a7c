package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET"`

	// AccessTTL bounds the stateless access token; RefreshTTL bounds both the
	// refresh token and its server-side record.
	AccessTTL  time.Duration `env:"ACCESS_TOKEN_TTL,  default=1h"`
	RefreshTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`

	// StoreTimeout bounds token-store and identity lookups inside the auth
	// pipeline.
	StoreTimeout time.Duration `env:"AUTH_STORE_TIMEOUT, default=2s"`

	// FailMode is "open" (degrade to anonymous) or "closed" (503) when auth
	// infrastructure is unavailable.
	FailMode string `env:"AUTH_FAIL_MODE, default=open"`

	// SecureCookies marks credential cookies Secure; enable outside local
	// development.
	SecureCookies bool `env:"SECURE_COOKIES, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=board_service"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
