package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Session backends selectable via SESSION_BACKEND.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth    AuthConfig
	Session SessionConfig
	Redis   RedisConfig
}

// AuthConfig locates the remote authentication gateway.
type AuthConfig struct {
	BaseURL string `env:"AUTH_BASE_URL, default=http://localhost:9000"`
}

type SessionConfig struct {
	Backend string `env:"SESSION_BACKEND, default=file"`
	File    string `env:"SESSION_FILE,    default=.secureauth/session.json"`
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
