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

	Backend  BackendConfig
	Redis    RedisConfig
	Exchange ExchangeConfig
	Auth     AuthConfig
}

type BackendConfig struct {
	BaseURL string `env:"BACKEND_BASE_URL, default=http://localhost:8000"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type ExchangeConfig struct {
	// ReferenceCurrency is the pivot all backend rates are expressed against.
	ReferenceCurrency string `env:"REFERENCE_CURRENCY, default=CLP"`
}

type AuthConfig struct {
	// RedirectDelay is the pause between a successful login and the redirect.
	RedirectDelay time.Duration `env:"REDIRECT_DELAY, default=1s"`
	// ReloginDelay is the pause between auto-provisioning and the re-login.
	ReloginDelay time.Duration `env:"RELOGIN_DELAY, default=2s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
