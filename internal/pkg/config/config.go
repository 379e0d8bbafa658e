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
	// BaseURL is used to build links in outgoing mail. It is required when
	// mail is actually sent; in log mode the request host is used instead.
	BaseURL string `env:"BASE_URL"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Session SessionConfig
	Reset   ResetConfig
	Mail    MailConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017/?replicaSet=rs0"`
	Database string `env:"MONGO_DB,  default=playverse"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,      default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,        default=0"`
	// PoolSize of 0 keeps go-redis' default of ten connections per CPU.
	PoolSize int `env:"REDIS_POOL_SIZE, default=0"`
}

type SessionConfig struct {
	Secret     string        `env:"SESSION_SECRET, required"`
	CookieName string        `env:"SESSION_COOKIE, default=playverse_session"`
	TTL        time.Duration `env:"SESSION_TTL,    default=24h"`
	FlashTTL   time.Duration `env:"FLASH_TTL,      default=10m"`
}

type ResetConfig struct {
	TokenTTL time.Duration `env:"RESET_TOKEN_TTL, default=24h"`
}

type MailConfig struct {
	// Mode is "log" (messages are only logged) or "smtp".
	Mode     string        `env:"MAIL_MODE,     default=log"`
	Host     string        `env:"SMTP_HOST"`
	Port     int           `env:"SMTP_PORT,     default=587"`
	Username string        `env:"SMTP_USERNAME"`
	Password string        `env:"SMTP_PASSWORD"`
	From     string        `env:"SMTP_FROM,     default=no-reply@playverse.local"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT,  default=10s"`
}

// Secure reports whether cookies should carry the Secure attribute.
func (c *Config) Secure() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Mail.Mode != "log" && cfg.Mail.Mode != "smtp" {
		return nil, fmt.Errorf("config: MAIL_MODE must be log or smtp, got %q", cfg.Mail.Mode)
	}
	if cfg.Mail.Mode == "smtp" {
		if cfg.Mail.Host == "" {
			return nil, fmt.Errorf("config: SMTP_HOST is required when MAIL_MODE=smtp")
		}
		// Reset links must not be derived from the client-supplied Host header.
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("config: BASE_URL is required when MAIL_MODE=smtp")
		}
	}
	return &cfg, nil
}
