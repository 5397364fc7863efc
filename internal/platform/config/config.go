package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends.
const (
	StoreFile  = "file"
	StoreRedis = "redis"
)

// Server captures process-level configuration.
type Server struct {
	Addr           string `env:"EVENTDESK_ADDR"            envDefault:":8080"`
	DataDir        string `env:"EVENTDESK_DATA_DIR"        envDefault:"event_data"`
	CredentialDir  string `env:"EVENTDESK_CREDENTIAL_DIR"`
	CredentialKind string `env:"EVENTDESK_CREDENTIAL_KIND" envDefault:"qr"`
	Store          string `env:"EVENTDESK_STORE"           envDefault:"file"`
	LogLevel       string `env:"EVENTDESK_LOG_LEVEL"       envDefault:"info"`
	LogFormat      string `env:"EVENTDESK_LOG_FORMAT"      envDefault:"json"`
	AuditBuffer    int    `env:"EVENTDESK_AUDIT_BUFFER"    envDefault:"256"`

	ShutdownTimeout time.Duration `env:"EVENTDESK_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Redis RedisConfig
}

// RedisConfig configures the optional Redis snapshot backend.
type RedisConfig struct {
	URL          string        `env:"EVENTDESK_REDIS_URL"`
	PoolSize     int           `env:"EVENTDESK_REDIS_POOL_SIZE"      envDefault:"10"`
	MinIdleConns int           `env:"EVENTDESK_REDIS_MIN_IDLE_CONNS" envDefault:"1"`
	DialTimeout  time.Duration `env:"EVENTDESK_REDIS_DIAL_TIMEOUT"   envDefault:"5s"`
	ReadTimeout  time.Duration `env:"EVENTDESK_REDIS_READ_TIMEOUT"   envDefault:"3s"`
	WriteTimeout time.Duration `env:"EVENTDESK_REDIS_WRITE_TIMEOUT"  envDefault:"3s"`
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints env tags cannot express.
func (c Server) Validate() error {
	switch c.Store {
	case StoreFile:
	case StoreRedis:
		if c.Redis.URL == "" {
			return errors.New("EVENTDESK_REDIS_URL is required when EVENTDESK_STORE=redis")
		}
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", c.Store, StoreFile, StoreRedis)
	}
	if c.DataDir == "" {
		return errors.New("EVENTDESK_DATA_DIR must not be empty")
	}
	return nil
}

// CredentialPath is where credentials are written: the configured directory,
// or generated_ids under the data directory.
func (c Server) CredentialPath() string {
	if c.CredentialDir != "" {
		return c.CredentialDir
	}
	return strings.TrimRight(c.DataDir, "/") + "/generated_ids"
}
