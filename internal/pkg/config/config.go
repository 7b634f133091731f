package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port         string `env:"PORT,          default=8080"`
	Env          string `env:"ENV,           default=development"`
	LogLevel     string `env:"LOG_LEVEL,     default=info"`
	ClientSecret string `env:"CLIENT_SECRET"`

	Backend   BackendConfig
	Store     StoreConfig
	Workspace WorkspaceConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=http://localhost:8080/api"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=15s"`
}

type StoreConfig struct {
	Driver        string        `env:"STORE_DRIVER,    default=redis"`
	SubmitLockTTL time.Duration `env:"SUBMIT_LOCK_TTL, default=30s"`
}

type WorkspaceConfig struct {
	CacheSize      int `env:"WORKSPACE_CACHE_SIZE, default=10000"`
	RefreshWorkers int `env:"REFRESH_WORKERS,      default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=storefront"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,      default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,        default=0"`
	StateTTL time.Duration `env:"REDIS_STATE_TTL, default=0s"`
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if c.ClientSecret == "" {
		return errors.New("CLIENT_SECRET is required")
	}
	switch c.Store.Driver {
	case StoreRedis, StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("STORE_DRIVER %q must be one of redis, mongo, memory", c.Store.Driver)
	}
	if c.Workspace.CacheSize <= 0 {
		return errors.New("WORKSPACE_CACHE_SIZE must be positive")
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads and validates configuration from lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
