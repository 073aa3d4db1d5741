package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "stationhub/backend/libs/config"
)

const (
	defaultPort        = "8080"
	defaultJWTExpiry   = time.Hour
	defaultOwnerTTL    = 5 * time.Minute
	defaultMaxPageSize = 100
)

// Config represents service configuration loaded from YAML/env.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"STATIONS_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN          string `yaml:"dsn" env:"STATIONS_POSTGRES_DSN"`
		Migrate      bool   `yaml:"migrate" env:"STATIONS_POSTGRES_MIGRATE"`
		MaxOpenConns int    `yaml:"maxOpenConns" env:"STATIONS_POSTGRES_MAX_OPEN_CONNS"`
	} `yaml:"database"`
	JWT struct {
		Secret    string        `yaml:"secret" env:"STATIONS_JWT_SECRET"`
		ExpiresIn time.Duration `yaml:"expiresIn" env:"STATIONS_JWT_EXPIRES_IN"`
	} `yaml:"jwt"`
	Redis struct {
		Addr     string        `yaml:"addr" env:"STATIONS_REDIS_ADDR"`
		Password string        `yaml:"password" env:"STATIONS_REDIS_PASSWORD"`
		DB       int           `yaml:"db" env:"STATIONS_REDIS_DB"`
		TTL      time.Duration `yaml:"ttl" env:"STATIONS_REDIS_TTL"`
	} `yaml:"redis"`
	Pagination struct {
		MaxLimit int `yaml:"maxLimit" env:"STATIONS_MAX_PAGE_SIZE"`
	} `yaml:"pagination"`
}

// Load reads configuration using the shared config loader.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = defaultPort
	cfg.Database.Migrate = true
	cfg.JWT.ExpiresIn = defaultJWTExpiry
	cfg.Redis.TTL = defaultOwnerTTL
	cfg.Pagination.MaxLimit = defaultMaxPageSize

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("config: database DSN is required")
	}
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return errors.New("config: jwt secret is required")
	}
	if c.Pagination.MaxLimit < 0 {
		return errors.New("config: pagination maxLimit must not be negative")
	}
	if c.JWT.ExpiresIn <= 0 {
		c.JWT.ExpiresIn = defaultJWTExpiry
	}
	if c.Redis.TTL <= 0 {
		c.Redis.TTL = defaultOwnerTTL
	}
	return nil
}

// HTTPAddress ensures we always return host:port formatted string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = defaultPort
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// OwnerCacheEnabled reports whether a redis address was configured.
func (c *Config) OwnerCacheEnabled() bool {
	return strings.TrimSpace(c.Redis.Addr) != ""
}
