package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"regexp"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig   `envPrefix:"SERVER_"`
	Commerce CommerceConfig `envPrefix:"COMMERCE_"`
	Log      LogConfig      `envPrefix:"LOG_"`
}

type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080" validate:"required,numeric"`
	Host string `env:"HOST" envDefault:"0.0.0.0"`

	// CORSOrigins is a regexp of origins allowed to read /api, empty disables CORS.
	CORSOrigins   string `env:"CORS_ORIGINS"`
	PprofEnabled  bool   `env:"PPROF_ENABLED" envDefault:"false"`
	StatsdAddress string `env:"STATSD_ADDRESS" validate:"omitempty,hostname_port"`
}

func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

func (s ServerConfig) CORSPattern() (*regexp.Regexp, error) {
	if s.CORSOrigins == "" {
		return nil, nil
	}
	return regexp.Compile(s.CORSOrigins)
}

// CommerceConfig configures the hosted catalog API client.
type CommerceConfig struct {
	BaseURL    string        `env:"BASE_URL" envDefault:"https://api.chec.io/v1" validate:"required,url"`
	PublicKey  string        `env:"PUBLIC_KEY,required" json:"-" validate:"required"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"10s" validate:"gt=0"`
	RetryCount int           `env:"RETRY_COUNT" envDefault:"0" validate:"gte=0,lte=5"`
}

type LogConfig struct {
	Level       string `env:"LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Development bool   `env:"DEVELOPMENT" envDefault:"false"`
}

func Load() (*Config, error) {
	// .env is optional, real environment wins
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if _, err := cfg.Server.CORSPattern(); err != nil {
		return nil, fmt.Errorf("validate config: cors origins: %w", err)
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
