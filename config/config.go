package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverBadger   = "badger"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	GinMode    string `env:"GIN_MODE" envDefault:"debug"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"badger"`
	StorePath   string `env:"STORE_PATH" envDefault:"data/store"`
	DBURL       string `env:"DB_URL"`
	DBDebug     bool   `env:"DB_DEBUG"`

	// The admin gate keeps casual visitors out of the admin pages. It is not
	// access control: anyone with the password, or with the store, can edit.
	AdminPassword     string        `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
	GateSecret        string        `env:"GATE_SECRET"`
	GateTTL           time.Duration `env:"GATE_TTL" envDefault:"12h"`

	SeedOnEmpty  bool   `env:"SEED_ON_EMPTY" envDefault:"true"`
	NATSURL      string `env:"NATS_URL"`
	OTELEndpoint string `env:"OTEL_ENDPOINT"`
}

var (
	ErrUnknownDriver   = errors.New("config: unknown STORE_DRIVER")
	ErrMissingDBURL    = errors.New("config: DB_URL is required for the postgres driver")
	ErrMissingPassword = errors.New("config: ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be set")
)

// LoadEnv reads .env when present and parses the environment into a Config.
func LoadEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}
	return Parse()
}

// Parse reads the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverBadger, DriverSQLite:
	case DriverPostgres:
		if c.DBURL == "" {
			return ErrMissingDBURL
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.StoreDriver)
	}
	return nil
}

// ValidateGate is only needed by commands that serve the admin pages.
func (c *Config) ValidateGate() error {
	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		return ErrMissingPassword
	}
	return nil
}
