// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MinSecretLength is the minimum accepted length of the token signing secret.
const MinSecretLength = 32

// Config holds all runtime settings. Every field is read from a
// SPENDTRACK_-prefixed environment variable.
type Config struct {
	Env           string        `env:"ENV" envDefault:"development"`
	Address       string        `env:"ADDRESS" envDefault:"localhost:8080"`
	DBPath        string        `env:"DB_PATH" envDefault:"./data/spendtrack.db"`
	JWTSecret     string        `env:"JWT_SECRET"`
	TokenDuration time.Duration `env:"TOKEN_DURATION" envDefault:"168h"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	Metrics       bool          `env:"METRICS" envDefault:"true"`
	// OTLPEndpoint enables trace export when set, e.g. http://localhost:4318/v1/traces.
	OTLPEndpoint string `env:"OTLP_ENDPOINT"`
}

// DefaultEnvFiles lists the dotenv files read when none are given: ./.env,
// then spendtrack.env in the user's config directory. Earlier files win.
func DefaultEnvFiles() []string {
	return []string{".env", filepath.Join(xdg.ConfigHome, "spendtrack", "spendtrack.env")}
}

// Load reads optional dotenv files and parses the environment into a
// validated Config. Missing dotenv files are not an error, and variables
// already set in the environment are never overridden.
func Load(dotenvPaths ...string) (*Config, error) {
	if len(dotenvPaths) == 0 {
		dotenvPaths = DefaultEnvFiles()
	}
	for _, path := range dotenvPaths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "SPENDTRACK_"}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if len(c.JWTSecret) < MinSecretLength {
		errs = append(errs, fmt.Errorf("SPENDTRACK_JWT_SECRET must be at least %d bytes", MinSecretLength))
	}
	if c.TokenDuration <= 0 {
		errs = append(errs, fmt.Errorf("SPENDTRACK_TOKEN_DURATION must be positive, got %s", c.TokenDuration))
	}
	if strings.TrimSpace(c.Address) == "" {
		errs = append(errs, errors.New("SPENDTRACK_ADDRESS is required"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("SPENDTRACK_DB_PATH is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Production reports whether cookies must carry the Secure attribute.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}
