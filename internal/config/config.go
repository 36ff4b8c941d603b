package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Backend identifiers accepted for SOLVER_BACKEND.
const (
	BackendSimplex = "simplex"
	BackendHighs   = "highs"
	BackendRemote  = "remote"
)

// Config represents the full application configuration surface.
type Config struct {
	Server ServerConfig
	Solver SolverConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// SolverConfig selects and tunes the LP backend.
type SolverConfig struct {
	Backend          string
	TimeLimitSeconds float64
	RemoteURL        string
	RemoteTimeout    time.Duration
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	timeLimit, err := floatEnv("SOLVER_TIME_LIMIT_SECONDS", 0)
	if err != nil {
		return nil, err
	}
	remoteTimeout, err := floatEnv("SOLVER_REMOTE_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Solver: SolverConfig{
			Backend:          getenvWithDefault("SOLVER_BACKEND", BackendSimplex),
			TimeLimitSeconds: timeLimit,
			RemoteURL:        os.Getenv("SOLVER_REMOTE_URL"),
			RemoteTimeout:    time.Duration(remoteTimeout * float64(time.Second)),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Solver.Backend {
	case BackendSimplex, BackendHighs:
	case BackendRemote:
		if c.Solver.RemoteURL == "" {
			return errors.New("SOLVER_REMOTE_URL must be provided for the remote backend")
		}
	default:
		return fmt.Errorf("unknown SOLVER_BACKEND %q", c.Solver.Backend)
	}

	if c.Solver.TimeLimitSeconds < 0 {
		return errors.New("SOLVER_TIME_LIMIT_SECONDS must not be negative")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func floatEnv(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return value, nil
}
