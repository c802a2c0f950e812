package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Solver          string `env:"SOLVER" envDefault:"cbc"`
	SolverTimeout   int    `env:"SOLVER_TIMEOUT" envDefault:"60"` // seconds, 0 disables the deadline
	SolverConfig    string `env:"SOLVER_CONFIG" envDefault:""`    // path to config.json, empty means next to the executable
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
	StrictFlightIds bool   `env:"STRICT_FLIGHT_IDS" envDefault:"false"`
	MaxVariables    int    `env:"MAX_VARIABLES" envDefault:"2000000"`
	MetricsFile     string `env:"METRICS_FILE" envDefault:""`
}

// LoadConfig reads CREW_* variables, after loading a .env file when one exists
func LoadConfig(envFiles ...string) (*Config, error) {
	// Missing .env files are fine, the environment alone is a valid source
	_ = godotenv.Load(envFiles...)

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "CREW_"}); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// Only the first error keeps logs readable
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) Timeout() time.Duration {
	return time.Duration(cfg.SolverTimeout) * time.Second
}
