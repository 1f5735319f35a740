// Package config loads runtime configuration from environment variables.
// Every front end shares the same Config; fields that do not apply to a
// given host are simply ignored by it.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Config is the engine's environment-derived configuration.
type Config struct {
	// TickRate is the simulation rate in frames per second.
	TickRate int `env:"BARRAGE_TICK_RATE" envDefault:"60"`

	// StagePath points at a stage YAML file. Empty selects the embedded
	// opening stage.
	StagePath string `env:"BARRAGE_STAGE"`

	// ScoreDB is the SQLite hiscore database path.
	ScoreDB string `env:"BARRAGE_SCORE_DB" envDefault:"barrage.db"`

	// Addr is the dev server listen address.
	Addr string `env:"BARRAGE_ADDR" envDefault:":8080"`

	// WebDir is the static asset directory served by the dev server.
	WebDir string `env:"BARRAGE_WEB_DIR" envDefault:"web"`

	// HoldMillis is how long a terminal key press counts as held, since
	// terminals deliver no key-release events.
	HoldMillis int `env:"BARRAGE_HOLD_MS" envDefault:"150"`
}

// Parse loads configuration from the environment.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
// It provides a consistent fatal-exit pattern for CLI entry points.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
