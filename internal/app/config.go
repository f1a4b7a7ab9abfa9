package app

import (
	"errors"
	"fmt"
)

// Render modes.
const (
	ModePlain = "plain"
	ModeSafe  = "safe"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	LiteralPath string // hcl file or directory

	LogFormat   string
	LogLevel    string
	Mode        string
	WorkerCount int
	CheckKeys   bool
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LiteralPath == "" {
		return nil, errors.New("LiteralPath is a required configuration field and cannot be empty")
	}

	switch cfg.Mode {
	case "":
		cfg.Mode = ModePlain
	case ModePlain, ModeSafe:
	default:
		return nil, fmt.Errorf("invalid mode %q: must be %q or %q", cfg.Mode, ModePlain, ModeSafe)
	}

	if cfg.WorkerCount < 0 {
		return nil, fmt.Errorf("invalid worker count %d: must not be negative", cfg.WorkerCount)
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 1
	}

	return &cfg, nil
}
