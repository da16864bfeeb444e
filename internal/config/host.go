package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Host holds the settings of the terminal host. Every field can be set
// from the environment; command-line flags override them.
type Host struct {
	FPS      int    `env:"TETRIS_FPS"       envDefault:"60"`
	Seed     int64  `env:"TETRIS_SEED"`
	DBPath   string `env:"TETRIS_DB"        envDefault:"~/.tetris/replays.db"`
	Rules    string `env:"TETRIS_CONFIG"`
	LogLevel string `env:"TETRIS_LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"TETRIS_LOG_FILE"  envDefault:"~/.tetris/tetris.log"`
}

// DefaultHost returns the host settings used when the environment sets
// nothing.
func DefaultHost() Host {
	return Host{
		FPS:      60,
		DBPath:   "~/.tetris/replays.db",
		LogLevel: "info",
		LogFile:  "~/.tetris/tetris.log",
	}
}

// LoadHost reads the host settings from the environment.
func LoadHost() (Host, error) {
	var h Host
	if err := env.Parse(&h); err != nil {
		return DefaultHost(), fmt.Errorf("parse env: %w", err)
	}
	return h, nil
}
