// Package config loads the driver configuration from a TOML file.
package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// MCTS holds the recognized MCTS player options.
type MCTS struct {
	MaxTimeS    float64 `toml:"max_time_s"`
	ExpandK     int     `toml:"expand_k"`
	NSims       int     `toml:"n_sims"`
	Exploration float64 `toml:"exploration"`
	Workers     int     `toml:"workers"`
	Seed        int64   `toml:"seed"`
}

// MTDF holds the recognized MTD(f) player options.
type MTDF struct {
	MaxTimeS float64 `toml:"max_time_s"`
	MaxDepth int     `toml:"max_depth"`
}

// Config is the self-play driver configuration.
type Config struct {
	Games    int  `toml:"games"`
	Symmetry bool `toml:"symmetry"`
	MCTS     MCTS `toml:"mcts"`
	MTDF     MTDF `toml:"mtdf"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Games:    20,
		Symmetry: true,
		MCTS: MCTS{
			MaxTimeS:    2.0,
			ExpandK:     1,
			NSims:       1,
			Exploration: 1.0,
		},
		MTDF: MTDF{
			MaxTimeS: 2.0,
			MaxDepth: 32,
		},
	}
}

// Load reads a TOML file over the defaults. An empty path returns the
// defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "loading config %s", path)
	}
	return cfg, nil
}

// MCTSMaxTime returns the MCTS per-move budget as a duration.
func (c Config) MCTSMaxTime() time.Duration {
	return time.Duration(c.MCTS.MaxTimeS * float64(time.Second))
}

// MTDFMaxTime returns the MTD(f) per-move budget as a duration.
func (c Config) MTDFMaxTime() time.Duration {
	return time.Duration(c.MTDF.MaxTimeS * float64(time.Second))
}
