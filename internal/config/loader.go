package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog/log"
)

// DefaultPath is the YAML file Load looks for when CONFIG_PATH is unset.
const DefaultPath = "config.yaml"

// Load builds the server configuration. Environment variables win over the
// YAML file, which wins over env-default tags.
//
// CONFIG_PATH names the YAML file. When it is unset, DefaultPath is used if
// present; a fresh checkout has only config.yaml.example, so running on env
// and defaults alone is the normal development case.
func Load() (*Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return LoadFile(path, false)
	}
	return LoadFile(DefaultPath, true)
}

// LoadFile reads path and then the environment. A missing file is an error
// unless optional is set.
func LoadFile(path string, optional bool) (*Config, error) {
	var cfg Config

	err := cleanenv.ReadConfig(path, &cfg)
	switch {
	case err == nil:
		log.Debug().Str("path", path).Msg("config file loaded")
	case optional && errors.Is(err, fs.ErrNotExist):
		log.Debug().Str("path", path).Msg("no config file, using env and defaults")
		cfg = Config{}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: env: %w", err)
		}
	default:
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}
