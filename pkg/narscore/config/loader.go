package config

import (
	"fmt"
	"os"
)

// Loader gathers the files a reasoner starts from.
type Loader struct {
	ConfigPath string
	SeedPath   string
}

// Components holds everything a Loader read.
type Components struct {
	Config Config
	// Seed is Narsese text, one sentence per line, loaded before the first cycle.
	Seed string
}

// Load reads the configured files. An empty path falls back to the defaults
// or to no seed.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{Config: Default()}

	if l.ConfigPath != "" {
		cfg, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		comp.Config = cfg
	}

	if l.SeedPath != "" {
		data, err := os.ReadFile(l.SeedPath)
		if err != nil {
			return nil, fmt.Errorf("load seed: %w", err)
		}
		comp.Seed = string(data)
	}

	return comp, nil
}
