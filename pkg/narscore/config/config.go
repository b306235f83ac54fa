// Package config holds the tunable parameters of a reasoner and loads them
// from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/narscore/pkg/narscore/internalerr"
)

// Config is the full parameter set of a reasoner.
type Config struct {
	MaxEvidentialBaseLength int     `yaml:"max_evidential_base_length"`
	AnticipationWindow      int     `yaml:"anticipation_window"`
	PositiveThreshold       float64 `yaml:"positive_threshold"`
	NegativeThreshold       float64 `yaml:"negative_threshold"`
	ProjectionDecayEvent    float64 `yaml:"projection_decay_event"`
	ProjectionDecayDesire   float64 `yaml:"projection_decay_desire"`
	Debug                   bool    `yaml:"debug"`

	EvidentialHorizon  float64 `yaml:"evidential_horizon"`
	BufferCapacity     int     `yaml:"buffer_capacity"`
	TemporalWindow     int     `yaml:"temporal_window"`
	ConceptCapacity    int     `yaml:"concept_capacity"`
	BeliefsPerConcept  int     `yaml:"beliefs_per_concept"`
	InferencesPerCycle int     `yaml:"inferences_per_cycle"`
	PartnersPerCycle   int     `yaml:"partners_per_cycle"`
	DecisionThreshold  float64 `yaml:"decision_threshold"`
}

// Default returns the parameters a reasoner runs with when nothing is configured.
func Default() Config {
	return Config{
		MaxEvidentialBaseLength: 20,
		AnticipationWindow:      5,
		PositiveThreshold:       0.51,
		NegativeThreshold:       0.5,
		ProjectionDecayEvent:    0.8,
		ProjectionDecayDesire:   0.95,

		EvidentialHorizon:  1,
		BufferCapacity:     1000,
		TemporalWindow:     10,
		ConceptCapacity:    1000,
		BeliefsPerConcept:  5,
		InferencesPerCycle: 1,
		PartnersPerCycle:   5,
		DecisionThreshold:  0.5,
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: parse %s: %w", internalerr.ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that every parameter is in range.
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value int
	}{
		{"max_evidential_base_length", c.MaxEvidentialBaseLength},
		{"anticipation_window", c.AnticipationWindow},
		{"buffer_capacity", c.BufferCapacity},
		{"temporal_window", c.TemporalWindow},
		{"concept_capacity", c.ConceptCapacity},
		{"beliefs_per_concept", c.BeliefsPerConcept},
		{"inferences_per_cycle", c.InferencesPerCycle},
		{"partners_per_cycle", c.PartnersPerCycle},
	}
	for _, p := range positive {
		if p.value < 1 {
			return fmt.Errorf("%w: %s must be at least 1, got %d", internalerr.ErrInvalidConfig, p.name, p.value)
		}
	}

	unit := []struct {
		name  string
		value float64
	}{
		{"positive_threshold", c.PositiveThreshold},
		{"negative_threshold", c.NegativeThreshold},
		{"projection_decay_event", c.ProjectionDecayEvent},
		{"projection_decay_desire", c.ProjectionDecayDesire},
		{"decision_threshold", c.DecisionThreshold},
	}
	for _, p := range unit {
		if p.value < 0 || p.value > 1 {
			return fmt.Errorf("%w: %s must be in [0,1], got %g", internalerr.ErrInvalidConfig, p.name, p.value)
		}
	}

	if c.EvidentialHorizon <= 0 {
		return fmt.Errorf("%w: evidential_horizon must be positive, got %g", internalerr.ErrInvalidConfig, c.EvidentialHorizon)
	}
	if c.NegativeThreshold > c.PositiveThreshold {
		return fmt.Errorf("%w: negative_threshold %g above positive_threshold %g",
			internalerr.ErrInvalidConfig, c.NegativeThreshold, c.PositiveThreshold)
	}
	return nil
}
