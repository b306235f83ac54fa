package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/narscore/pkg/narscore/internalerr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 20, cfg.MaxEvidentialBaseLength)
	assert.Equal(t, 5, cfg.AnticipationWindow)
	assert.Equal(t, 0.51, cfg.PositiveThreshold)
	assert.Equal(t, 0.5, cfg.NegativeThreshold)
	assert.Equal(t, 0.8, cfg.ProjectionDecayEvent)
	assert.Equal(t, 0.95, cfg.ProjectionDecayDesire)
	assert.Equal(t, 1.0, cfg.EvidentialHorizon)
	assert.False(t, cfg.Debug)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero base", func(c *Config) { c.MaxEvidentialBaseLength = 0 }},
		{"zero window", func(c *Config) { c.AnticipationWindow = 0 }},
		{"negative buffer", func(c *Config) { c.BufferCapacity = -1 }},
		{"decay above one", func(c *Config) { c.ProjectionDecayEvent = 1.5 }},
		{"negative threshold", func(c *Config) { c.DecisionThreshold = -0.1 }},
		{"zero horizon", func(c *Config) { c.EvidentialHorizon = 0 }},
		{"thresholds crossed", func(c *Config) { c.NegativeThreshold = 0.9 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, internalerr.ErrInvalidConfig))
		})
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, "nars.yaml", `
anticipation_window: 8
projection_decay_event: 0.7
debug: true
partners_per_cycle: 3
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.AnticipationWindow)
	assert.Equal(t, 0.7, cfg.ProjectionDecayEvent)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 3, cfg.PartnersPerCycle)
	assert.Equal(t, 20, cfg.MaxEvidentialBaseLength, "untouched keys keep defaults")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("/nonexistent/nars.yaml")
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "anticipation_window: [1, 2"))
	assert.True(t, errors.Is(err, internalerr.ErrInvalidConfig))

	_, err = Load(writeFile(t, "range.yaml", "buffer_capacity: 0\n"))
	assert.True(t, errors.Is(err, internalerr.ErrInvalidConfig))
}

func TestLoaderAllEmpty(t *testing.T) {
	comp, err := (&Loader{}).Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), comp.Config)
	assert.Empty(t, comp.Seed)
}

func TestLoaderReadsFiles(t *testing.T) {
	loader := Loader{
		ConfigPath: writeFile(t, "nars.yaml", "temporal_window: 4\n"),
		SeedPath:   writeFile(t, "seed.nal", "(a-->b).\n(b-->c).\n"),
	}
	comp, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, 4, comp.Config.TemporalWindow)
	assert.Equal(t, "(a-->b).\n(b-->c).\n", comp.Seed)
}

func TestLoaderMissingSeed(t *testing.T) {
	_, err := (&Loader{SeedPath: "/nonexistent/seed.nal"}).Load()
	assert.Error(t, err)
}
