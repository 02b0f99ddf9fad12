package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/sirsim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "rk45", cfg.Integrator)
	assert.Equal(t, "SimulacionCOVID.gif", cfg.Output)
	assert.Equal(t, 140, cfg.Grid.Points)
	assert.True(t, cfg.Grid.Endpoint)
	assert.True(t, cfg.Repeat)
	assert.False(t, cfg.HasRates())
	assert.NoError(t, cfg.Validate())
	assert.InDelta(t, 849035.79, cfg.PopulationSize(), 1e-6)
}

func TestGetPreset(t *testing.T) {
	r, ok := GetPreset("azuay")
	require.True(t, ok)
	assert.Equal(t, 0.3, r.B)
	assert.Equal(t, 0.1, r.K)

	_, ok = GetPreset("nonexistent")
	assert.False(t, ok)
}

func TestListPresets(t *testing.T) {
	assert.Equal(t, []string{"azuay", "contained", "fast", "slow"}, ListPresets())
}

func TestPresetsAreValid(t *testing.T) {
	for _, name := range ListPresets() {
		r, _ := GetPreset(name)
		cfg := DefaultConfig()
		cfg.SetRates(r.B, r.K)
		assert.NoError(t, cfg.Validate(), name)
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := DefaultConfig()
	cfg.SetRates(0.25, 0.05)
	cfg.Integrator = "rk4"
	cfg.Output = "out.avi"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.True(t, loaded.HasRates())
	assert.Equal(t, 0.25, loaded.Params().B)
	assert.Equal(t, 0.05, loaded.Params().K)
	assert.Equal(t, "rk4", loaded.Integrator)
	assert.Equal(t, "out.avi", loaded.Output)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("infection_rate: 0.4\ngrid:\n  points: 50\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.InfectionRate)
	assert.Equal(t, 0.4, *cfg.InfectionRate)
	assert.Nil(t, cfg.RecoveryRate)
	assert.False(t, cfg.HasRates())
	assert.Equal(t, 50, cfg.Grid.Points)
	assert.Equal(t, DefaultGridEnd, cfg.Grid.End)
	assert.Equal(t, "rk45", cfg.Integrator)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestTimeGrid(t *testing.T) {
	g, err := DefaultConfig().TimeGrid()
	require.NoError(t, err)
	assert.Equal(t, 140, g.Len())
	assert.Equal(t, 140.0, g.At(139))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"rate above one", func(c *Config) { c.SetRates(1.5, 0.1) }},
		{"negative rate", func(c *Config) { c.SetRates(0.3, -0.1) }},
		{"nan rate", func(c *Config) { c.SetRates(math.NaN(), 0.1) }},
		{"no points", func(c *Config) { c.Grid.Points = 0 }},
		{"reversed grid", func(c *Config) { c.Grid.End = -1 }},
		{"unknown integrator", func(c *Config) { c.Integrator = "leapfrog" }},
		{"bad extension", func(c *Config) { c.Output = "out.mp4" }},
		{"zero tolerance", func(c *Config) { c.Tolerance = 0 }},
		{"empty figure", func(c *Config) { c.Figure.Width = 0 }},
		{"zero population", func(c *Config) { c.Population.BasePopulation = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateSingleRate(t *testing.T) {
	high, low := 1.5, -0.2

	cfg := DefaultConfig()
	cfg.InfectionRate = &high
	assert.ErrorIs(t, cfg.Validate(), dynamo.ErrParameterBounds)

	cfg = DefaultConfig()
	cfg.RecoveryRate = &low
	assert.ErrorIs(t, cfg.Validate(), dynamo.ErrParameterBounds)

	ok := 0.4
	cfg = DefaultConfig()
	cfg.InfectionRate = &ok
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsSingleOutOfRangeRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("infection_rate: 2\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.HasRates())
	assert.ErrorIs(t, cfg.Validate(), dynamo.ErrParameterBounds)
}
