package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sirsim/internal/dynamo"
	"github.com/san-kum/sirsim/internal/integrators"
	"github.com/san-kum/sirsim/internal/models"
	"github.com/san-kum/sirsim/internal/sim"
)

const (
	DefaultOutput      = "SimulacionCOVID.gif"
	DefaultIntegrator  = "rk45"
	DefaultTolerance   = 1e-8
	DefaultInitialStep = 0.1
	DefaultGridEnd     = 140.0
	DefaultGridPoints  = 140
	DefaultFrameDelay  = 1
	DefaultFPS         = 24
)

type Config struct {
	// Rates are optional; when unset the console asks for them.
	InfectionRate *float64 `yaml:"infection_rate,omitempty"`
	RecoveryRate  *float64 `yaml:"recovery_rate,omitempty"`

	Population  PopulationConfig `yaml:"population"`
	Grid        GridConfig       `yaml:"grid"`
	Integrator  string           `yaml:"integrator"`
	Tolerance   float64          `yaml:"tolerance"`
	InitialStep float64          `yaml:"initial_step"`
	Output      string           `yaml:"output"`
	Figure      FigureConfig     `yaml:"figure"`
	FrameDelay  int              `yaml:"frame_delay"`
	FPS         int              `yaml:"fps"`
	Repeat      bool             `yaml:"repeat"`
}

// PopulationConfig holds the census figures the population constant is
// interpolated from.
type PopulationConfig struct {
	BasePopulation     float64 `yaml:"base_population"`
	ReferenceTotal     float64 `yaml:"reference_total"`
	ReferenceProjected float64 `yaml:"reference_projected"`
}

type GridConfig struct {
	Start    float64 `yaml:"start"`
	End      float64 `yaml:"end"`
	Points   int     `yaml:"points"`
	Endpoint bool    `yaml:"endpoint"`
}

type FigureConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

func DefaultConfig() *Config {
	return &Config{
		Population: PopulationConfig{
			BasePopulation:     models.BasePopulation,
			ReferenceTotal:     models.ReferenceTotal,
			ReferenceProjected: models.ReferenceProjection,
		},
		Grid: GridConfig{
			Start:    0,
			End:      DefaultGridEnd,
			Points:   DefaultGridPoints,
			Endpoint: true,
		},
		Integrator:  DefaultIntegrator,
		Tolerance:   DefaultTolerance,
		InitialStep: DefaultInitialStep,
		Output:      DefaultOutput,
		Figure: FigureConfig{
			Width:  1200,
			Height: 600,
			Title:  "SIR model",
		},
		FrameDelay: DefaultFrameDelay,
		FPS:        DefaultFPS,
		Repeat:     true,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) SetRates(b, k float64) {
	c.InfectionRate = &b
	c.RecoveryRate = &k
}

// HasRates reports whether both rates are set.
func (c *Config) HasRates() bool {
	return c.InfectionRate != nil && c.RecoveryRate != nil
}

// PopulationSize interpolates the population constant from the census
// figures.
func (c *Config) PopulationSize() float64 {
	p := c.Population
	return models.InterpolatePopulation(p.BasePopulation, p.ReferenceTotal, p.ReferenceProjected)
}

// Params returns the model parameters for a normalized run. HasRates must
// hold.
func (c *Config) Params() models.Params {
	return models.Params{N: 1, B: *c.InfectionRate, K: *c.RecoveryRate}
}

func (c *Config) TimeGrid() (sim.Grid, error) {
	return sim.NewGrid(c.Grid.Start, c.Grid.End, c.Grid.Points, c.Grid.Endpoint)
}

func (c *Config) Validate() error {
	if c.InfectionRate != nil {
		if err := checkRate("infection_rate", *c.InfectionRate); err != nil {
			return err
		}
	}
	if c.RecoveryRate != nil {
		if err := checkRate("recovery_rate", *c.RecoveryRate); err != nil {
			return err
		}
	}
	if p := c.Population; p.BasePopulation <= 0 || p.ReferenceTotal <= 0 || p.ReferenceProjected <= 0 {
		return fmt.Errorf("population figures must be positive")
	}
	if c.Grid.Points < 1 {
		return fmt.Errorf("grid needs at least one point, got %d", c.Grid.Points)
	}
	if c.Grid.End <= c.Grid.Start {
		return fmt.Errorf("grid end %v must exceed start %v", c.Grid.End, c.Grid.Start)
	}
	if _, err := integrators.Get(c.Integrator); err != nil {
		return err
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %v", c.Tolerance)
	}
	if c.InitialStep <= 0 {
		return fmt.Errorf("initial step must be positive, got %v", c.InitialStep)
	}
	switch ext := strings.ToLower(filepath.Ext(c.Output)); ext {
	case ".gif", ".avi":
	default:
		return fmt.Errorf("unsupported output format %q (use .gif or .avi)", ext)
	}
	if c.Figure.Width <= 0 || c.Figure.Height <= 0 {
		return fmt.Errorf("figure size %dx%d must be positive", c.Figure.Width, c.Figure.Height)
	}
	return nil
}

func checkRate(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("%s=%v: %w", name, v, dynamo.ErrParameterBounds)
	}
	return nil
}
