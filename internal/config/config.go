package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/odelab/internal/ode"
)

const (
	DefaultA         = 1.0
	DefaultB         = -1.0
	DefaultC         = 3.0
	DefaultH         = 0.5
	DefaultTarget    = 3.5
	DefaultY0        = 1.0
	DefaultReference = 1.597

	// The source front-end capped the step size at 1.0 (0.01 granularity).
	// Enforced here, not in the engine.
	MaxH = 1.0
)

type Config struct {
	Form      string  `yaml:"form"`
	A         float64 `yaml:"a"`
	B         float64 `yaml:"b"`
	C         float64 `yaml:"c"`
	X0        float64 `yaml:"x0"`
	Y0        float64 `yaml:"y0"`
	Target    float64 `yaml:"target"`
	H         float64 `yaml:"h"`
	Order     string  `yaml:"order"`
	Reference float64 `yaml:"reference"`
}

func DefaultConfig() *Config {
	return &Config{
		Form:      "linear",
		A:         DefaultA,
		B:         DefaultB,
		C:         DefaultC,
		X0:        0,
		Y0:        DefaultY0,
		Target:    DefaultTarget,
		H:         DefaultH,
		Order:     "rk4",
		Reference: DefaultReference,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

func (c *Config) Validate() error {
	if c.H <= 0 {
		return fmt.Errorf("h must be positive, got %f", c.H)
	}
	if c.H > MaxH {
		return fmt.Errorf("h must be at most %.1f, got %f", MaxH, c.H)
	}
	switch c.Form {
	case "separable", "linear":
	default:
		return fmt.Errorf("%w: %q", ode.ErrUnknownForm, c.Form)
	}
	if c.Form == "linear" && c.A == 0 {
		return fmt.Errorf("linear form requires a != 0")
	}
	return nil
}

// Equation builds the configured right-hand side.
func (c *Config) Equation() (ode.Equation, error) {
	switch c.Form {
	case "separable":
		return ode.NewSeparable(c.A), nil
	case "linear":
		return ode.NewFirstOrderLinear(c.A, c.B, c.C), nil
	default:
		return nil, fmt.Errorf("%w: %q", ode.ErrUnknownForm, c.Form)
	}
}

// Initial returns the configured initial value point.
func (c *Config) Initial() ode.Point {
	return ode.Point{X: c.X0, Y: c.Y0}
}
