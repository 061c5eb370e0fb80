// Package config loads routing constants and output defaults from the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"connroute/routing"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read when Load is called without files. It may be absent.
const DefaultEnvFile = ".env"

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds everything the CLI and viewer can be configured with.
type Config struct {
	Routing routing.Config
	Output  OutputConfig
}

// OutputConfig holds exporter and renderer defaults.
type OutputConfig struct {
	Format string  `validate:"required"`
	Scale  float64 `validate:"gt=0"` // PNG pixels per diagram unit
	CellX  float64 `validate:"gt=0"` // diagram units per text column
	CellY  float64 `validate:"gt=0"` // diagram units per text row
	Margin int     `validate:"gte=0"`
	ASCII  bool
}

// routingRules checks the routing constants without tagging the engine's
// own Config type.
type routingRules struct {
	MinStub           float64 `validate:"gte=0"`
	BaseRadius        float64 `validate:"gte=0"`
	RadiusRatio       float64 `validate:"gt=0,lte=0.5"`
	MinRadius         float64 `validate:"gte=0"`
	SnapThreshold     float64 `validate:"gte=0"`
	CurveMaxControl   float64 `validate:"gte=0"`
	CurveControlRatio float64 `validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Routing: routing.DefaultConfig(),
		Output: OutputConfig{
			Format: "ascii",
			Scale:  1,
			CellX:  10,
			CellY:  20,
			Margin: 1,
		},
	}
}

// Load reads the given .env files, or DefaultEnvFile when none are given,
// and applies CONNROUTE_* variables on top of the defaults. Variables set in
// the process environment win over the files.
func Load(files ...string) (*Config, error) {
	values := map[string]string{}

	explicit := len(files) > 0
	if !explicit {
		files = []string{DefaultEnvFile}
	}
	for _, f := range files {
		m, err := godotenv.Read(f)
		if err != nil {
			if !explicit && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
		for k, v := range m {
			values[k] = v
		}
	}

	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	})
}

// FromLookup builds a configuration from a variable lookup function.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	e := &env{lookup: lookup}

	r := &cfg.Routing
	e.float("CONNROUTE_MIN_STUB", &r.MinStub)
	e.float("CONNROUTE_CORNER_RADIUS", &r.BaseRadius)
	e.float("CONNROUTE_RADIUS_RATIO", &r.RadiusRatio)
	e.float("CONNROUTE_MIN_RADIUS", &r.MinRadius)
	e.float("CONNROUTE_SNAP", &r.SnapThreshold)
	e.bool("CONNROUTE_NO_SNAP", &r.DisableSnap)
	e.float("CONNROUTE_CURVE_MAX_CONTROL", &r.CurveMaxControl)
	e.float("CONNROUTE_CURVE_RATIO", &r.CurveControlRatio)

	o := &cfg.Output
	e.str("CONNROUTE_FORMAT", &o.Format)
	e.float("CONNROUTE_SCALE", &o.Scale)
	e.float("CONNROUTE_CELL_WIDTH", &o.CellX)
	e.float("CONNROUTE_CELL_HEIGHT", &o.CellY)
	e.int("CONNROUTE_MARGIN", &o.Margin)
	e.bool("CONNROUTE_ASCII", &o.ASCII)

	if len(e.errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(e.errs...))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every value is in range.
func (c *Config) Validate() error {
	v := validator.New()
	rules := routingRules{
		MinStub:           c.Routing.MinStub,
		BaseRadius:        c.Routing.BaseRadius,
		RadiusRatio:       c.Routing.RadiusRatio,
		MinRadius:         c.Routing.MinRadius,
		SnapThreshold:     c.Routing.SnapThreshold,
		CurveMaxControl:   c.Routing.CurveMaxControl,
		CurveControlRatio: c.Routing.CurveControlRatio,
	}
	if err := v.Struct(rules); err != nil {
		return fmt.Errorf("%w: routing: %w", ErrInvalidConfig, err)
	}
	if err := v.Struct(c.Output); err != nil {
		return fmt.Errorf("%w: output: %w", ErrInvalidConfig, err)
	}
	return nil
}

type env struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *env) get(key string) (string, bool) {
	v, ok := e.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *env) str(key string, dst *string) {
	if v, ok := e.get(key); ok {
		*dst = strings.ToLower(v)
	}
}

func (e *env) float(key string, dst *float64) {
	v, ok := e.get(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %q is not a number", key, v))
		return
	}
	*dst = f
}

func (e *env) int(key string, dst *int) {
	v, ok := e.get(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %q is not an integer", key, v))
		return
	}
	*dst = n
}

func (e *env) bool(key string, dst *bool) {
	v, ok := e.get(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %q is not a boolean", key, v))
		return
	}
	*dst = b
}
