package scenariogen

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a generator configuration fails validation.
var ErrInvalidConfig = errors.New("invalid generator config")

// Defaults mirror the mock pipeline this generator replaces: a 6x6
// satellite grid, 50 observable targets, and 200 scenarios spaced ten
// seconds apart.
const (
	DefaultCount       = 200
	DefaultStep        = 10 * time.Second
	DefaultGridRows    = 6
	DefaultGridCols    = 6
	DefaultTargetCount = 50

	DefaultMinSatEdges    = 10
	DefaultMaxSatEdges    = 30
	DefaultMinTargetEdges = 10
	DefaultMaxTargetEdges = 40
)

// Config controls scenario generation. The zero value is not usable;
// start from DefaultConfig and override fields as needed.
type Config struct {
	// Seed seeds the random source. Zero selects a time-based seed,
	// which makes runs non-reproducible.
	Seed int64

	// Count is the number of scenarios to generate.
	Count int

	// Start is the timestamp of the first scenario. The zero value
	// means "now", resolved once when the generator is constructed.
	Start time.Time

	// Step is the simulated time between consecutive scenarios.
	Step time.Duration

	// GridRows and GridCols shape the satellite id grid. Ids are
	// 111 + 10*row + col, so GridCols must not exceed 10.
	GridRows int
	GridCols int

	// TargetCount is the number of observable targets; target ids run
	// from 1 to TargetCount.
	TargetCount int

	// MinSatEdges/MaxSatEdges bound the number of inter-satellite
	// links per scenario, MinTargetEdges/MaxTargetEdges the number of
	// satellite-to-target observation links. Bounds are inclusive.
	MinSatEdges    int
	MaxSatEdges    int
	MinTargetEdges int
	MaxTargetEdges int
}

// DefaultConfig returns the generator defaults.
func DefaultConfig() Config {
	return Config{
		Count:          DefaultCount,
		Step:           DefaultStep,
		GridRows:       DefaultGridRows,
		GridCols:       DefaultGridCols,
		TargetCount:    DefaultTargetCount,
		MinSatEdges:    DefaultMinSatEdges,
		MaxSatEdges:    DefaultMaxSatEdges,
		MinTargetEdges: DefaultMinTargetEdges,
		MaxTargetEdges: DefaultMaxTargetEdges,
	}
}

// Validate checks that the configuration can generate well-formed
// scenarios.
func (c Config) Validate() error {
	if c.Count <= 0 {
		return fmt.Errorf("%w: count must be positive, got %d", ErrInvalidConfig, c.Count)
	}
	if c.Step <= 0 {
		return fmt.Errorf("%w: step must be positive, got %s", ErrInvalidConfig, c.Step)
	}
	if c.GridRows <= 0 || c.GridCols <= 0 {
		return fmt.Errorf("%w: grid must have positive dimensions, got %dx%d", ErrInvalidConfig, c.GridRows, c.GridCols)
	}
	if c.GridCols > 10 {
		return fmt.Errorf("%w: grid cols must not exceed 10, got %d", ErrInvalidConfig, c.GridCols)
	}
	if c.TargetCount <= 0 {
		return fmt.Errorf("%w: target count must be positive, got %d", ErrInvalidConfig, c.TargetCount)
	}
	if c.GridRows*c.GridCols < 2 {
		return fmt.Errorf("%w: grid must contain at least two satellites", ErrInvalidConfig)
	}
	if c.MinSatEdges < 1 || c.MaxSatEdges < c.MinSatEdges {
		return fmt.Errorf("%w: satellite edge bounds [%d,%d] are invalid", ErrInvalidConfig, c.MinSatEdges, c.MaxSatEdges)
	}
	if c.MinTargetEdges < 0 || c.MaxTargetEdges < c.MinTargetEdges {
		return fmt.Errorf("%w: target edge bounds [%d,%d] are invalid", ErrInvalidConfig, c.MinTargetEdges, c.MaxTargetEdges)
	}
	return nil
}

// configYAML is the on-disk shape of a generator config. Durations are
// expressed in seconds to keep the file format plain.
type configYAML struct {
	Seed           int64     `yaml:"seed"`
	Count          int       `yaml:"count"`
	Start          time.Time `yaml:"start"`
	StepSeconds    int       `yaml:"step_seconds"`
	GridRows       int       `yaml:"grid_rows"`
	GridCols       int       `yaml:"grid_cols"`
	TargetCount    int       `yaml:"target_count"`
	MinSatEdges    int       `yaml:"min_sat_edges"`
	MaxSatEdges    int       `yaml:"max_sat_edges"`
	MinTargetEdges int       `yaml:"min_target_edges"`
	MaxTargetEdges int       `yaml:"max_target_edges"`
}

// LoadConfig reads a YAML generator configuration. Absent keys keep
// their defaults; unknown keys are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	def := DefaultConfig()
	y := configYAML{
		Seed:           def.Seed,
		Count:          def.Count,
		Start:          def.Start,
		StepSeconds:    int(def.Step / time.Second),
		GridRows:       def.GridRows,
		GridCols:       def.GridCols,
		TargetCount:    def.TargetCount,
		MinSatEdges:    def.MinSatEdges,
		MaxSatEdges:    def.MaxSatEdges,
		MinTargetEdges: def.MinTargetEdges,
		MaxTargetEdges: def.MaxTargetEdges,
	}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&y); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg := Config{
		Seed:           y.Seed,
		Count:          y.Count,
		Start:          y.Start,
		Step:           time.Duration(y.StepSeconds) * time.Second,
		GridRows:       y.GridRows,
		GridCols:       y.GridCols,
		TargetCount:    y.TargetCount,
		MinSatEdges:    y.MinSatEdges,
		MaxSatEdges:    y.MaxSatEdges,
		MinTargetEdges: y.MinTargetEdges,
		MaxTargetEdges: y.MaxTargetEdges,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
