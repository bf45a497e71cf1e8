package core

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

var ErrInvalidPolicy = errors.New("invalid validation policy")

// Policy collects every tunable threshold of the engine. Thresholds are
// inclusive lower bounds in [0,1]; values below them raise warnings, never
// errors. The two strategy bounds feed the per-strategy size policies.
type Policy struct {
	// LinkStrengthMin flags clusters whose average intra-cluster link
	// weight falls below it.
	LinkStrengthMin float64 `yaml:"link_strength_min"`
	// ObservationQualityMin flags clusters whose average observation
	// quality falls below it.
	ObservationQualityMin float64 `yaml:"observation_quality_min"`
	// MasterHealthMin flags masters whose health falls below it.
	MasterHealthMin float64 `yaml:"master_health_min"`
	// AvgHealthMin flags clusters whose mean member health falls below it.
	AvgHealthMin float64 `yaml:"avg_health_min"`

	// BalancedTolerance is how far a cluster size may deviate from the
	// even share (total satellites / cluster count) under the balanced
	// strategy before a warning is raised.
	BalancedTolerance int `yaml:"balanced_tolerance"`
	// QualityMaxSize caps cluster sizes under the quality strategy.
	QualityMaxSize int `yaml:"quality_max_size"`
}

// DefaultPolicy returns the thresholds the upstream pipeline was tuned with.
func DefaultPolicy() Policy {
	return Policy{
		LinkStrengthMin:       0.3,
		ObservationQualityMin: 0.5,
		MasterHealthMin:       0.7,
		AvgHealthMin:          0.6,
		BalancedTolerance:     2,
		QualityMaxSize:        8,
	}
}

// Validate checks the policy values are usable.
func (p Policy) Validate() error {
	check := func(name string, v float64) error {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s %v outside [0,1]", ErrInvalidPolicy, name, v)
		}
		return nil
	}
	if err := check("link_strength_min", p.LinkStrengthMin); err != nil {
		return err
	}
	if err := check("observation_quality_min", p.ObservationQualityMin); err != nil {
		return err
	}
	if err := check("master_health_min", p.MasterHealthMin); err != nil {
		return err
	}
	if err := check("avg_health_min", p.AvgHealthMin); err != nil {
		return err
	}
	if p.BalancedTolerance < 0 {
		return fmt.Errorf("%w: balanced_tolerance must not be negative", ErrInvalidPolicy)
	}
	if p.QualityMaxSize < 1 {
		return fmt.Errorf("%w: quality_max_size must be at least 1", ErrInvalidPolicy)
	}
	return nil
}

// LoadPolicy reads a YAML policy document. Keys that are absent keep their
// defaults, so a file only needs to name the thresholds it changes. Unknown
// keys are rejected to catch typos early.
func LoadPolicy(r io.Reader) (Policy, error) {
	p := DefaultPolicy()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty document: defaults apply.
			return DefaultPolicy(), nil
		}
		return Policy{}, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}

	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}
