package qc

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Thresholds holds the tunable rule parameters. The defaults reproduce the
// standard rule behavior; an optional thresholds file can tighten or relax
// them per deployment.
type Thresholds struct {
	// DurationToleranceSecs is the maximum audio/video duration difference
	// in seconds before a mismatch warning is raised.
	DurationToleranceSecs float64 `yaml:"duration_tolerance_secs"`
}

// DefaultThresholds returns the standard rule thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DurationToleranceSecs: DefaultDurationToleranceSecs,
	}
}

// Validate checks threshold values for basic sanity.
func (t Thresholds) Validate() error {
	if t.DurationToleranceSecs <= 0 {
		return fmt.Errorf("duration_tolerance_secs must be positive, got %g", t.DurationToleranceSecs)
	}
	return nil
}

// LoadThresholds reads a YAML thresholds file. Fields omitted from the file
// keep their default values.
func LoadThresholds(path string) (Thresholds, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Thresholds{}, fmt.Errorf("read thresholds file: %w", err)
	}

	th := DefaultThresholds()
	if err := yaml.Unmarshal(raw, &th); err != nil {
		return Thresholds{}, fmt.Errorf("parse thresholds file: %w", err)
	}
	if err := th.Validate(); err != nil {
		return Thresholds{}, err
	}
	return th, nil
}
