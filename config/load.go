package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/RyanBlaney/sonido-vocal/logging"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Load reads a YAML or JSON file over the defaults, so a file only needs
// the keys it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data, strings.ToLower(filepath.Ext(path)) == ".json")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes config bytes over the defaults and validates the result.
func Parse(data []byte, isJSON bool) (*Config, error) {
	cfg := Default()
	if isJSON {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that thresholds are usable. All problems are reported
// together, each wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	t := c.Telemetry
	if t.SampleIntervalMs <= 0 {
		add("telemetry.sample_interval_ms must be positive, got %v", t.SampleIntervalMs)
	}
	if t.InTuneCents < 0 || t.SharpFlatCents < 0 {
		add("telemetry cent tolerances must not be negative")
	}
	if t.MinNoteSamples < 1 {
		add("telemetry.min_note_samples must be at least 1, got %d", t.MinNoteSamples)
	}
	if !unitInterval(t.MissedAccuracy) || !unitInterval(t.ComfortableAccuracy) {
		add("telemetry accuracies must lie in [0,1]")
	}
	switch t.ComfortableRangeOrder {
	case RangeOrderLexical, RangeOrderPitch:
	default:
		add("telemetry.comfortable_range_order %q is not %q or %q", t.ComfortableRangeOrder, RangeOrderLexical, RangeOrderPitch)
	}

	d := c.Diagnosis
	for _, nb := range []struct {
		name  string
		bands Bands
	}{
		{"pitch_bands", d.PitchBands},
		{"stability_bands", d.StabilityBands},
		{"timing_bands", d.TimingBands},
	} {
		b := nb.bands
		if !(b.Mild <= b.Moderate && b.Moderate <= b.Severe) {
			add("diagnosis.%s must ascend mild <= moderate <= severe, got %+v", nb.name, b)
		}
	}
	if w := d.Weights; !(w.Mild <= w.Moderate && w.Moderate <= w.Severe) {
		add("diagnosis.weights must ascend mild <= moderate <= severe, got %+v", w)
	}
	if d.AnticipationRatio < 0 {
		add("diagnosis.anticipation_ratio must not be negative")
	}

	f := c.Feedback
	if sum := f.Weights.Pitch + f.Weights.Stability + f.Weights.Timing; math.Abs(sum-1) > 1e-6 {
		add("feedback.weights must sum to 1, got %v", sum)
	}
	if f.TimingScore < 0 || f.TimingScore > 100 {
		add("feedback.timing_score must lie in [0,100], got %v", f.TimingScore)
	}

	if c.Pipeline.Workers < 1 {
		add("pipeline.workers must be at least 1, got %d", c.Pipeline.Workers)
	}
	if c.Pipeline.MinValidSamples < 0 {
		add("pipeline.min_valid_samples must not be negative")
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		add("logging.level: %v", err)
	}

	return errors.Join(errs...)
}

func unitInterval(v float64) bool {
	return v >= 0 && v <= 1
}
