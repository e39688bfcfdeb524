package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vocal.yaml")
	content := `
telemetry:
  comfortable_range_order: pitch
diagnosis:
  pitch_bands:
    mild: 5
    moderate: 15
    severe: 30
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Telemetry.ComfortableRangeOrder != RangeOrderPitch {
		t.Errorf("comfortable_range_order = %q, want pitch", cfg.Telemetry.ComfortableRangeOrder)
	}
	if cfg.Diagnosis.PitchBands != (Bands{Mild: 5, Moderate: 15, Severe: 30}) {
		t.Errorf("pitch_bands = %+v", cfg.Diagnosis.PitchBands)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q", cfg.Logging.Level)
	}
	if cfg.Feedback.TimingScore != 90 {
		t.Errorf("unrelated default lost: timing_score = %v", cfg.Feedback.TimingScore)
	}
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocal.json")
	if err := os.WriteFile(path, []byte(`{"pipeline":{"workers":2,"min_valid_samples":3}}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Pipeline.Workers != 2 || cfg.Pipeline.MinValidSamples != 3 {
		t.Errorf("pipeline = %+v", cfg.Pipeline)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero interval", func(c *Config) { c.Telemetry.SampleIntervalMs = 0 }},
		{"descending bands", func(c *Config) { c.Diagnosis.TimingBands = Bands{Mild: 200, Moderate: 100, Severe: 50} }},
		{"descending weights", func(c *Config) { c.Diagnosis.Weights.Severe = 1 }},
		{"weights do not sum", func(c *Config) { c.Feedback.Weights.Pitch = 0.9 }},
		{"unknown order", func(c *Config) { c.Telemetry.ComfortableRangeOrder = "random" }},
		{"no workers", func(c *Config) { c.Pipeline.Workers = 0 }},
		{"bad level", func(c *Config) { c.Logging.Level = "chatty" }},
		{"accuracy above one", func(c *Config) { c.Telemetry.ComfortableAccuracy = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("telemetry: [unclosed"), false); err == nil {
		t.Fatal("expected parse error")
	}
}
