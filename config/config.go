// Package config holds the thresholds, weights and limits used by the
// telemetry, diagnosis and feedback packages.
package config

// RangeOrder selects how comfortable-range bounds are ordered
type RangeOrder string

const (
	// RangeOrderLexical sorts note names as strings, so "A3" sorts before
	// "C2". Kept as the default to match previously stored sessions.
	RangeOrderLexical RangeOrder = "lexical"
	// RangeOrderPitch sorts note names by MIDI number.
	RangeOrderPitch RangeOrder = "pitch"
)

// Config is the full analysis configuration. Every component takes its own
// section explicitly; nothing reads it from package state.
type Config struct {
	Telemetry TelemetryConfig `json:"telemetry" yaml:"telemetry"`
	Diagnosis DiagnosisConfig `json:"diagnosis" yaml:"diagnosis"`
	Feedback  FeedbackConfig  `json:"feedback" yaml:"feedback"`
	Pipeline  PipelineConfig  `json:"pipeline" yaml:"pipeline"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging"`
}

type TelemetryConfig struct {
	SampleIntervalMs float64 `json:"sample_interval_ms" yaml:"sample_interval_ms"` // assumed frame cadence
	InTuneCents      float64 `json:"in_tune_cents" yaml:"in_tune_cents"`
	SharpFlatCents   float64 `json:"sharp_flat_cents" yaml:"sharp_flat_cents"`

	// Onset detection uses detected frequency as an energy proxy
	OnsetThresholdHz  float64 `json:"onset_threshold_hz" yaml:"onset_threshold_hz"`
	TimingToleranceMs float64 `json:"timing_tolerance_ms" yaml:"timing_tolerance_ms"`

	// Range coverage
	MinNoteSamples        int        `json:"min_note_samples" yaml:"min_note_samples"`
	MissedAccuracy        float64    `json:"missed_accuracy" yaml:"missed_accuracy"`           // below: missed
	ComfortableAccuracy   float64    `json:"comfortable_accuracy" yaml:"comfortable_accuracy"` // above: comfortable
	ComfortableRangeOrder RangeOrder `json:"comfortable_range_order" yaml:"comfortable_range_order"`

	// Vibrato noise floors
	VibratoMinRateHz     float64 `json:"vibrato_min_rate_hz" yaml:"vibrato_min_rate_hz"`
	VibratoMinDepthCents float64 `json:"vibrato_min_depth_cents" yaml:"vibrato_min_depth_cents"`
}

// Bands are ascending cut lines for severity grading. A rule using bands
// triggers once its value exceeds Mild.
type Bands struct {
	Mild     float64 `json:"mild" yaml:"mild"`
	Moderate float64 `json:"moderate" yaml:"moderate"`
	Severe   float64 `json:"severe" yaml:"severe"`
}

// SeverityWeights rank triggered issues against each other
type SeverityWeights struct {
	Mild     int `json:"mild" yaml:"mild"`
	Moderate int `json:"moderate" yaml:"moderate"`
	Severe   int `json:"severe" yaml:"severe"`
}

type DiagnosisConfig struct {
	PitchBands     Bands `json:"pitch_bands" yaml:"pitch_bands"`         // |average cents|
	StabilityBands Bands `json:"stability_bands" yaml:"stability_bands"` // Hz² variance
	TimingBands    Bands `json:"timing_bands" yaml:"timing_bands"`       // |average offset| ms

	VibratoRateMaxHz  float64 `json:"vibrato_rate_max_hz" yaml:"vibrato_rate_max_hz"`
	AnticipationRatio float64 `json:"anticipation_ratio" yaml:"anticipation_ratio"` // early > late*ratio

	Weights SeverityWeights `json:"weights" yaml:"weights"`
}

// ScoreWeights combine the quick-feedback sub-scores
type ScoreWeights struct {
	Pitch     float64 `json:"pitch" yaml:"pitch"`
	Stability float64 `json:"stability" yaml:"stability"`
	Timing    float64 `json:"timing" yaml:"timing"`
}

type FeedbackConfig struct {
	InTuneCents             float64      `json:"in_tune_cents" yaml:"in_tune_cents"`
	PitchPenaltyPerCent     float64      `json:"pitch_penalty_per_cent" yaml:"pitch_penalty_per_cent"`
	StabilityPenaltyPerCent float64      `json:"stability_penalty_per_cent" yaml:"stability_penalty_per_cent"`
	TimingScore             float64      `json:"timing_score" yaml:"timing_score"` // placeholder, no onset alignment yet
	Weights                 ScoreWeights `json:"weights" yaml:"weights"`
}

type PipelineConfig struct {
	Workers         int `json:"workers" yaml:"workers"`
	MinValidSamples int `json:"min_valid_samples" yaml:"min_valid_samples"` // request-level check in ingest
}

type LoggingConfig struct {
	Level string `json:"level" yaml:"level"`
}

// Default returns the stock thresholds
func Default() *Config {
	return &Config{
		Telemetry: DefaultTelemetryConfig(),
		Diagnosis: DefaultDiagnosisConfig(),
		Feedback:  DefaultFeedbackConfig(),
		Pipeline: PipelineConfig{
			Workers:         4,
			MinValidSamples: 10,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		SampleIntervalMs:      100,
		InTuneCents:           25,
		SharpFlatCents:        25,
		OnsetThresholdHz:      100,
		TimingToleranceMs:     50,
		MinNoteSamples:        3,
		MissedAccuracy:        0.5,
		ComfortableAccuracy:   0.8,
		ComfortableRangeOrder: RangeOrderLexical,
		VibratoMinRateHz:      0.5,
		VibratoMinDepthCents:  5,
	}
}

func DefaultDiagnosisConfig() DiagnosisConfig {
	return DiagnosisConfig{
		PitchBands:        Bands{Mild: 10, Moderate: 20, Severe: 35},
		StabilityBands:    Bands{Mild: 15, Moderate: 30, Severe: 50},
		TimingBands:       Bands{Mild: 50, Moderate: 100, Severe: 200},
		VibratoRateMaxHz:  6.5,
		AnticipationRatio: 1.5,
		Weights:           SeverityWeights{Mild: 10, Moderate: 50, Severe: 100},
	}
}

func DefaultFeedbackConfig() FeedbackConfig {
	return FeedbackConfig{
		InTuneCents:             25,
		PitchPenaltyPerCent:     2,
		StabilityPenaltyPerCent: 5,
		TimingScore:             90,
		Weights:                 ScoreWeights{Pitch: 0.5, Stability: 0.3, Timing: 0.2},
	}
}
