// Package model holds the value types that flow through the vocal analysis
// pipeline: raw performance samples in, telemetry, diagnosis and feedback
// out. None of them carry behaviour beyond small accessors.
package model

import "math"

// Target note sentinels used by the capture layer when no melody note is
// active for a frame.
const (
	NoNote     = "N/A"
	NoNoteDash = "-"
)

// PerformanceSample is one pitch-detection frame (~100ms) of a session.
type PerformanceSample struct {
	TimestampMs int64 `json:"timestamp" yaml:"timestamp" msgpack:"timestamp"` // ms since recording start

	// DetectedFrequency is 0 (or null on the wire) when no voiced pitch was found.
	DetectedFrequency float64 `json:"detectedFrequency" yaml:"detectedFrequency" msgpack:"detectedFrequency"`
	TargetFrequency   float64 `json:"targetFrequency" yaml:"targetFrequency" msgpack:"targetFrequency"`
	TargetNote        string  `json:"targetNote" yaml:"targetNote" msgpack:"targetNote"`
}

// Valid reports whether the frame carries a usable detected pitch.
func (s PerformanceSample) Valid() bool {
	return s.DetectedFrequency > 0 && !math.IsInf(s.DetectedFrequency, 0) && !math.IsNaN(s.DetectedFrequency)
}

// HasTargetNote reports whether a melody note was active for the frame.
func (s PerformanceSample) HasTargetNote() bool {
	switch s.TargetNote {
	case "", NoNote, NoNoteDash:
		return false
	}
	return true
}

// ValidSamples returns the valid frames in their original order.
func ValidSamples(samples []PerformanceSample) []PerformanceSample {
	valid := make([]PerformanceSample, 0, len(samples))
	for _, s := range samples {
		if s.Valid() {
			valid = append(valid, s)
		}
	}
	return valid
}

// DetectedFrequencies extracts the detected frequency of each sample.
func DetectedFrequencies(samples []PerformanceSample) []float64 {
	freqs := make([]float64, len(samples))
	for i, s := range samples {
		freqs[i] = s.DetectedFrequency
	}
	return freqs
}
