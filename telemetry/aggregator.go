// Package telemetry turns a finished session's pitch samples into a
// SessionTelemetry record.
package telemetry

import (
	"github.com/RyanBlaney/sonido-vocal/config"
	"github.com/RyanBlaney/sonido-vocal/logging"
	"github.com/RyanBlaney/sonido-vocal/model"
)

// Aggregator computes session telemetry. It holds only immutable
// configuration, so one instance can serve concurrent sessions.
type Aggregator struct {
	config config.TelemetryConfig
	logger logging.Logger
}

// NewAggregator creates an aggregator with the given thresholds
func NewAggregator(cfg config.TelemetryConfig) *Aggregator {
	return &Aggregator{
		config: cfg,
		logger: logging.WithFields(logging.Fields{
			"component": "telemetry_aggregator",
		}),
	}
}

// NewDefaultAggregator creates an aggregator with stock thresholds
func NewDefaultAggregator() *Aggregator {
	return NewAggregator(config.DefaultTelemetryConfig())
}

// Compute derives telemetry from samples ordered by capture time and the
// nominal song duration in seconds. Samples are only read. A session without
// any valid sample yields model.EmptyTelemetry.
func (a *Aggregator) Compute(samples []model.PerformanceSample, songDurationSeconds float64) model.SessionTelemetry {
	logger := a.logger.WithFields(logging.Fields{
		"function": "Compute",
		"samples":  len(samples),
	})

	if !timestampsOrdered(samples) {
		logger.Warn("Samples are not in timestamp order; adjacency metrics use them as given")
	}

	valid := model.ValidSamples(samples)
	if len(valid) == 0 {
		logger.Debug("No valid samples, returning empty telemetry")
		return model.EmptyTelemetry(songDurationSeconds)
	}

	pm := a.pitchMetrics(valid)
	rm := a.rhythmMetrics(samples)
	vm := a.vibratoMetrics(valid)
	rc := a.rangeCoverage(valid)
	singing, silence := a.durations(len(valid), songDurationSeconds)

	t := model.SessionTelemetry{
		PitchDeviationAverage: pm.average,
		PitchDeviationStdDev:  pm.stdDev,
		SharpNotesCount:       pm.sharp,
		FlatNotesCount:        pm.flat,
		RhythmicOffsetAverage: rm.average,
		EarlyNotesCount:       rm.early,
		LateNotesCount:        rm.late,
		StabilityVariance:     vm.variance,
		VibratoRate:           vm.rate,
		VibratoDepth:          vm.depth,
		RangeCoverage:         rc,
		TotalDuration:         songDurationSeconds,
		ActiveSingingTime:     singing,
		SilenceTime:           silence,
	}

	logger.Debug("Telemetry computed", logging.Fields{
		"valid_samples":   len(valid),
		"pitch_avg_cents": t.PitchDeviationAverage,
		"onsets":          rm.onsets,
		"vibrato_rate":    t.VibratoRate,
		"notes_missed":    len(rc.NotesMissed),
	})

	return t
}

// durations returns singing and silence time in seconds. Singing time
// assumes one sample per configured interval.
func (a *Aggregator) durations(validCount int, songDurationSeconds float64) (singing, silence float64) {
	singing = float64(validCount) * a.config.SampleIntervalMs / 1000.0
	silence = songDurationSeconds - singing
	if silence < 0 {
		silence = 0
	}
	return singing, silence
}

func timestampsOrdered(samples []model.PerformanceSample) bool {
	for i := 1; i < len(samples); i++ {
		if samples[i].TimestampMs < samples[i-1].TimestampMs {
			return false
		}
	}
	return true
}
