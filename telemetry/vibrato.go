package telemetry

import (
	"github.com/RyanBlaney/sonido-vocal/model"
	"github.com/RyanBlaney/sonido-vocal/pitch"
	"github.com/RyanBlaney/sonido-vocal/stats"
)

type vibratoMetrics struct {
	variance float64 // Hz²
	rate     float64 // Hz
	depth    float64 // cents
}

// vibratoMetrics measures raw frequency variance and estimates vibrato from
// the pitch contour. Rate counts direction changes of the contour, two per
// cycle; depth is the spread of the contour in cents around its mean.
func (a *Aggregator) vibratoMetrics(valid []model.PerformanceSample) vibratoMetrics {
	freqs := model.DetectedFrequencies(valid)
	m := vibratoMetrics{variance: stats.PopVariance(freqs)}

	durationSeconds := float64(len(freqs)) * a.config.SampleIntervalMs / 1000.0
	if durationSeconds > 0 {
		crossings := stats.SignChanges(stats.Diff(freqs))
		m.rate = float64(crossings) / (2 * durationSeconds)
	}

	mean := stats.Mean(freqs)
	cents := make([]float64, len(freqs))
	for i, f := range freqs {
		cents[i] = pitch.FrequencyToCents(f, mean)
	}
	m.depth = stats.PopStdDev(cents)

	if m.rate < a.config.VibratoMinRateHz {
		m.rate = 0
	}
	if m.depth < a.config.VibratoMinDepthCents {
		m.depth = 0
	}
	return m
}
