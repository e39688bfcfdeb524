package telemetry

import (
	"github.com/RyanBlaney/sonido-vocal/model"
	"github.com/RyanBlaney/sonido-vocal/pitch"
	"github.com/RyanBlaney/sonido-vocal/stats"
)

type pitchMetrics struct {
	average float64 // signed cents
	stdDev  float64
	sharp   int
	flat    int
}

// pitchMetrics measures signed cents deviation of each valid sample from
// its target.
func (a *Aggregator) pitchMetrics(valid []model.PerformanceSample) pitchMetrics {
	cents := make([]float64, len(valid))
	var m pitchMetrics
	for i, s := range valid {
		c := pitch.FrequencyToCents(s.DetectedFrequency, s.TargetFrequency)
		cents[i] = c
		switch {
		case c > a.config.SharpFlatCents:
			m.sharp++
		case c < -a.config.SharpFlatCents:
			m.flat++
		}
	}
	m.average = stats.Mean(cents)
	m.stdDev = stats.PopStdDev(cents)
	return m
}
