package telemetry

import (
	"github.com/RyanBlaney/sonido-vocal/model"
	"github.com/RyanBlaney/sonido-vocal/stats"
)

type rhythmMetrics struct {
	average float64 // ms, - early / + late
	early   int
	late    int
	onsets  int
}

// rhythmMetrics scans every sample, voiced or not, for onsets: the detected
// frequency rising from below the threshold to at or above it while no note
// is sounding. A note ends when the frequency falls back below.
func (a *Aggregator) rhythmMetrics(samples []model.PerformanceSample) rhythmMetrics {
	threshold := a.config.OnsetThresholdHz
	var offsets []float64
	inNote := false

	for i := 1; i < len(samples); i++ {
		prev := energy(samples[i-1])
		cur := energy(samples[i])

		if !inNote && prev < threshold && cur >= threshold {
			actual := float64(samples[i].TimestampMs)
			offsets = append(offsets, actual-expectedOnsetMs(samples[i]))
			inNote = true
		} else if inNote && cur < threshold {
			inNote = false
		}
	}

	m := rhythmMetrics{onsets: len(offsets)}
	if len(offsets) == 0 {
		return m
	}
	m.average = stats.Mean(offsets)
	for _, off := range offsets {
		switch {
		case off < -a.config.TimingToleranceMs:
			m.early++
		case off > a.config.TimingToleranceMs:
			m.late++
		}
	}
	return m
}

// expectedOnsetMs is where the melody expects the onset to land. Samples do
// not carry note start times yet, so this is the sample's own timestamp and
// every offset is 0.
// TODO: align against the song's note start times once the capture layer
// sends them with each session.
func expectedOnsetMs(s model.PerformanceSample) float64 {
	return float64(s.TimestampMs)
}

// energy uses detected frequency as a loudness proxy; unvoiced frames count
// as silent.
func energy(s model.PerformanceSample) float64 {
	if !s.Valid() {
		return 0
	}
	return s.DetectedFrequency
}
