package diagnosis

import (
	"github.com/RyanBlaney/sonido-vocal/config"
	"github.com/RyanBlaney/sonido-vocal/model"
	"github.com/RyanBlaney/sonido-vocal/pitch"
)

// SeverityFor grades value against ascending cut lines. The mild line is
// not consulted: anything below moderate is mild. Rules use it as their
// trigger instead.
func SeverityFor(value, mild, moderate, severe float64) model.Severity {
	switch {
	case value >= severe:
		return model.SeveritySevere
	case value >= moderate:
		return model.SeverityModerate
	default:
		return model.SeverityMild
	}
}

func severityForBands(value float64, b config.Bands) model.Severity {
	return SeverityFor(value, b.Mild, b.Moderate, b.Severe)
}

// Weight returns the ranking weight of a severity
func Weight(s model.Severity, w config.SeverityWeights) int {
	switch s {
	case model.SeveritySevere:
		return w.Severe
	case model.SeverityModerate:
		return w.Moderate
	default:
		return w.Mild
	}
}

// AffectedRangeFor classifies missed notes by register: both ends missed is
// full, one end is high or low, neither is mid.
func AffectedRangeFor(missed []string) model.AffectedRange {
	hasLow, hasHigh := false, false
	for _, n := range missed {
		if pitch.IsLowNote(n) {
			hasLow = true
		}
		if pitch.IsHighNote(n) {
			hasHigh = true
		}
	}
	switch {
	case hasLow && hasHigh:
		return model.RangeFull
	case hasHigh:
		return model.RangeHigh
	case hasLow:
		return model.RangeLow
	default:
		return model.RangeMid
	}
}

func missedNotes(missed []string, keep func(string) bool) []string {
	var out []string
	for _, n := range missed {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}
