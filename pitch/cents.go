package pitch

import "math"

// DefaultInTuneCents is the tolerance used by IsInTune
const DefaultInTuneCents = 25.0

func validFrequency(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// FrequencyToCents returns 1200*log2(detected/target). Invalid input (non-finite
// or non-positive on either side) yields 0 so aggregates never turn NaN.
func FrequencyToCents(detected, target float64) float64 {
	if !validFrequency(detected) || !validFrequency(target) {
		return 0
	}
	return 1200 * math.Log2(detected/target)
}

// IsInTune reports whether detected is within 25 cents of target.
func IsInTune(detected, target float64) bool {
	return IsInTuneWithin(detected, target, DefaultInTuneCents)
}

// IsInTuneWithin reports whether detected is within thresholdCents of target.
// A negative threshold never matches.
func IsInTuneWithin(detected, target, thresholdCents float64) bool {
	if thresholdCents < 0 {
		return false
	}
	return math.Abs(FrequencyToCents(detected, target)) <= thresholdCents
}
