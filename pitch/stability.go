package pitch

import "math"

// StableStepCents is the largest frame-to-frame move still counted as stable
const StableStepCents = 10.0

func validFrequencies(freqs []float64) []float64 {
	valid := make([]float64, 0, len(freqs))
	for _, f := range freqs {
		if validFrequency(f) {
			valid = append(valid, f)
		}
	}
	return valid
}

// stepCents returns |cents| between each pair of consecutive valid frequencies.
func stepCents(freqs []float64) []float64 {
	valid := validFrequencies(freqs)
	if len(valid) < 2 {
		return nil
	}
	steps := make([]float64, len(valid)-1)
	for i := 1; i < len(valid); i++ {
		steps[i-1] = math.Abs(FrequencyToCents(valid[i], valid[i-1]))
	}
	return steps
}

// CalculateJitter is the mean absolute cents step between consecutive valid
// frequencies, or 0 with fewer than two.
func CalculateJitter(freqs []float64) float64 {
	steps := stepCents(freqs)
	if len(steps) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range steps {
		sum += s
	}
	return sum / float64(len(steps))
}

// CalculateStabilityPercentage is the share of consecutive steps under 10
// cents, as a percentage. With fewer than two valid frequencies it returns
// 100, which means "no evidence of instability" rather than proven stability.
func CalculateStabilityPercentage(freqs []float64) float64 {
	steps := stepCents(freqs)
	if len(steps) == 0 {
		return 100
	}
	stable := 0
	for _, s := range steps {
		if s < StableStepCents {
			stable++
		}
	}
	return float64(stable) / float64(len(steps)) * 100
}
