// Package stats wraps the gonum statistics used by the analysis packages.
// All functions are total: empty input yields 0 rather than NaN.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// PopVariance calculates the population variance (divides by n)
func PopVariance(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	_, variance := stat.PopMeanVariance(data, nil)
	return variance
}

// PopStdDev calculates the population standard deviation
func PopStdDev(data []float64) float64 {
	return math.Sqrt(PopVariance(data))
}

// MeanAbs returns the mean of the absolute values
func MeanAbs(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range data {
		sum += math.Abs(v)
	}
	return sum / float64(len(data))
}

// MinMax returns the smallest and largest values. ok is false for empty input.
func MinMax(data []float64) (lo, hi float64, ok bool) {
	if len(data) == 0 {
		return 0, 0, false
	}
	return floats.Min(data), floats.Max(data), true
}

// Diff returns first differences x[i+1]-x[i]
func Diff(data []float64) []float64 {
	if len(data) < 2 {
		return []float64{}
	}
	d := make([]float64, len(data)-1)
	floats.SubTo(d, data[1:], data[:len(data)-1])
	return d
}

// SignChanges counts strict sign changes between neighbours. Zeros neither
// start nor end a crossing.
func SignChanges(data []float64) int {
	count := 0
	for i := 1; i < len(data); i++ {
		if data[i-1]*data[i] < 0 {
			count++
		}
	}
	return count
}

// Fraction returns count/total as a percentage, 0 when total is 0
func Fraction(count, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(count) / float64(total) * 100.0
}

// ClampMin returns v, or floor when v is below it
func ClampMin(v, floor float64) float64 {
	if v < floor {
		return floor
	}
	return v
}
