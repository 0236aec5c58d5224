package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Series reductions used by the feature aggregator, gonum-backed.
// All moments here are population (divide by n) moments; the calibration
// constants downstream were tuned against population statistics.

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Variance calculates the population variance of a slice
func Variance(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	mean := stat.Mean(data, nil)
	return stat.MomentAbout(2, data, mean, nil)
}

// Range returns max - min, 0 for an empty slice
func Range(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Max(data) - floats.Min(data)
}

// Positive filters a series down to its strictly positive entries.
// Pitch statistics run on voiced (non-zero) frames only.
func Positive(data []float64) []float64 {
	out := make([]float64, 0, len(data))
	for _, v := range data {
		if v > 0 {
			out = append(out, v)
		}
	}
	return out
}

// LocalMaxima returns the indices i with data[i] > data[i-1] and
// data[i] > data[i+1]. Endpoints are never maxima.
func LocalMaxima(data []float64) []int {
	if len(data) < 3 {
		return []int{}
	}

	var peaks []int
	for i := 1; i < len(data)-1; i++ {
		if data[i] > data[i-1] && data[i] > data[i+1] {
			peaks = append(peaks, i)
		}
	}
	return peaks
}

// UpwardCrossings counts transitions from below to at-or-above the threshold
func UpwardCrossings(data []float64, threshold float64) int {
	crossings := 0
	for i := 1; i < len(data); i++ {
		if data[i-1] < threshold && data[i] >= threshold {
			crossings++
		}
	}
	return crossings
}

// FractionBelow returns the fraction of entries strictly below the threshold
func FractionBelow(data []float64, threshold float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	below := 0
	for _, v := range data {
		if v < threshold {
			below++
		}
	}
	return float64(below) / float64(len(data))
}

// MeanRelativeChange returns the mean of |x[i]-x[i-1]| / x[i-1] over
// consecutive pairs where both entries are positive. This is the common form
// of jitter (on pitch contours) and shimmer (on energy envelopes).
func MeanRelativeChange(data []float64) float64 {
	sum := 0.0
	pairs := 0

	for i := 1; i < len(data); i++ {
		if data[i-1] > 0 && data[i] > 0 {
			sum += math.Abs(data[i]-data[i-1]) / data[i-1]
			pairs++
		}
	}

	if pairs == 0 {
		return 0.0
	}
	return sum / float64(pairs)
}
