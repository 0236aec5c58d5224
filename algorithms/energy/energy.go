package energy

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Analyzer computes loudness-related descriptors of sample buffers and frames
type Analyzer struct {
	clipMargin float64
}

// NewAnalyzer creates an energy analyzer.
// clipMargin is the distance from full scale within which a sample counts as
// clipped; 0.02 covers converters that limit just below the rails.
func NewAnalyzer() *Analyzer {
	return &Analyzer{clipMargin: 0.02}
}

// RMS calculates root mean square energy of one frame
func (a *Analyzer) RMS(frame []float64) float64 {
	if len(frame) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, s := range frame {
		sumSquares += s * s
	}

	return math.Sqrt(sumSquares / float64(len(frame)))
}

// RMSFrames returns RMS energy per frame
func (a *Analyzer) RMSFrames(frames [][]float64) []float64 {
	energies := make([]float64, len(frames))
	for i, frame := range frames {
		energies[i] = a.RMS(frame)
	}
	return energies
}

// PeakVolume returns the maximum absolute deviation from the zero level,
// scaled to 0-100. Samples are expected in [-1, 1].
func (a *Analyzer) PeakVolume(samples []float64) float64 {
	if len(samples) == 0 {
		return 0.0
	}

	peak := 0.0
	for _, s := range samples {
		if abs := math.Abs(s); abs > peak {
			peak = abs
		}
	}

	return math.Min(100.0, peak*100.0)
}

// ClippingRatio returns the percentage (0-100) of raw samples within the clip
// margin of either rail. Computed on untapered samples.
func (a *Analyzer) ClippingRatio(samples []float64) float64 {
	if len(samples) == 0 {
		return 0.0
	}

	clipped := 0
	limit := 1.0 - a.clipMargin
	for _, s := range samples {
		if math.Abs(s) >= limit {
			clipped++
		}
	}

	return 100.0 * float64(clipped) / float64(len(samples))
}

// SilenceRatio returns the percentage (0-100) of samples whose magnitude falls
// below the adaptive threshold 0.2 * meanVolume. The threshold follows the
// running mean rather than a fixed floor so quiet speakers are not flagged as
// silent wholesale.
func (a *Analyzer) SilenceRatio(samples []float64, meanVolume float64) float64 {
	if len(samples) == 0 {
		return 100.0
	}
	if meanVolume <= 0 {
		return 100.0
	}

	threshold := 0.2 * meanVolume
	silent := 0
	for _, s := range samples {
		if math.Abs(s) < threshold {
			silent++
		}
	}

	return 100.0 * float64(silent) / float64(len(samples))
}

// DynamicRange returns the spread of a peak-volume history:
// max(peaks) - min(peaks)
func (a *Analyzer) DynamicRange(peaks []float64) float64 {
	if len(peaks) == 0 {
		return 0.0
	}
	return floats.Max(peaks) - floats.Min(peaks)
}

// MeanAbs returns the mean absolute amplitude, the running-volume measure the
// silence threshold adapts to
func (a *Analyzer) MeanAbs(samples []float64) float64 {
	if len(samples) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, s := range samples {
		sum += math.Abs(s)
	}

	return sum / float64(len(samples))
}
