package spectral

import "math"

// SpectralBandwidth computes the energy-weighted RMS deviation of bin
// frequencies from the spectral centroid
type SpectralBandwidth struct {
	sampleRate int
	centroid   *SpectralCentroid
}

// NewSpectralBandwidth creates a bandwidth calculator
func NewSpectralBandwidth(sampleRate int) *SpectralBandwidth {
	return &SpectralBandwidth{
		sampleRate: sampleRate,
		centroid:   NewSpectralCentroid(sampleRate),
	}
}

// Compute calculates spectral bandwidth for a single magnitude spectrum
func (sb *SpectralBandwidth) Compute(spectrum []float64) float64 {
	if len(spectrum) == 0 {
		return 0.0
	}

	centroid := sb.centroid.Compute(spectrum)

	numerator := 0.0
	denominator := 0.0
	for k, m := range spectrum {
		freq := BinFrequency(k, len(spectrum), sb.sampleRate)
		diff := freq - centroid
		numerator += m * diff * diff
		denominator += m
	}

	if denominator == 0 {
		return 0.0
	}

	return math.Sqrt(numerator / denominator)
}

// ComputeFrames processes multiple frames
func (sb *SpectralBandwidth) ComputeFrames(spectrogram [][]float64) []float64 {
	bandwidths := make([]float64, len(spectrogram))
	for t, spectrum := range spectrogram {
		bandwidths[t] = sb.Compute(spectrum)
	}
	return bandwidths
}
