package spectral

import "math"

// SpectralContrast computes the dB distance between the strongest and weakest
// non-zero spectral components: 20*log10(max/min)
type SpectralContrast struct{}

// NewSpectralContrast creates a contrast calculator
func NewSpectralContrast() *SpectralContrast {
	return &SpectralContrast{}
}

// Compute returns the contrast in dB over non-zero bins, 0 when the spectrum
// has no non-zero bins
func (sc *SpectralContrast) Compute(spectrum []float64) float64 {
	maxMag := 0.0
	minMag := math.Inf(1)

	for _, m := range spectrum {
		if m <= 0 {
			continue
		}
		if m > maxMag {
			maxMag = m
		}
		if m < minMag {
			minMag = m
		}
	}

	if maxMag == 0 || math.IsInf(minMag, 1) {
		return 0.0
	}

	return 20.0 * math.Log10(maxMag/minMag)
}

// ComputeFrames processes multiple frames
func (sc *SpectralContrast) ComputeFrames(spectrogram [][]float64) []float64 {
	contrasts := make([]float64, len(spectrogram))
	for t, spectrum := range spectrogram {
		contrasts[t] = sc.Compute(spectrum)
	}
	return contrasts
}
