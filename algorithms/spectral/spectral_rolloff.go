package spectral

// SpectralRolloff computes the frequency below which a fixed fraction of the
// spectral energy is concentrated
type SpectralRolloff struct {
	sampleRate int
	threshold  float64 // Cumulative energy fraction, 0.85 by default
}

// NewSpectralRolloff creates a rolloff calculator with the standard 85% threshold
func NewSpectralRolloff(sampleRate int) *SpectralRolloff {
	return &SpectralRolloff{
		sampleRate: sampleRate,
		threshold:  0.85,
	}
}

// Compute returns the smallest bin frequency at which cumulative squared
// magnitude reaches the threshold fraction of total energy
func (sr *SpectralRolloff) Compute(spectrum []float64) float64 {
	if len(spectrum) == 0 {
		return 0.0
	}

	totalEnergy := 0.0
	for _, m := range spectrum {
		totalEnergy += m * m
	}

	if totalEnergy == 0 {
		return 0.0
	}

	target := sr.threshold * totalEnergy
	cumulative := 0.0
	for k, m := range spectrum {
		cumulative += m * m
		if cumulative >= target {
			return BinFrequency(k, len(spectrum), sr.sampleRate)
		}
	}

	return BinFrequency(len(spectrum)-1, len(spectrum), sr.sampleRate)
}

// ComputeFrames processes multiple frames
func (sr *SpectralRolloff) ComputeFrames(spectrogram [][]float64) []float64 {
	rolloffs := make([]float64, len(spectrogram))
	for t, spectrum := range spectrogram {
		rolloffs[t] = sr.Compute(spectrum)
	}
	return rolloffs
}
