package analysis

// FeatureVector is the summary of one sample buffer. It is built once per
// Extract call and never mutated afterward; every per-frame series in it
// shares the same frame count and hop size.
type FeatureVector struct {
	// Pitch statistics over voiced frames; Contour keeps the raw per-frame
	// estimates with 0 marking unvoiced frames
	PitchMean     float64   `json:"pitch_mean"`
	PitchVariance float64   `json:"pitch_variance"`
	PitchRange    float64   `json:"pitch_range"`
	PitchContour  []float64 `json:"pitch_contour"`

	// Energy statistics; Peaks holds the local-maximum values of the RMS series
	EnergyMean     float64   `json:"energy_mean"`
	EnergyVariance float64   `json:"energy_variance"`
	EnergyPeaks    []float64 `json:"energy_peaks"`

	// Spectral shape descriptors, one entry per frame
	SpectralCentroids  []float64 `json:"spectral_centroids"`
	SpectralRolloffs   []float64 `json:"spectral_rolloffs"`
	SpectralBandwidths []float64 `json:"spectral_bandwidths"`
	SpectralContrasts  []float64 `json:"spectral_contrasts"`

	// Cepstral coefficient matrix, one row per frame
	Cepstra [][]float64 `json:"cepstra"`

	// Prosodic scalars
	SpeakingRate float64 `json:"speaking_rate"` // Energy onsets per second
	PauseRatio   float64 `json:"pause_ratio"`   // Fraction of frames below the pause threshold
	Jitter       float64 `json:"jitter"`        // Mean relative pitch change, voiced pairs
	Shimmer      float64 `json:"shimmer"`       // Mean relative energy change

	FrameCount int `json:"frame_count"`
	HopSize    int `json:"hop_size"`
	SampleRate int `json:"sample_rate"`
}

// SpectralCentroidMean returns the mean of the centroid series, the scalar the
// emotion normalizer consumes
func (fv *FeatureVector) SpectralCentroidMean() float64 {
	return seriesMean(fv.SpectralCentroids)
}

// SpectralBandwidthMean returns the mean of the bandwidth series
func (fv *FeatureVector) SpectralBandwidthMean() float64 {
	return seriesMean(fv.SpectralBandwidths)
}

func seriesMean(s []float64) float64 {
	if len(s) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	return sum / float64(len(s))
}
