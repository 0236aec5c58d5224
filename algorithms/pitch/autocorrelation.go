package pitch

// Estimator computes per-frame fundamental frequency using normalized
// autocorrelation over the human voice range.
//
// References:
// - Rabiner, L.R. (1977). "On the use of autocorrelation analysis for pitch detection"
//
// The lag search is a direct O(W*P) scan. The estimator's bias characteristics
// are part of the calibration contract of the emotion classifier downstream;
// do not swap in a cepstral or harmonic-product method.
type Estimator struct {
	sampleRate int
	minFreq    float64
	maxFreq    float64
}

// NewEstimator creates a pitch estimator for the 50-500 Hz voice range
func NewEstimator(sampleRate int) *Estimator {
	return &Estimator{
		sampleRate: sampleRate,
		minFreq:    50.0,
		maxFreq:    500.0,
	}
}

// EstimateFrame returns the fundamental frequency of one frame in Hz,
// or 0 if the frame is unvoiced (no positive normalization denominator
// or no admissible lag).
func (e *Estimator) EstimateFrame(frame []float64) float64 {
	minLag := int(float64(e.sampleRate) / e.maxFreq)
	maxLag := int(float64(e.sampleRate) / e.minFreq)

	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= len(frame) {
		maxLag = len(frame) - 1
	}
	if minLag > maxLag {
		return 0.0
	}

	bestLag := 0
	bestCorr := 0.0

	for lag := minLag; lag <= maxLag; lag++ {
		num := 0.0
		den := 0.0
		for i := 0; i+lag < len(frame); i++ {
			num += frame[i] * frame[i+lag]
			den += frame[i] * frame[i]
		}

		if den <= 0 {
			continue
		}

		corr := num / den
		if corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}

	if bestLag == 0 {
		return 0.0
	}

	return float64(e.sampleRate) / float64(bestLag)
}

// EstimateFrames returns one pitch value per frame; unvoiced frames are 0
func (e *Estimator) EstimateFrames(frames [][]float64) []float64 {
	contour := make([]float64, len(frames))
	for i, frame := range frames {
		contour[i] = e.EstimateFrame(frame)
	}
	return contour
}

// VoiceRange returns the configured search range in Hz
func (e *Estimator) VoiceRange() (minFreq, maxFreq float64) {
	return e.minFreq, e.maxFreq
}
