package spectral

// ZeroCrossingRate computes the rate of sign changes in a signal, a cheap
// noisiness indicator for the realtime quality path
type ZeroCrossingRate struct{}

// NewZeroCrossingRate creates a ZCR calculator
func NewZeroCrossingRate() *ZeroCrossingRate {
	return &ZeroCrossingRate{}
}

// Compute returns crossings per sample in [0, 1]
func (z *ZeroCrossingRate) Compute(signal []float64) float64 {
	if len(signal) < 2 {
		return 0.0
	}

	crossings := 0
	for i := 1; i < len(signal); i++ {
		if (signal[i] > 0 && signal[i-1] <= 0) || (signal[i] <= 0 && signal[i-1] > 0) {
			crossings++
		}
	}

	return float64(crossings) / float64(len(signal)-1)
}
