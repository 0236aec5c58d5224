package analysis

// Config holds the framing and feature parameters of the extraction pipeline
type Config struct {
	FrameSize int `json:"frame_size"` // Analysis frame length in samples
	HopSize   int `json:"hop_size"`   // Stride between frame starts in samples

	// Cepstral feature shape. Bands are linear equal-width partitions of the
	// magnitude spectrum; see algorithms/spectral.Cepstral.
	CepstralBands  int `json:"cepstral_bands"`
	CepstralCoeffs int `json:"cepstral_coeffs"`
}

// DefaultConfig returns the calibrated extraction parameters.
// Frame sizes stay small on purpose: the spectral stage runs a direct
// quadratic DFT and the pitch stage a direct lag scan.
func DefaultConfig() *Config {
	return &Config{
		FrameSize:      1024,
		HopSize:        512,
		CepstralBands:  26,
		CepstralCoeffs: 13,
	}
}

// Validate reports configurations the pipeline cannot run with
func (c *Config) Validate() error {
	if c.FrameSize <= 0 {
		return errInvalidConfig("frame size must be positive")
	}
	if c.HopSize <= 0 {
		return errInvalidConfig("hop size must be positive")
	}
	if c.HopSize > c.FrameSize {
		return errInvalidConfig("hop size must not exceed frame size")
	}
	if c.CepstralBands <= 0 || c.CepstralCoeffs <= 0 {
		return errInvalidConfig("cepstral shape must be positive")
	}
	return nil
}

type errInvalidConfig string

func (e errInvalidConfig) Error() string {
	return "invalid analysis config: " + string(e)
}
