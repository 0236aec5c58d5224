package quality

import (
	"fmt"
	"time"

	"github.com/vocalsense/vocalsense/algorithms/energy"
	"github.com/vocalsense/vocalsense/algorithms/spectral"
	"github.com/vocalsense/vocalsense/logging"
)

// Spectral band edges used by the ratio metrics. The speech band follows the
// classic telephony passband; everything above the noise floor counts as
// broadband noise.
const (
	speechBandLowHz  = 300.0
	speechBandHighHz = 3400.0
	noiseFloorHz     = 4000.0
)

// AnalyzerConfig holds the per-chunk analysis parameters
type AnalyzerConfig struct {
	SampleRate int `json:"sample_rate"`

	// FrameSize is the spectral analysis window in samples. Chunks shorter
	// than this are zero-padded, longer ones truncated; the direct DFT keeps
	// this deliberately small.
	FrameSize int `json:"frame_size"`

	CepstralBands  int `json:"cepstral_bands"`
	CepstralCoeffs int `json:"cepstral_coeffs"`
}

// DefaultAnalyzerConfig returns the realtime analysis parameters for a
// sample rate: a 2048-sample spectral window and the 13-band cepstrum.
func DefaultAnalyzerConfig(sampleRate int) *AnalyzerConfig {
	return &AnalyzerConfig{
		SampleRate:     sampleRate,
		FrameSize:      2048,
		CepstralBands:  13,
		CepstralCoeffs: 13,
	}
}

// Analyzer turns one captured chunk of samples into a MetricSample. It owns
// its DFT tables and is reused across ticks; Analyze allocates only the
// output.
type Analyzer struct {
	config   *AnalyzerConfig
	energy   *energy.Analyzer
	dft      *spectral.DFT
	centroid *spectral.SpectralCentroid
	rolloff  *spectral.SpectralRolloff
	cepstral *spectral.Cepstral
	zcr      *spectral.ZeroCrossingRate
	frame    []float64
	logger   logging.Logger
}

// NewAnalyzer creates a chunk analyzer (nil config gets defaults, which
// require a sample rate)
func NewAnalyzer(config *AnalyzerConfig) (*Analyzer, error) {
	if config == nil {
		return nil, fmt.Errorf("quality analyzer: config with sample rate required")
	}
	if config.SampleRate <= 0 {
		return nil, fmt.Errorf("quality analyzer: sample rate must be positive, got %d", config.SampleRate)
	}
	if config.FrameSize <= 0 {
		return nil, fmt.Errorf("quality analyzer: frame size must be positive, got %d", config.FrameSize)
	}
	if config.CepstralBands <= 0 || config.CepstralCoeffs <= 0 {
		return nil, fmt.Errorf("quality analyzer: cepstral shape must be positive")
	}

	return &Analyzer{
		config:   config,
		energy:   energy.NewAnalyzer(),
		dft:      spectral.NewDFT(config.FrameSize),
		centroid: spectral.NewSpectralCentroid(config.SampleRate),
		rolloff:  spectral.NewSpectralRolloff(config.SampleRate),
		cepstral: spectral.NewCepstral(config.CepstralBands, config.CepstralCoeffs),
		zcr:      spectral.NewZeroCrossingRate(),
		frame:    make([]float64, config.FrameSize),
		logger: logging.WithFields(logging.Fields{
			"component": "quality_analyzer",
		}),
	}, nil
}

// Analyze measures one chunk. The rolling fields (AverageVolume,
// SilenceRatio, DynamicRange) are left zero; History.Push fills them.
func (a *Analyzer) Analyze(chunk []float64, now time.Time) MetricSample {
	sample := MetricSample{Timestamp: now}
	if len(chunk) == 0 {
		sample.SilenceRatio = 100
		sample.Cepstrum = make([]float64, a.config.CepstralCoeffs)
		return sample
	}

	rms := a.energy.RMS(chunk)
	sample.Volume = volumeScale(rms)
	sample.PeakVolume = a.energy.PeakVolume(chunk)
	sample.DistortionRatio = a.energy.ClippingRatio(chunk)
	sample.ZeroCrossingRate = a.zcr.Compute(chunk)

	spectrum := a.dft.Magnitude(a.fitFrame(chunk))
	sample.SpectralCentroid = a.centroid.Compute(spectrum)
	sample.SpectralRolloff = a.rolloff.Compute(spectrum)
	sample.DominantFrequency = dominantFrequency(spectrum, a.config.SampleRate)
	sample.NoiseRatio, sample.ClarityRatio = bandRatios(spectrum, a.config.SampleRate)
	sample.Cepstrum = a.cepstral.Compute(spectrum)

	return sample
}

// Config returns the analyzer's parameters
func (a *Analyzer) Config() *AnalyzerConfig {
	return a.config
}

// fitFrame copies the chunk into the fixed DFT window, zero-padding or
// truncating as needed
func (a *Analyzer) fitFrame(chunk []float64) []float64 {
	n := copy(a.frame, chunk)
	for i := n; i < len(a.frame); i++ {
		a.frame[i] = 0
	}
	return a.frame
}

// volumeScale maps RMS to a 0-100 display scale, with 0.5 RMS (a loud,
// near-full-scale signal) pinned to 100
func volumeScale(rms float64) float64 {
	v := rms / 0.5 * 100
	if v > 100 {
		return 100
	}
	return v
}

// dominantFrequency returns the center frequency of the strongest bin
func dominantFrequency(spectrum []float64, sampleRate int) float64 {
	if len(spectrum) == 0 {
		return 0
	}
	best := 0
	for k, m := range spectrum {
		if m > spectrum[best] {
			best = k
		}
	}
	if spectrum[best] == 0 {
		return 0
	}
	return spectral.BinFrequency(best, len(spectrum), sampleRate)
}

// bandRatios splits spectral magnitude energy into the noise share (above the
// noise floor) and the clarity share (inside the speech band), both as
// percentages of the total
func bandRatios(spectrum []float64, sampleRate int) (noise, clarity float64) {
	total := 0.0
	for k, m := range spectrum {
		total += m
		freq := spectral.BinFrequency(k, len(spectrum), sampleRate)
		if freq > noiseFloorHz {
			noise += m
		}
		if freq >= speechBandLowHz && freq <= speechBandHighHz {
			clarity += m
		}
	}
	if total == 0 {
		return 0, 0
	}
	return noise / total * 100, clarity / total * 100
}
