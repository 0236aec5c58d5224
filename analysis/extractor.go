package analysis

import (
	"fmt"

	"github.com/vocalsense/vocalsense/algorithms/energy"
	"github.com/vocalsense/vocalsense/algorithms/pitch"
	"github.com/vocalsense/vocalsense/algorithms/spectral"
	"github.com/vocalsense/vocalsense/algorithms/stats"
	"github.com/vocalsense/vocalsense/algorithms/windowing"
	"github.com/vocalsense/vocalsense/logging"
	"github.com/vocalsense/vocalsense/transcode"
)

// pauseThresholdFactor scales mean energy into the adaptive pause/onset
// threshold. Frames below it count as pauses; upward crossings of it count
// as speech onsets for the speaking rate.
const pauseThresholdFactor = 0.2

// Extractor runs the full per-sample feature pipeline:
// framing -> {pitch, energy, spectral} series -> aggregated FeatureVector.
//
// An Extractor is cheap to construct and holds no per-call state; Extract is
// pure and reentrant. Callers construct and own their instances, there is no
// process-wide shared extractor.
type Extractor struct {
	config *Config
	logger logging.Logger
}

// NewExtractor creates an extractor with the given config (nil gets defaults)
func NewExtractor(config *Config) (*Extractor, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Extractor{
		config: config,
		logger: logging.WithFields(logging.Fields{
			"component": "feature_extractor",
		}),
	}, nil
}

// Extract builds one FeatureVector from a decoded sample buffer.
// Input shorter than one frame is not an error: the result carries zero
// frames and neutral statistics.
func (e *Extractor) Extract(data *transcode.AudioData) (*FeatureVector, error) {
	if data == nil || data.SampleRate <= 0 {
		return nil, fmt.Errorf("extract: no decoded audio")
	}

	framer := windowing.NewFramer(e.config.FrameSize, e.config.HopSize)
	frames := framer.Frames(data.PCM)

	fv := &FeatureVector{
		FrameCount: len(frames),
		HopSize:    e.config.HopSize,
		SampleRate: data.SampleRate,
	}

	if len(frames) == 0 {
		e.logger.Debug("Input shorter than one frame, returning empty feature vector", logging.Fields{
			"samples":    len(data.PCM),
			"frame_size": e.config.FrameSize,
		})
		fv.PitchContour = []float64{}
		fv.EnergyPeaks = []float64{}
		fv.SpectralCentroids = []float64{}
		fv.SpectralRolloffs = []float64{}
		fv.SpectralBandwidths = []float64{}
		fv.SpectralContrasts = []float64{}
		fv.Cepstra = [][]float64{}
		return fv, nil
	}

	e.extractPitch(fv, frames)
	e.extractEnergy(fv, frames, data)
	e.extractSpectral(fv, frames, data.SampleRate)

	return fv, nil
}

func (e *Extractor) extractPitch(fv *FeatureVector, frames [][]float64) {
	estimator := pitch.NewEstimator(fv.SampleRate)
	fv.PitchContour = estimator.EstimateFrames(frames)

	voiced := stats.Positive(fv.PitchContour)
	fv.PitchMean = stats.Mean(voiced)
	fv.PitchVariance = stats.Variance(voiced)
	fv.PitchRange = stats.Range(voiced)
	fv.Jitter = stats.MeanRelativeChange(fv.PitchContour)
}

func (e *Extractor) extractEnergy(fv *FeatureVector, frames [][]float64, data *transcode.AudioData) {
	analyzer := energy.NewAnalyzer()
	energies := analyzer.RMSFrames(frames)

	fv.EnergyMean = stats.Mean(energies)
	fv.EnergyVariance = stats.Variance(energies)

	peakIdx := stats.LocalMaxima(energies)
	fv.EnergyPeaks = make([]float64, len(peakIdx))
	for i, idx := range peakIdx {
		fv.EnergyPeaks[i] = energies[idx]
	}

	threshold := pauseThresholdFactor * fv.EnergyMean
	fv.PauseRatio = stats.FractionBelow(energies, threshold)
	fv.Shimmer = stats.MeanRelativeChange(energies)

	durationSec := float64(len(data.PCM)) / float64(data.SampleRate)
	if durationSec > 0 {
		fv.SpeakingRate = float64(stats.UpwardCrossings(energies, threshold)) / durationSec
	}
}

func (e *Extractor) extractSpectral(fv *FeatureVector, frames [][]float64, sampleRate int) {
	dft := spectral.NewDFT(e.config.FrameSize)
	spectra := dft.MagnitudeFrames(frames)

	fv.SpectralCentroids = spectral.NewSpectralCentroid(sampleRate).ComputeFrames(spectra)
	fv.SpectralRolloffs = spectral.NewSpectralRolloff(sampleRate).ComputeFrames(spectra)
	fv.SpectralBandwidths = spectral.NewSpectralBandwidth(sampleRate).ComputeFrames(spectra)
	fv.SpectralContrasts = spectral.NewSpectralContrast().ComputeFrames(spectra)
	fv.Cepstra = spectral.NewCepstral(e.config.CepstralBands, e.config.CepstralCoeffs).ComputeFrames(spectra)
}
