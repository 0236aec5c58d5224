package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocalsense/vocalsense/transcode"
)

func toneData(t *testing.T, freq float64, seconds float64, sampleRate int, amplitude float64) *transcode.AudioData {
	t.Helper()

	samples := make([]float64, int(seconds*float64(sampleRate)))
	for i := range samples {
		samples[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}

	data, err := transcode.FromSamples(samples, sampleRate)
	require.NoError(t, err)
	return data
}

func TestExtractPureTone(t *testing.T) {
	e, err := NewExtractor(nil)
	require.NoError(t, err)

	data := toneData(t, 440, 2.0, 44100, 0.5)
	fv, err := e.Extract(data)
	require.NoError(t, err)

	// 2 s at 44.1 kHz, frame 1024 hop 512
	assert.Equal(t, (88200-1024)/512+1, fv.FrameCount)
	assert.Equal(t, 512, fv.HopSize)
	assert.Equal(t, 44100, fv.SampleRate)

	assert.InDelta(t, 440, fv.PitchMean, 5)
	assert.InDelta(t, 0, fv.Jitter, 0.01)

	// Steady tone: stable energy, negligible shimmer, no pauses
	assert.Greater(t, fv.EnergyMean, 0.1)
	assert.InDelta(t, 0, fv.Shimmer, 0.01)
	assert.InDelta(t, 0, fv.PauseRatio, 1e-9)

	assert.InDelta(t, 440, seriesMean(fv.SpectralCentroids), 100)
}

func TestExtractSeriesShareFrameCount(t *testing.T) {
	e, err := NewExtractor(nil)
	require.NoError(t, err)

	fv, err := e.Extract(toneData(t, 200, 0.5, 44100, 0.3))
	require.NoError(t, err)

	n := fv.FrameCount
	assert.Len(t, fv.PitchContour, n)
	assert.Len(t, fv.SpectralCentroids, n)
	assert.Len(t, fv.SpectralRolloffs, n)
	assert.Len(t, fv.SpectralBandwidths, n)
	assert.Len(t, fv.SpectralContrasts, n)
	require.Len(t, fv.Cepstra, n)
	for _, row := range fv.Cepstra {
		assert.Len(t, row, DefaultConfig().CepstralCoeffs)
	}
}

func TestExtractShortInput(t *testing.T) {
	e, err := NewExtractor(nil)
	require.NoError(t, err)

	data, err := transcode.FromSamples(make([]float64, 100), 44100)
	require.NoError(t, err)

	fv, err := e.Extract(data)
	require.NoError(t, err)
	assert.Equal(t, 0, fv.FrameCount)
	assert.Empty(t, fv.PitchContour)
	assert.Empty(t, fv.Cepstra)
	assert.Equal(t, 0.0, fv.PitchMean)
	assert.Equal(t, 0.0, fv.EnergyMean)
}

func TestExtractSilence(t *testing.T) {
	e, err := NewExtractor(nil)
	require.NoError(t, err)

	data, err := transcode.FromSamples(make([]float64, 44100), 44100)
	require.NoError(t, err)

	fv, err := e.Extract(data)
	require.NoError(t, err)

	// Every frame is unvoiced; the pause threshold collapses to 0
	assert.Equal(t, 0.0, fv.PitchMean)
	assert.Equal(t, 0.0, fv.EnergyMean)
	assert.Equal(t, 0.0, fv.SpeakingRate)
	assert.Equal(t, 0.0, fv.Jitter)
}

func TestExtractNilInput(t *testing.T) {
	e, err := NewExtractor(nil)
	require.NoError(t, err)

	_, err = e.Extract(nil)
	assert.Error(t, err)
}

func TestExtractIdempotent(t *testing.T) {
	e, err := NewExtractor(nil)
	require.NoError(t, err)

	data := toneData(t, 330, 0.5, 44100, 0.4)
	first, err := e.Extract(data)
	require.NoError(t, err)
	second, err := e.Extract(data)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero frame size", func(c *Config) { c.FrameSize = 0 }},
		{"negative hop", func(c *Config) { c.HopSize = -1 }},
		{"hop beyond frame", func(c *Config) { c.HopSize = c.FrameSize + 1 }},
		{"zero bands", func(c *Config) { c.CepstralBands = 0 }},
		{"zero coeffs", func(c *Config) { c.CepstralCoeffs = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config := DefaultConfig()
			tc.mutate(config)
			assert.Error(t, config.Validate())
			_, err := NewExtractor(config)
			assert.Error(t, err)
		})
	}

	assert.NoError(t, DefaultConfig().Validate())
}
