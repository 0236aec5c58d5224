package spectral

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/mjibson/go-dsp/fft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(freq float64, sampleRate, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return out
}

func TestDFTAgainstFFT(t *testing.T) {
	const size = 128
	d := NewDFT(size)

	// Mixed tones plus DC offset
	frame := make([]float64, size)
	for i := range frame {
		frame[i] = 0.3 + 0.8*math.Sin(2*math.Pi*5*float64(i)/size) + 0.2*math.Cos(2*math.Pi*17*float64(i)/size)
	}

	got := d.Magnitude(frame)
	require.Len(t, got, size/2)

	reference := fft.FFTReal(frame)
	for k := 0; k < size/2; k++ {
		assert.InDelta(t, cmplx.Abs(reference[k]), got[k], 1e-9, "bin %d", k)
	}
}

func TestDFTSingleBinTone(t *testing.T) {
	const size = 64
	d := NewDFT(size)

	// Exactly 4 cycles per frame concentrates all energy in bin 4
	frame := sine(4, size, size)
	spectrum := d.Magnitude(frame)

	best := 0
	for k, m := range spectrum {
		if m > spectrum[best] {
			best = k
		}
	}
	assert.Equal(t, 4, best)
	assert.InDelta(t, float64(size)/2, spectrum[4], 1e-9)
}

func TestDFTWrongFrameLength(t *testing.T) {
	d := NewDFT(64)
	assert.Empty(t, d.Magnitude(make([]float64, 32)))
	assert.Empty(t, d.Magnitude(nil))
}

func TestBinFrequency(t *testing.T) {
	// 512 bins from a 1024 DFT at 44.1 kHz: bin k maps to k*sr/1024
	assert.InDelta(t, 0.0, BinFrequency(0, 512, 44100), 1e-12)
	assert.InDelta(t, 43.066, BinFrequency(1, 512, 44100), 1e-3)
	assert.InDelta(t, 22006.9, BinFrequency(511, 512, 44100), 0.1)
	assert.Equal(t, 0.0, BinFrequency(3, 0, 44100))
}

func TestSpectralCentroid(t *testing.T) {
	sc := NewSpectralCentroid(1000)

	// All energy in one bin puts the centroid on that bin's frequency
	spectrum := make([]float64, 10)
	spectrum[4] = 1.0
	assert.InDelta(t, BinFrequency(4, 10, 1000), sc.Compute(spectrum), 1e-9)

	assert.Equal(t, 0.0, sc.Compute(make([]float64, 10)))
	assert.Equal(t, 0.0, sc.Compute(nil))
}

func TestSpectralRolloff(t *testing.T) {
	sr := NewSpectralRolloff(1000)

	// Uniform spectrum of 10 bins: 85% of energy is reached at bin 8
	uniform := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	assert.InDelta(t, BinFrequency(8, 10, 1000), sr.Compute(uniform), 1e-9)

	assert.Equal(t, 0.0, sr.Compute(make([]float64, 10)))
}

func TestSpectralBandwidth(t *testing.T) {
	sb := NewSpectralBandwidth(1000)

	// Single-bin spectrum has zero spread
	spectrum := make([]float64, 10)
	spectrum[4] = 1.0
	assert.InDelta(t, 0.0, sb.Compute(spectrum), 1e-9)

	// Two equal bins: centroid halfway, deviation one bin width either side
	two := make([]float64, 10)
	two[2], two[4] = 1.0, 1.0
	assert.InDelta(t, BinFrequency(1, 10, 1000), sb.Compute(two), 1e-9)

	assert.Equal(t, 0.0, sb.Compute(make([]float64, 10)))
}

func TestSpectralContrast(t *testing.T) {
	sc := NewSpectralContrast()

	// max/min = 100 over non-zero bins -> 40 dB; zeros are excluded
	assert.InDelta(t, 40.0, sc.Compute([]float64{0, 0.01, 1.0, 0}), 1e-9)
	assert.Equal(t, 0.0, sc.Compute([]float64{0, 0, 0}))
	assert.Equal(t, 0.0, sc.Compute(nil))
}

func TestCepstralShape(t *testing.T) {
	c := NewCepstral(26, 13)
	assert.Equal(t, 26, c.NumBands())
	assert.Equal(t, 13, c.NumCoefficients())

	spectrum := sine(4, 64, 64)
	coeffs := c.Compute(NewDFT(64).Magnitude(spectrum))
	require.Len(t, coeffs, 13)

	// C0 is the sum of log band energies; with most bands near the log floor
	// it is strongly negative
	assert.Less(t, coeffs[0], 0.0)
}

func TestCepstralEmptySpectrum(t *testing.T) {
	c := NewCepstral(13, 13)
	assert.Equal(t, make([]float64, 13), c.Compute(nil))
	assert.Equal(t, make([]float64, 13), c.Compute([]float64{}))
}

func TestCepstralDeterministic(t *testing.T) {
	c := NewCepstral(13, 13)
	spectrum := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}
	assert.Equal(t, c.Compute(spectrum), c.Compute(spectrum))
}

func TestZeroCrossingRate(t *testing.T) {
	z := NewZeroCrossingRate()

	assert.Equal(t, 0.0, z.Compute(nil))
	assert.Equal(t, 0.0, z.Compute([]float64{1}))
	assert.Equal(t, 0.0, z.Compute([]float64{1, 2, 3}))

	// Alternating signal crosses at every step
	assert.InDelta(t, 1.0, z.Compute([]float64{1, -1, 1, -1}), 1e-12)
}
