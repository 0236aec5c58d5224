package energy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRMS(t *testing.T) {
	a := NewAnalyzer()

	assert.Equal(t, 0.0, a.RMS(nil))
	assert.Equal(t, 0.0, a.RMS([]float64{0, 0, 0}))
	assert.InDelta(t, 0.5, a.RMS([]float64{0.5, -0.5, 0.5, -0.5}), 1e-12)

	// Full-scale sine has RMS 1/sqrt(2)
	frame := make([]float64, 44100)
	for i := range frame {
		frame[i] = math.Sin(2 * math.Pi * 100 * float64(i) / 44100)
	}
	assert.InDelta(t, 1/math.Sqrt2, a.RMS(frame), 1e-3)
}

func TestRMSFrames(t *testing.T) {
	a := NewAnalyzer()
	energies := a.RMSFrames([][]float64{{1, 1}, {0, 0}})
	assert.Equal(t, []float64{1, 0}, energies)
}

func TestPeakVolume(t *testing.T) {
	a := NewAnalyzer()

	assert.Equal(t, 0.0, a.PeakVolume(nil))
	assert.InDelta(t, 80.0, a.PeakVolume([]float64{0.1, -0.8, 0.3}), 1e-12)
	// Overdriven input caps at 100
	assert.Equal(t, 100.0, a.PeakVolume([]float64{1.5}))
}

func TestClippingRatio(t *testing.T) {
	a := NewAnalyzer()

	assert.Equal(t, 0.0, a.ClippingRatio(nil))
	assert.Equal(t, 0.0, a.ClippingRatio([]float64{0.5, -0.5}))

	// 0.99 sits inside the 0.02 margin of the rail, 0.9 does not
	got := a.ClippingRatio([]float64{0.99, -0.99, 0.9, 0.0})
	assert.InDelta(t, 50.0, got, 1e-12)
}

func TestSilenceRatio(t *testing.T) {
	a := NewAnalyzer()

	assert.Equal(t, 100.0, a.SilenceRatio(nil, 0.5))
	assert.Equal(t, 100.0, a.SilenceRatio([]float64{0, 0}, 0))

	// Threshold 0.2*0.5 = 0.1: two of four below
	got := a.SilenceRatio([]float64{0.05, -0.02, 0.5, 0.9}, 0.5)
	assert.InDelta(t, 50.0, got, 1e-12)
}

func TestDynamicRange(t *testing.T) {
	a := NewAnalyzer()

	assert.Equal(t, 0.0, a.DynamicRange(nil))
	assert.Equal(t, 0.0, a.DynamicRange([]float64{40}))
	assert.InDelta(t, 55.0, a.DynamicRange([]float64{20, 75, 30}), 1e-12)
}

func TestMeanAbs(t *testing.T) {
	a := NewAnalyzer()

	assert.Equal(t, 0.0, a.MeanAbs(nil))
	assert.InDelta(t, 0.5, a.MeanAbs([]float64{0.5, -0.5}), 1e-12)
}
