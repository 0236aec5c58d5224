package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-12)
}

func TestVariancePopulation(t *testing.T) {
	assert.Equal(t, 0.0, Variance(nil))
	assert.Equal(t, 0.0, Variance([]float64{5}))

	// Population variance of {2, 4, 4, 4, 5, 5, 7, 9} is 4 (the sample
	// variance would be 4.571...)
	got := Variance([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 4.0, got, 1e-12)
}

func TestRange(t *testing.T) {
	assert.Equal(t, 0.0, Range(nil))
	assert.InDelta(t, 8.0, Range([]float64{3, 11, 7}), 1e-12)
}

func TestPositive(t *testing.T) {
	assert.Empty(t, Positive([]float64{0, -1, 0}))
	assert.Equal(t, []float64{220.5, 219.8}, Positive([]float64{220.5, 0, 219.8, 0}))
}

func TestLocalMaxima(t *testing.T) {
	assert.Empty(t, LocalMaxima([]float64{1, 2}))
	assert.Equal(t, []int{1, 4}, LocalMaxima([]float64{0, 3, 1, 2, 5, 0}))
	// Plateaus are not strict maxima
	assert.Empty(t, LocalMaxima([]float64{1, 2, 2, 1}))
}

func TestUpwardCrossings(t *testing.T) {
	assert.Equal(t, 0, UpwardCrossings(nil, 1))
	assert.Equal(t, 2, UpwardCrossings([]float64{0, 2, 0, 0, 3, 4}, 1))
	// Landing exactly on the threshold counts
	assert.Equal(t, 1, UpwardCrossings([]float64{0, 1}, 1))
}

func TestFractionBelow(t *testing.T) {
	assert.Equal(t, 0.0, FractionBelow(nil, 1))
	assert.InDelta(t, 0.5, FractionBelow([]float64{0, 0, 2, 3}, 1), 1e-12)
	// Strictly below: the threshold itself does not count
	assert.Equal(t, 0.0, FractionBelow([]float64{1, 1}, 1))
}

func TestMeanRelativeChange(t *testing.T) {
	assert.Equal(t, 0.0, MeanRelativeChange(nil))
	assert.Equal(t, 0.0, MeanRelativeChange([]float64{100}))

	// Pairs with an unvoiced (zero) side are skipped
	assert.Equal(t, 0.0, MeanRelativeChange([]float64{0, 100, 0}))

	// (|110-100|/100 + |99-110|/110) / 2 = 0.1
	got := MeanRelativeChange([]float64{100, 110, 99})
	assert.InDelta(t, 0.1, got, 1e-12)

	// Steady series has zero instability
	assert.Equal(t, 0.0, MeanRelativeChange([]float64{5, 5, 5}))
}
