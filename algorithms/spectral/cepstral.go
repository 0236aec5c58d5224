package spectral

import "math"

const logFloor = 1e-10

// Cepstral computes a simplified cepstral feature vector: the magnitude
// spectrum is partitioned into equal-width bands, band magnitudes are summed,
// log-compressed, and a fixed cosine transform produces the coefficients.
//
// The band spacing is linear, not mel-warped. That is a known approximation
// carried over from the calibration of the emotion weights, not a bug; a true
// mel filter bank would shift every coefficient and invalidate the weights.
type Cepstral struct {
	numBands  int
	numCoeffs int
	dctMatrix [][]float64
}

// NewCepstral creates a cepstral extractor. The emotion pipeline uses 26
// bands, the realtime quality path 13; both produce 13 coefficients.
func NewCepstral(numBands, numCoeffs int) *Cepstral {
	c := &Cepstral{
		numBands:  numBands,
		numCoeffs: numCoeffs,
	}
	c.createDCTMatrix()
	return c
}

// createDCTMatrix creates the DCT-II basis over the band dimension
func (c *Cepstral) createDCTMatrix() {
	c.dctMatrix = make([][]float64, c.numCoeffs)

	for k := 0; k < c.numCoeffs; k++ {
		c.dctMatrix[k] = make([]float64, c.numBands)
		for n := 0; n < c.numBands; n++ {
			c.dctMatrix[k][n] = math.Cos(math.Pi * float64(k) * (float64(n) + 0.5) / float64(c.numBands))
		}
	}
}

// Compute returns the coefficient vector for one magnitude spectrum.
// An empty spectrum yields an all-zero vector (log of the floor is constant
// across bands, so only C0 would carry it; zeros keep downstream statistics
// neutral).
func (c *Cepstral) Compute(spectrum []float64) []float64 {
	coeffs := make([]float64, c.numCoeffs)
	if len(spectrum) == 0 || c.numBands == 0 {
		return coeffs
	}

	logBands := make([]float64, c.numBands)
	bandWidth := float64(len(spectrum)) / float64(c.numBands)

	for b := 0; b < c.numBands; b++ {
		start := int(float64(b) * bandWidth)
		end := int(float64(b+1) * bandWidth)
		if end > len(spectrum) {
			end = len(spectrum)
		}

		bandEnergy := 0.0
		for k := start; k < end; k++ {
			bandEnergy += spectrum[k]
		}
		logBands[b] = math.Log(bandEnergy + logFloor)
	}

	for k := 0; k < c.numCoeffs; k++ {
		sum := 0.0
		for n := 0; n < c.numBands; n++ {
			sum += logBands[n] * c.dctMatrix[k][n]
		}
		coeffs[k] = sum
	}

	return coeffs
}

// ComputeFrames returns one coefficient row per frame
func (c *Cepstral) ComputeFrames(spectrogram [][]float64) [][]float64 {
	rows := make([][]float64, len(spectrogram))
	for t, spectrum := range spectrogram {
		rows[t] = c.Compute(spectrum)
	}
	return rows
}

// NumCoefficients returns the coefficient count per vector
func (c *Cepstral) NumCoefficients() int {
	return c.numCoeffs
}

// NumBands returns the band count of the partition
func (c *Cepstral) NumBands() int {
	return c.numBands
}
