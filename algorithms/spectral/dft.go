package spectral

import "math"

// DFT computes magnitude spectra via a direct discrete Fourier transform,
// restricted to the first N/2 bins (real-input symmetry).
//
// This is intentionally the direct O(N^2) form, not an FFT. The engine only
// transforms small analysis frames (hundreds to a few thousand samples) at a
// bounded rate, and the quadratic cost is an accepted, documented
// characteristic of the pipeline rather than a defect to optimize away.
type DFT struct {
	size int

	// Precomputed twiddle tables; cos/sin per (bin, sample) product
	cosTable []float64
	sinTable []float64
}

// NewDFT creates a transform for frames of the given size
func NewDFT(size int) *DFT {
	d := &DFT{size: size}
	d.buildTables()
	return d
}

func (d *DFT) buildTables() {
	if d.size <= 0 {
		return
	}

	// One period of the basis, indexed by (k*n) mod size
	d.cosTable = make([]float64, d.size)
	d.sinTable = make([]float64, d.size)
	for i := 0; i < d.size; i++ {
		angle := 2 * math.Pi * float64(i) / float64(d.size)
		d.cosTable[i] = math.Cos(angle)
		d.sinTable[i] = math.Sin(angle)
	}
}

// Magnitude returns the magnitude spectrum of one frame over the first
// size/2 bins. A frame of the wrong length yields an empty spectrum.
func (d *DFT) Magnitude(frame []float64) []float64 {
	if len(frame) != d.size || d.size < 2 {
		return []float64{}
	}

	numBins := d.size / 2
	magnitude := make([]float64, numBins)

	for k := 0; k < numBins; k++ {
		re := 0.0
		im := 0.0
		for n, x := range frame {
			idx := (k * n) % d.size
			re += x * d.cosTable[idx]
			im -= x * d.sinTable[idx]
		}
		magnitude[k] = math.Hypot(re, im)
	}

	return magnitude
}

// MagnitudeFrames transforms a batch of frames
func (d *DFT) MagnitudeFrames(frames [][]float64) [][]float64 {
	spectra := make([][]float64, len(frames))
	for i, frame := range frames {
		spectra[i] = d.Magnitude(frame)
	}
	return spectra
}

// BinFrequency returns the center frequency of bin k for a spectrum of
// numBins bins: k * sampleRate / (2 * numBins)
func BinFrequency(k, numBins, sampleRate int) float64 {
	if numBins == 0 {
		return 0.0
	}
	return float64(k) * float64(sampleRate) / (2.0 * float64(numBins))
}

// Size returns the frame size the transform was built for
func (d *DFT) Size() int {
	return d.size
}
