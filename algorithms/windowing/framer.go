package windowing

// Framer slices a signal into overlapping, Hann-tapered analysis frames.
// Frames start at offsets 0, H, 2H, ... while offset+W <= len(signal).
type Framer struct {
	frameSize int
	hopSize   int
	window    *Hann
}

// NewFramer creates a framer with the given frame and hop sizes in samples.
// hopSize must not exceed frameSize.
func NewFramer(frameSize, hopSize int) *Framer {
	return &Framer{
		frameSize: frameSize,
		hopSize:   hopSize,
		window:    NewHann(frameSize),
	}
}

// NumFrames returns how many frames Frames would produce for a signal length.
// An input shorter than one frame yields zero frames; that is not an error,
// downstream stages treat an empty series as insufficient data.
func (f *Framer) NumFrames(signalLen int) int {
	if signalLen < f.frameSize || f.frameSize <= 0 || f.hopSize <= 0 {
		return 0
	}
	return (signalLen-f.frameSize)/f.hopSize + 1
}

// Frames produces all windowed frames of the signal. Each frame is a fresh
// slice; the input is never mutated.
func (f *Framer) Frames(signal []float64) [][]float64 {
	numFrames := f.NumFrames(len(signal))
	if numFrames == 0 {
		return [][]float64{}
	}

	frames := make([][]float64, numFrames)
	for i := 0; i < numFrames; i++ {
		start := i * f.hopSize
		frame := make([]float64, f.frameSize)
		copy(frame, signal[start:start+f.frameSize])
		// Lengths match by construction, so the taper cannot fail
		_ = f.window.ApplyInPlace(frame)
		frames[i] = frame
	}

	return frames
}

// RawFrame returns the untapered samples of frame i, for analyses that need
// the unwindowed signal (clipping detection works on raw amplitudes).
func (f *Framer) RawFrame(signal []float64, i int) []float64 {
	start := i * f.hopSize
	if start < 0 || start+f.frameSize > len(signal) {
		return nil
	}
	return signal[start : start+f.frameSize]
}

// FrameSize returns the frame length in samples
func (f *Framer) FrameSize() int {
	return f.frameSize
}

// HopSize returns the hop length in samples
func (f *Framer) HopSize() int {
	return f.hopSize
}
