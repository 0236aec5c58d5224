package quality

import (
	"time"

	"github.com/vocalsense/vocalsense/algorithms/energy"
)

// DefaultHistoryCapacity bounds the rolling metric window: 200 samples is
// about 20 seconds at the 100 ms realtime cadence.
const DefaultHistoryCapacity = 200

// MetricSample is one real-time measurement of the input signal. The chunk
// analyzer fills the per-chunk fields; History.Push fills the rolling fields
// (AverageVolume, SilenceRatio, DynamicRange) from the retained window.
type MetricSample struct {
	Volume            float64 `json:"volume"`             // 0-100
	DominantFrequency float64 `json:"dominant_frequency"` // Hz
	NoiseRatio        float64 `json:"noise_ratio"`        // % of spectral energy above the noise floor
	ClarityRatio      float64 `json:"clarity_ratio"`      // % of spectral energy in the speech band
	PeakVolume        float64 `json:"peak_volume"`        // 0-100
	AverageVolume     float64 `json:"average_volume"`     // Rolling mean volume, 0-100
	DynamicRange      float64 `json:"dynamic_range"`      // max-min of rolling peak volumes
	SilenceRatio      float64 `json:"silence_ratio"`      // % of rolling window below the adaptive threshold
	DistortionRatio   float64 `json:"distortion_ratio"`   // % of raw samples near the rails
	SpectralCentroid  float64 `json:"spectral_centroid"`  // Hz
	SpectralRolloff   float64 `json:"spectral_rolloff"`   // Hz
	ZeroCrossingRate  float64 `json:"zero_crossing_rate"`

	Cepstrum []float64 `json:"cepstrum"`

	Timestamp time.Time `json:"timestamp"`
}

// History is a bounded, insertion-ordered ring of metric samples. It is not
// safe for concurrent use; the realtime controller serializes access, and
// one-shot callers own their instance exclusively.
type History struct {
	samples  []MetricSample
	head     int
	size     int
	capacity int
	energy   *energy.Analyzer
}

// NewHistory creates a ring with the given capacity (<= 0 gets the default)
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{
		samples:  make([]MetricSample, capacity),
		capacity: capacity,
		energy:   energy.NewAnalyzer(),
	}
}

// Push computes the rolling fields of the sample against the retained window
// (including the sample itself), appends it, and returns the stored value.
// Once the ring is full the oldest entry is evicted.
func (h *History) Push(sample MetricSample) MetricSample {
	volumes := make([]float64, 0, h.size+1)
	peaks := make([]float64, 0, h.size+1)
	for i := 0; i < h.size; i++ {
		s := h.at(i)
		volumes = append(volumes, s.Volume)
		peaks = append(peaks, s.PeakVolume)
	}
	volumes = append(volumes, sample.Volume)
	peaks = append(peaks, sample.PeakVolume)

	sample.AverageVolume = h.energy.MeanAbs(volumes)
	sample.DynamicRange = h.energy.DynamicRange(peaks)
	sample.SilenceRatio = h.energy.SilenceRatio(volumes, sample.AverageVolume)

	h.samples[(h.head+h.size)%h.capacity] = sample
	if h.size < h.capacity {
		h.size++
	} else {
		h.head = (h.head + 1) % h.capacity
	}
	return sample
}

// Latest returns the most recent sample, if any
func (h *History) Latest() (MetricSample, bool) {
	if h.size == 0 {
		return MetricSample{}, false
	}
	return h.at(h.size - 1), true
}

// Snapshot returns a copy of the retained samples, oldest first. Mutating the
// returned slice does not affect the ring.
func (h *History) Snapshot() []MetricSample {
	out := make([]MetricSample, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = h.at(i)
	}
	return out
}

// Len returns the number of retained samples
func (h *History) Len() int {
	return h.size
}

func (h *History) at(i int) MetricSample {
	return h.samples[(h.head+i)%h.capacity]
}
