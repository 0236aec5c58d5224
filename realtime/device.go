package realtime

import "errors"

// ErrDeviceUnavailable is returned (possibly wrapped) when a live input
// device cannot be acquired. The controller surfaces it and stays Idle.
var ErrDeviceUnavailable = errors.New("input device unavailable")

// Device is a live audio input. The controller treats it as a scoped
// resource: Open on Start, Close on Stop, never shared across controllers.
type Device interface {
	// Open acquires the device. Errors should wrap ErrDeviceUnavailable.
	Open() error

	// SampleRate reports the capture rate in Hz. Only valid after Open.
	SampleRate() int

	// ReadChunk returns the samples captured since the previous call.
	// It must not block; an empty slice means nothing new arrived.
	ReadChunk() ([]float64, error)

	// Close releases the device. Safe to call once after a successful Open.
	Close() error
}

// PitchCapable marks devices with a hardware pitch readout. When present,
// the device estimate replaces the DFT-derived dominant frequency.
type PitchCapable interface {
	Pitch() float64
}

// SpectralCapable marks devices with a hardware magnitude spectrum. When
// present, spectral metrics are derived from it instead of the software DFT.
type SpectralCapable interface {
	Spectrum() []float64
}

// capabilities holds the optional device interfaces, resolved once at Start
// rather than re-detected per tick
type capabilities struct {
	pitch    PitchCapable
	spectral SpectralCapable
}

func resolveCapabilities(d Device) capabilities {
	var caps capabilities
	if p, ok := d.(PitchCapable); ok {
		caps.pitch = p
	}
	if s, ok := d.(SpectralCapable); ok {
		caps.spectral = s
	}
	return caps
}
