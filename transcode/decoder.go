package transcode

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/go-audio/wav"
	"go.uber.org/multierr"

	"github.com/vocalsense/vocalsense/logging"
)

// ErrDecode reports input that could not be parsed into a sample buffer.
// It is fatal for the call that produced it; no partial result exists.
var ErrDecode = errors.New("audio decode failed")

// AudioData represents decoded audio data
type AudioData struct {
	PCM        []float64     `json:"-"` // Mono samples in [-1, 1]
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"` // Channel count of the source, before downmix
	Duration   time.Duration `json:"duration"`
	Timestamp  time.Time     `json:"timestamp"`
}

// DecoderConfig holds decoder configuration
type DecoderConfig struct {
	MaxDuration time.Duration `json:"max_duration"` // 0 means no limit
}

// DefaultDecoderConfig returns default decoder configuration
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		MaxDuration: 0,
	}
}

// Decoder reads WAV input into mono sample buffers
type Decoder struct {
	config *DecoderConfig
	logger logging.Logger
}

// NewDecoder creates a new audio decoder
func NewDecoder(config *DecoderConfig) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}
	return &Decoder{
		config: config,
		logger: logging.WithFields(logging.Fields{
			"component": "audio_decoder",
		}),
	}
}

// DecodeFile decodes a WAV file and returns mono PCM data
func (d *Decoder) DecodeFile(filename string) (data *AudioData, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrDecode, filename, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierr.Append(err, cerr)
		}
	}()

	data, err = d.Decode(f)
	if err != nil {
		d.logger.Error(err, "Failed to decode file", logging.Fields{"filename": filename})
		return nil, err
	}

	d.logger.Debug("Decoded file", logging.Fields{
		"filename":    filename,
		"sample_rate": data.SampleRate,
		"duration":    data.Duration,
	})

	return data, nil
}

// Decode decodes WAV content from a reader into mono PCM data
func (d *Decoder) Decode(r io.ReadSeeker) (*AudioData, error) {
	decoder := wav.NewDecoder(r)
	if err := decoder.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: wav header: %v", ErrDecode, err)
	}

	channels := int(decoder.NumChans)
	if channels <= 0 {
		return nil, fmt.Errorf("%w: invalid channel count: %d", ErrDecode, channels)
	}
	sampleRate := int(decoder.SampleRate)
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: invalid sample rate: %d", ErrDecode, sampleRate)
	}
	bitDepth := int(decoder.BitDepth)
	if bitDepth <= 0 {
		return nil, fmt.Errorf("%w: unknown bit depth", ErrDecode)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: pcm data: %v", ErrDecode, err)
	}
	if len(buf.Data)%channels != 0 {
		return nil, fmt.Errorf("%w: pcm length (%d samples) not divisible by channel count (%d)",
			ErrDecode, len(buf.Data), channels)
	}

	pcm, err := downmixToMono(buf.Data, channels, bitDepth)
	if err != nil {
		return nil, err
	}

	data := &AudioData{
		PCM:        pcm,
		SampleRate: sampleRate,
		Channels:   channels,
		Duration:   time.Duration(float64(len(pcm)) / float64(sampleRate) * float64(time.Second)),
		Timestamp:  time.Now(),
	}

	if d.config.MaxDuration > 0 && data.Duration > d.config.MaxDuration {
		limit := int(d.config.MaxDuration.Seconds() * float64(sampleRate))
		data.PCM = data.PCM[:limit]
		data.Duration = d.config.MaxDuration
	}

	return data, nil
}

// FromSamples wraps an already-decoded sample slice. Used by callers that
// capture PCM themselves (live input devices, tests).
func FromSamples(samples []float64, sampleRate int) (*AudioData, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: invalid sample rate: %d", ErrDecode, sampleRate)
	}
	for i, s := range samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("%w: invalid sample at index %d", ErrDecode, i)
		}
	}
	return &AudioData{
		PCM:        samples,
		SampleRate: sampleRate,
		Channels:   1,
		Duration:   time.Duration(float64(len(samples)) / float64(sampleRate) * float64(time.Second)),
		Timestamp:  time.Now(),
	}, nil
}

// downmixToMono averages interleaved integer PCM channels and normalizes to [-1, 1].
// 8-bit WAV data is unsigned; the midpoint is removed before normalization.
func downmixToMono(data []int, channels, bitDepth int) ([]float64, error) {
	normalizer := math.Pow(2, float64(bitDepth)-1)
	offset := 0.0
	if bitDepth == 8 {
		offset = normalizer
	}

	frames := len(data) / channels
	pcm := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		base := i * channels
		for c := 0; c < channels; c++ {
			sum += (float64(data[base+c]) - offset) / normalizer
		}
		pcm[i] = sum / float64(channels)
	}

	return pcm, nil
}
