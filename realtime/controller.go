package realtime

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/vocalsense/vocalsense/algorithms/spectral"
	"github.com/vocalsense/vocalsense/logging"
	"github.com/vocalsense/vocalsense/quality"
)

// State is the controller lifecycle state
type State int

const (
	StateIdle State = iota
	StateSampling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSampling:
		return "sampling"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Config holds the sampling cadence and history bound
type Config struct {
	CaptureInterval time.Duration `json:"capture_interval"` // Metric capture tick
	QualityInterval time.Duration `json:"quality_interval"` // Quality check tick
	HistoryCapacity int           `json:"history_capacity"`
}

// DefaultConfig returns the standard cadence: 100 ms capture, 1 s quality
// checks, 200-sample history.
func DefaultConfig() *Config {
	return &Config{
		CaptureInterval: 100 * time.Millisecond,
		QualityInterval: time.Second,
		HistoryCapacity: quality.DefaultHistoryCapacity,
	}
}

// Controller drives quality analysis on a live input device. Lifecycle is
// Idle -> Sampling -> Idle; while Sampling, a single goroutine services two
// tickers (capture and quality check) so ticks never run concurrently with
// each other. Each controller owns its history exclusively.
type Controller struct {
	config *Config
	clock  Clock
	scorer *quality.Scorer
	logger logging.Logger

	mu     sync.Mutex // lifecycle
	state  State
	device Device
	stop   chan struct{}
	done   chan struct{}

	histMu  sync.Mutex
	history *quality.History
}

// NewController creates an idle controller. A nil config gets defaults; a nil
// clock gets the wall clock.
func NewController(config *Config, clock Clock) *Controller {
	if config == nil {
		config = DefaultConfig()
	}
	if clock == nil {
		clock = RealClock()
	}
	return &Controller{
		config: config,
		clock:  clock,
		scorer: quality.NewScorer(),
		logger: logging.WithFields(logging.Fields{
			"component": "realtime_controller",
		}),
	}
}

// Start acquires the device and begins sampling. On any failure the device is
// left released and the controller stays Idle.
func (c *Controller) Start(device Device) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateSampling {
		return fmt.Errorf("start sampling: already sampling")
	}

	if err := device.Open(); err != nil {
		return fmt.Errorf("start sampling: %w", err)
	}

	analyzer, err := quality.NewAnalyzer(quality.DefaultAnalyzerConfig(device.SampleRate()))
	if err != nil {
		if cerr := device.Close(); cerr != nil {
			err = multierr.Append(err, cerr)
		}
		return fmt.Errorf("start sampling: %w", err)
	}

	caps := resolveCapabilities(device)

	c.histMu.Lock()
	c.history = quality.NewHistory(c.config.HistoryCapacity)
	c.histMu.Unlock()

	c.device = device
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	c.state = StateSampling

	c.logger.Info("Sampling started", logging.Fields{
		"sample_rate":      device.SampleRate(),
		"capture_interval": c.config.CaptureInterval.String(),
		"pitch_capable":    caps.pitch != nil,
		"spectral_capable": caps.spectral != nil,
	})

	go c.run(device, newGraph(analyzer, caps), c.stop, c.done)
	return nil
}

// Stop halts both loops, waits for the sampling goroutine to exit, and
// releases the device before returning. Idempotent: calling it while Idle is
// a no-op.
func (c *Controller) Stop() error {
	c.mu.Lock()
	if c.state != StateSampling {
		c.mu.Unlock()
		return nil
	}
	c.state = StateIdle
	stop, done, device := c.stop, c.done, c.device
	c.device = nil
	c.mu.Unlock()

	close(stop)
	<-done

	var err error
	if cerr := device.Close(); cerr != nil {
		err = multierr.Append(err, fmt.Errorf("release device: %w", cerr))
	}

	c.logger.Info("Sampling stopped", nil)
	return err
}

// State reports the current lifecycle state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// GetCurrentMetrics returns a copy of the most recent metric sample. The
// second return is false before the first capture tick or before Start.
func (c *Controller) GetCurrentMetrics() (quality.MetricSample, bool) {
	c.histMu.Lock()
	defer c.histMu.Unlock()

	if c.history == nil {
		return quality.MetricSample{}, false
	}
	latest, ok := c.history.Latest()
	if !ok {
		return quality.MetricSample{}, false
	}
	latest.Cepstrum = append([]float64(nil), latest.Cepstrum...)
	return latest, true
}

// HistorySnapshot returns a copy of the retained metric samples, oldest
// first. Mutating the returned slice does not affect the controller.
func (c *Controller) HistorySnapshot() []quality.MetricSample {
	c.histMu.Lock()
	defer c.histMu.Unlock()

	if c.history == nil {
		return nil
	}
	return c.history.Snapshot()
}

// GetDetailedQualityAnalysis scores the current rolling window. It is
// recomputed on every call; with no history yet it returns the neutral
// placeholder report.
func (c *Controller) GetDetailedQualityAnalysis() *quality.Report {
	c.histMu.Lock()
	defer c.histMu.Unlock()

	if c.history == nil {
		return c.scorer.Score(quality.NewHistory(c.config.HistoryCapacity))
	}
	return c.scorer.Score(c.history)
}

// graph is the per-session analysis pipeline, built once at Start and torn
// down with the session
type graph struct {
	analyzer *quality.Analyzer
	caps     capabilities
	centroid *spectral.SpectralCentroid
	rolloff  *spectral.SpectralRolloff
}

func newGraph(analyzer *quality.Analyzer, caps capabilities) *graph {
	g := &graph{analyzer: analyzer, caps: caps}
	if caps.spectral != nil {
		sr := analyzer.Config().SampleRate
		g.centroid = spectral.NewSpectralCentroid(sr)
		g.rolloff = spectral.NewSpectralRolloff(sr)
	}
	return g
}

func (c *Controller) run(device Device, g *graph, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	capture := c.clock.NewTicker(c.config.CaptureInterval)
	defer capture.Stop()
	check := c.clock.NewTicker(c.config.QualityInterval)
	defer check.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-capture.C():
			c.captureTick(device, g, now)
		case <-check.C():
			c.qualityTick()
		}
	}
}

// captureTick measures one chunk and appends exactly one sample to the
// history. Read errors skip the tick; an empty chunk still records a silence
// sample so the history stays tick-aligned.
func (c *Controller) captureTick(device Device, g *graph, now time.Time) {
	chunk, err := device.ReadChunk()
	if err != nil {
		c.logger.Warn("Device read failed, skipping tick", logging.Fields{
			"error": err.Error(),
		})
		return
	}

	sample := g.analyzer.Analyze(chunk, now)

	if g.caps.pitch != nil {
		if f := g.caps.pitch.Pitch(); f > 0 {
			sample.DominantFrequency = f
		}
	}
	if g.caps.spectral != nil {
		if spectrum := g.caps.spectral.Spectrum(); len(spectrum) > 0 {
			sample.SpectralCentroid = g.centroid.Compute(spectrum)
			sample.SpectralRolloff = g.rolloff.Compute(spectrum)
		}
	}

	c.histMu.Lock()
	c.history.Push(sample)
	c.histMu.Unlock()
}

// qualityTick runs the slower health check over the rolling window and logs
// any detected issues
func (c *Controller) qualityTick() {
	c.histMu.Lock()
	report := c.scorer.Score(c.history)
	c.histMu.Unlock()

	if len(report.Issues) > 0 {
		c.logger.Warn("Quality issues detected", logging.Fields{
			"score":  report.OverallScore,
			"issues": report.Issues,
		})
		return
	}
	c.logger.Debug("Quality check passed", logging.Fields{
		"score": report.OverallScore,
	})
}
