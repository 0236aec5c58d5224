package emotion

import (
	"fmt"
	"math"
	"time"

	"github.com/vocalsense/vocalsense/analysis"
	"github.com/vocalsense/vocalsense/logging"
	"github.com/vocalsense/vocalsense/transcode"
)

// Engine scores feature vectors against the fixed per-class weight tables.
// It is stateless across calls; a single Engine can serve concurrent callers.
type Engine struct {
	extractor *analysis.Extractor
	logger    logging.Logger
}

// NewEngine creates an inference engine. A nil config uses the calibrated
// extraction defaults.
func NewEngine(config *analysis.Config) (*Engine, error) {
	extractor, err := analysis.NewExtractor(config)
	if err != nil {
		return nil, err
	}

	return &Engine{
		extractor: extractor,
		logger: logging.WithFields(logging.Fields{
			"component": "emotion_engine",
		}),
	}, nil
}

// AnalyzeEmotion runs the full pipeline on a decoded sample buffer:
// feature extraction followed by classification. Decode or extraction
// failures propagate; an empty buffer still yields a valid (low confidence,
// neutral-leaning) result.
func (e *Engine) AnalyzeEmotion(data *transcode.AudioData) (*Result, error) {
	fv, err := e.extractor.Extract(data)
	if err != nil {
		return nil, fmt.Errorf("emotion analysis: %w", err)
	}
	return e.Classify(fv), nil
}

// Classify scores one feature vector. The input is read, never retained
// mutably; the result embeds it for downstream reporting.
func (e *Engine) Classify(fv *analysis.FeatureVector) *Result {
	features := normalizeFeatures(fv)

	raw := make(map[Emotion]float64, len(All))
	for _, class := range All {
		weights := classWeights[class]
		sum := 0.0
		for i, w := range weights {
			sum += w * features[i]
		}
		raw[class] = clamp01((sum + 1) / 2)
	}

	scores := softmax(raw)
	dominant, top1, top2 := rank(scores)

	quality := signalQuality(fv)
	confidence := math.Min(1.0, 2*(top1-top2)*quality)

	result := &Result{
		Scores:     scores,
		Dominant:   dominant,
		Confidence: confidence,
		Arousal:    arousal(scores),
		Valence:    valence(scores),
		Timestamp:  time.Now(),
		Features:   fv,
	}

	e.logger.Debug("Classified sample", logging.Fields{
		"dominant":   string(dominant),
		"confidence": confidence,
		"frames":     fv.FrameCount,
	})

	return result
}

// normalizeFeatures maps the eight scalar features onto [-1, 1] against their
// fixed ranges. Out-of-range inputs are not clamped here; extreme values are
// allowed to saturate the class scores instead.
func normalizeFeatures(fv *analysis.FeatureVector) [numFeatures]float64 {
	raw := [numFeatures]float64{
		fv.PitchMean,
		fv.PitchVariance,
		fv.PitchRange,
		fv.EnergyMean,
		fv.EnergyVariance,
		fv.SpeakingRate,
		fv.SpectralCentroidMean(),
		fv.SpectralBandwidthMean(),
	}

	var out [numFeatures]float64
	for i, v := range raw {
		r := featureRanges[i]
		out[i] = 2*(v-r.Min)/(r.Max-r.Min) - 1
	}
	return out
}

// softmax converts raw class scores into a proper distribution. The max-shift
// keeps the exponentials in range; with clamped inputs it is a formality, but
// the invariant (strictly positive, sums to 1) must hold regardless.
func softmax(raw map[Emotion]float64) map[Emotion]float64 {
	max := math.Inf(-1)
	for _, s := range raw {
		if s > max {
			max = s
		}
	}

	total := 0.0
	out := make(map[Emotion]float64, len(raw))
	for class, s := range raw {
		v := math.Exp(s - max)
		out[class] = v
		total += v
	}
	for class := range out {
		out[class] /= total
	}
	return out
}

// rank finds the dominant class and the two highest probabilities. Ties
// resolve to the earliest class in All, so iteration must follow that order
// rather than map order.
func rank(scores map[Emotion]float64) (dominant Emotion, top1, top2 float64) {
	top1, top2 = math.Inf(-1), math.Inf(-1)
	for _, class := range All {
		s := scores[class]
		if s > top1 {
			top2 = top1
			top1 = s
			dominant = class
		} else if s > top2 {
			top2 = s
		}
	}
	return dominant, top1, top2
}

// signalQuality discounts confidence for weak or unstable input: very low
// energy halves it, high jitter and high shimmer shave it further, and the
// floor keeps downstream products from zeroing out entirely.
func signalQuality(fv *analysis.FeatureVector) float64 {
	quality := 1.0
	if fv.EnergyMean < 0.01 {
		quality *= 0.5
	}
	if fv.Jitter > 0.1 {
		quality *= 0.8
	}
	if fv.Shimmer > 0.1 {
		quality *= 0.7
	}
	return math.Max(quality, 0.1)
}

func arousal(scores map[Emotion]float64) float64 {
	sum := 0.0
	for class, p := range scores {
		sum += p * arousalCoeffs[class]
	}
	return clamp01(sum)
}

func valence(scores map[Emotion]float64) float64 {
	sum := 0.0
	for class, p := range scores {
		sum += p * valenceCoeffs[class]
	}
	return clamp01((sum + 1) / 2)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
