package emotion

import (
	"time"

	"github.com/vocalsense/vocalsense/analysis"
)

// Emotion is one of the seven discrete classes the engine scores
type Emotion string

const (
	Happiness Emotion = "happiness"
	Sadness   Emotion = "sadness"
	Anger     Emotion = "anger"
	Fear      Emotion = "fear"
	Surprise  Emotion = "surprise"
	Disgust   Emotion = "disgust"
	Neutral   Emotion = "neutral"
)

// All lists the classes in canonical order. Arg-max ties resolve to the
// earliest entry here, so the order is part of the engine's contract.
var All = []Emotion{Happiness, Sadness, Anger, Fear, Surprise, Disgust, Neutral}

// Result is one inference outcome. It is read-only: no later call mutates or
// merges it.
type Result struct {
	// Scores is a proper distribution: strictly positive, sums to 1
	Scores map[Emotion]float64 `json:"scores"`

	// Dominant is the arg-max class of Scores
	Dominant Emotion `json:"dominant"`

	// Confidence in [0, 1]: top-two score gap scaled by signal quality
	Confidence float64 `json:"confidence"`

	// Arousal (excitement) and Valence (positivity), both in [0, 1]
	Arousal float64 `json:"arousal"`
	Valence float64 `json:"valence"`

	Timestamp time.Time               `json:"timestamp"`
	Features  *analysis.FeatureVector `json:"features,omitempty"`
}
