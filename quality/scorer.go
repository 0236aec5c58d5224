package quality

import (
	"math"
	"time"

	"github.com/vocalsense/vocalsense/logging"
)

// Sub-score weights of the overall quality score
const (
	weightVolume     = 0.25
	weightNoise      = 0.20
	weightClarity    = 0.25
	weightDynamics   = 0.10
	weightDistortion = 0.15
	weightSilence    = 0.05
)

// Report is one on-demand quality assessment. It is recomputed from the
// history on every request and never cached.
type Report struct {
	OverallScore int `json:"overall_score"` // 0-100

	VolumeScore     float64 `json:"volume_score"`
	ClarityScore    float64 `json:"clarity_score"`
	NoiseScore      float64 `json:"noise_score"`
	DynamicsScore   float64 `json:"dynamics_score"`
	DistortionScore float64 `json:"distortion_score"`

	Recommendation string   `json:"recommendation"`
	Issues         []string `json:"issues"`
	Suggestions    []string `json:"suggestions"`

	Timestamp time.Time `json:"timestamp"`
}

// Scorer maps the rolling metric history onto a 0-100 report
type Scorer struct {
	logger logging.Logger
}

// NewScorer creates a scorer
func NewScorer() *Scorer {
	return &Scorer{
		logger: logging.WithFields(logging.Fields{
			"component": "quality_scorer",
		}),
	}
}

// Score builds a report from the latest sample of the history. An empty
// history yields a neutral placeholder (score 50, no issues) rather than an
// error.
func (s *Scorer) Score(history *History) *Report {
	latest, ok := history.Latest()
	if !ok {
		return &Report{
			OverallScore:   50,
			Recommendation: recommendation(50),
			Issues:         []string{},
			Suggestions:    []string{},
			Timestamp:      time.Now(),
		}
	}

	volumeScore := math.Max(0, 100-2*math.Abs(latest.Volume-50)) + math.Min(20, latest.DynamicRange)
	noiseScore := math.Max(0, 100-latest.NoiseRatio)
	clarityScore := latest.ClarityRatio
	dynamicsScore := math.Min(100, 2*latest.DynamicRange)
	distortionScore := math.Max(0, 100-2*latest.DistortionRatio)

	overall := int(math.Round(
		weightVolume*volumeScore +
			weightNoise*noiseScore +
			weightClarity*clarityScore +
			weightDynamics*dynamicsScore +
			weightDistortion*distortionScore +
			weightSilence*(100-latest.SilenceRatio)))
	if overall > 100 {
		// The dynamic-range bonus can push the volume sub-score past 100
		overall = 100
	}

	issues, suggestions := diagnose(latest)

	report := &Report{
		OverallScore:    overall,
		VolumeScore:     volumeScore,
		ClarityScore:    clarityScore,
		NoiseScore:      noiseScore,
		DynamicsScore:   dynamicsScore,
		DistortionScore: distortionScore,
		Recommendation:  recommendation(overall),
		Issues:          issues,
		Suggestions:     suggestions,
		Timestamp:       time.Now(),
	}

	s.logger.Debug("Scored quality window", logging.Fields{
		"overall": overall,
		"issues":  len(issues),
		"window":  history.Len(),
	})

	return report
}

// diagnose evaluates the fixed issue/suggestion rule list against one sample.
// Every issue carries exactly one paired suggestion.
func diagnose(m MetricSample) (issues, suggestions []string) {
	issues = []string{}
	suggestions = []string{}

	add := func(issue, suggestion string) {
		issues = append(issues, issue)
		suggestions = append(suggestions, suggestion)
	}

	if m.Volume < 20 {
		add("Recording is too quiet", "Move closer to the microphone or raise the input gain")
	}
	if m.Volume > 80 {
		add("Recording is too loud", "Move back from the microphone or lower the input gain")
	}
	if m.NoiseRatio > 30 {
		add("High background noise", "Record in a quieter environment")
	}
	if m.ClarityRatio < 60 {
		add("Low voice clarity", "Speak clearly and directly toward the microphone")
	}
	if m.DistortionRatio > 25 {
		add("Audio distortion detected", "Lower the input gain to avoid clipping")
	}
	if m.SilenceRatio > 40 {
		add("Long silent stretches", "Reduce pauses while recording")
	}
	if m.DynamicRange < 10 {
		add("Flat dynamics", "Vary your speaking volume for a livelier recording")
	}
	return issues, suggestions
}

func recommendation(score int) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 80:
		return "very good"
	case score >= 70:
		return "good"
	case score >= 60:
		return "fair"
	case score >= 50:
		return "needs improvement"
	default:
		return "needs major improvement"
	}
}
