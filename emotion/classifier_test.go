package emotion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocalsense/vocalsense/analysis"
	"github.com/vocalsense/vocalsense/transcode"
)

func toneData(t *testing.T, freq float64, seconds float64, sampleRate int) *transcode.AudioData {
	t.Helper()

	samples := make([]float64, int(seconds*float64(sampleRate)))
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}

	data, err := transcode.FromSamples(samples, sampleRate)
	require.NoError(t, err)
	return data
}

func silenceData(t *testing.T, seconds float64, sampleRate int) *transcode.AudioData {
	t.Helper()
	data, err := transcode.FromSamples(make([]float64, int(seconds*float64(sampleRate))), sampleRate)
	require.NoError(t, err)
	return data
}

func assertDistribution(t *testing.T, result *Result) {
	t.Helper()

	require.Len(t, result.Scores, len(All))
	sum := 0.0
	for _, class := range All {
		score := result.Scores[class]
		assert.Greater(t, score, 0.0, "class %s", class)
		sum += score
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	argmax := All[0]
	for _, class := range All {
		if result.Scores[class] > result.Scores[argmax] {
			argmax = class
		}
	}
	assert.Equal(t, argmax, result.Dominant)

	assert.GreaterOrEqual(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)
	assert.GreaterOrEqual(t, result.Arousal, 0.0)
	assert.LessOrEqual(t, result.Arousal, 1.0)
	assert.GreaterOrEqual(t, result.Valence, 0.0)
	assert.LessOrEqual(t, result.Valence, 1.0)
}

func TestAnalyzeEmotionTone(t *testing.T) {
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	result, err := engine.AnalyzeEmotion(toneData(t, 440, 2.0, 44100))
	require.NoError(t, err)
	assertDistribution(t, result)
	require.NotNil(t, result.Features)
	assert.InDelta(t, 440, result.Features.PitchMean, 5)
}

func TestAnalyzeEmotionSilence(t *testing.T) {
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	result, err := engine.AnalyzeEmotion(silenceData(t, 1.0, 44100))
	require.NoError(t, err)
	assertDistribution(t, result)

	assert.Equal(t, Neutral, result.Dominant)
	assert.Less(t, result.Confidence, 0.1)
}

func TestAnalyzeEmotionIdempotent(t *testing.T) {
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	data := toneData(t, 220, 1.0, 44100)
	first, err := engine.AnalyzeEmotion(data)
	require.NoError(t, err)
	second, err := engine.AnalyzeEmotion(data)
	require.NoError(t, err)

	assert.Equal(t, first.Scores, second.Scores)
	assert.Equal(t, first.Dominant, second.Dominant)
	assert.Equal(t, first.Confidence, second.Confidence)
	assert.Equal(t, first.Arousal, second.Arousal)
	assert.Equal(t, first.Valence, second.Valence)
}

func TestAnalyzeEmotionDominantStable(t *testing.T) {
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	data := toneData(t, 440, 2.0, 44100)
	baseline, err := engine.AnalyzeEmotion(data)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		result, err := engine.AnalyzeEmotion(data)
		require.NoError(t, err)
		assert.Equal(t, baseline.Dominant, result.Dominant, "run %d", i)
	}
}

func TestAnalyzeEmotionNilInput(t *testing.T) {
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	_, err = engine.AnalyzeEmotion(nil)
	assert.Error(t, err)
}

func TestClassifyEmptyFeatures(t *testing.T) {
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	result := engine.Classify(&analysis.FeatureVector{})
	assertDistribution(t, result)
	assert.Equal(t, Neutral, result.Dominant)
}

func TestConfidenceShrinksWithGap(t *testing.T) {
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	// Both vectors carry enough energy for full signal quality. The quiet one
	// sits deep in neutral territory and separates the classes decisively;
	// the mid-range one leaves every class near its resting score.
	quiet := &analysis.FeatureVector{EnergyMean: 0.02}
	flat := &analysis.FeatureVector{
		PitchMean: 275, PitchVariance: 5000, PitchRange: 225,
		EnergyMean: 0.5, EnergyVariance: 0.05, SpeakingRate: 5.5,
	}

	gapOf := func(r *Result) float64 {
		top1, top2 := math.Inf(-1), math.Inf(-1)
		for _, class := range All {
			s := r.Scores[class]
			if s > top1 {
				top2, top1 = top1, s
			} else if s > top2 {
				top2 = s
			}
		}
		return top1 - top2
	}

	quietResult := engine.Classify(quiet)
	flatResult := engine.Classify(flat)

	require.Greater(t, gapOf(quietResult), gapOf(flatResult))
	assert.Greater(t, quietResult.Confidence, flatResult.Confidence)
}

func TestSignalQualityPenalties(t *testing.T) {
	base := &analysis.FeatureVector{EnergyMean: 0.5}
	assert.Equal(t, 1.0, signalQuality(base))

	assert.Equal(t, 0.5, signalQuality(&analysis.FeatureVector{EnergyMean: 0.001}))
	assert.Equal(t, 0.8, signalQuality(&analysis.FeatureVector{EnergyMean: 0.5, Jitter: 0.2}))
	assert.InDelta(t, 0.7, signalQuality(&analysis.FeatureVector{EnergyMean: 0.5, Shimmer: 0.2}), 1e-12)

	// All penalties stack: 0.5*0.8*0.7 = 0.28
	stacked := signalQuality(&analysis.FeatureVector{EnergyMean: 0.001, Jitter: 0.2, Shimmer: 0.2})
	assert.InDelta(t, 0.28, stacked, 1e-12)

	// The floor holds even for pathological combinations
	assert.GreaterOrEqual(t, stacked, 0.1)
}

// The weight tables are hand-tuned calibration; any change here is a behavior
// change, not a refactor.
func TestWeightTablesPinned(t *testing.T) {
	expected := map[Emotion][numFeatures]float64{
		Happiness: {0.10, 0.05, 0.08, 0.09, 0.04, 0.08, 0.04, 0.02},
		Sadness:   {-0.10, -0.06, -0.08, -0.07, -0.04, -0.11, -0.05, -0.04},
		Anger:     {0.06, 0.10, 0.08, 0.14, 0.12, 0.07, 0.10, 0.08},
		Fear:      {0.12, 0.13, 0.09, -0.03, 0.10, 0.10, 0.04, 0.05},
		Surprise:  {0.13, 0.12, 0.11, 0.06, 0.08, 0.04, 0.07, 0.04},
		Disgust:   {-0.06, 0.03, 0.02, 0.04, 0.03, -0.05, -0.04, -0.02},
		Neutral:   {-0.12, -0.15, -0.13, -0.10, -0.14, -0.10, -0.06, -0.05},
	}
	assert.Equal(t, expected, classWeights)

	assert.Equal(t, [numFeatures]featureRange{
		{50, 500}, {0, 10000}, {0, 450}, {0, 1},
		{0, 0.1}, {1, 10}, {0, 8000}, {0, 4000},
	}, featureRanges)

	assert.Equal(t, map[Emotion]float64{
		Anger: 0.8, Fear: 0.7, Surprise: 0.6, Happiness: 0.5,
		Disgust: 0.4, Sadness: 0.2, Neutral: 0.0,
	}, arousalCoeffs)

	assert.Equal(t, map[Emotion]float64{
		Happiness: 1.0, Surprise: 0.3, Neutral: 0.0, Disgust: -0.3,
		Fear: -0.5, Sadness: -0.8, Anger: -0.6,
	}, valenceCoeffs)
}

func TestValenceOrdering(t *testing.T) {
	engine, err := NewEngine(nil)
	require.NoError(t, err)

	// A bright, energetic vector should sit above the silence baseline on the
	// valence axis
	bright := engine.Classify(&analysis.FeatureVector{
		PitchMean: 300, PitchVariance: 2000, PitchRange: 200,
		EnergyMean: 0.6, EnergyVariance: 0.03, SpeakingRate: 5,
	})
	dull := engine.Classify(&analysis.FeatureVector{})

	assert.Greater(t, bright.Valence, dull.Valence)
	assert.Greater(t, bright.Arousal, dull.Arousal)
}
