package emotion

// Calibration constants of the inference engine. These values are hand-tuned
// against the bias characteristics of the autocorrelation pitch estimator and
// the linear-band cepstral front end; they are load-bearing and must not be
// re-derived or "improved" independently of each other. The tests pin every
// row.

// featureRange is the fixed physiological range a raw feature is normalized
// against: normalized = 2*(value-Min)/(Max-Min) - 1. Values outside the range
// map outside [-1, 1] deliberately; the per-class score clamp handles them.
type featureRange struct {
	Min float64
	Max float64
}

// Normalization ranges, in feature order: pitch mean (Hz), pitch variance,
// pitch range (Hz), energy mean, energy variance, speaking rate (onsets/s),
// spectral centroid (Hz), spectral bandwidth (Hz).
var featureRanges = [numFeatures]featureRange{
	{50, 500},
	{0, 10000},
	{0, 450},
	{0, 1},
	{0, 0.1},
	{1, 10},
	{0, 8000},
	{0, 4000},
}

const numFeatures = 8

// classWeights maps each class to one weight per normalized feature.
// Positive weights reward elevated features, negative weights reward
// suppressed ones; the neutral row is deliberately the most negative so flat,
// low-activity input scores as neutral rather than as low-grade sadness.
var classWeights = map[Emotion][numFeatures]float64{
	Happiness: {0.10, 0.05, 0.08, 0.09, 0.04, 0.08, 0.04, 0.02},
	Sadness:   {-0.10, -0.06, -0.08, -0.07, -0.04, -0.11, -0.05, -0.04},
	Anger:     {0.06, 0.10, 0.08, 0.14, 0.12, 0.07, 0.10, 0.08},
	Fear:      {0.12, 0.13, 0.09, -0.03, 0.10, 0.10, 0.04, 0.05},
	Surprise:  {0.13, 0.12, 0.11, 0.06, 0.08, 0.04, 0.07, 0.04},
	Disgust:   {-0.06, 0.03, 0.02, 0.04, 0.03, -0.05, -0.04, -0.02},
	Neutral:   {-0.12, -0.15, -0.13, -0.10, -0.14, -0.10, -0.06, -0.05},
}

// arousalCoeffs weight each class's share of the distribution into the
// excitement coordinate
var arousalCoeffs = map[Emotion]float64{
	Anger:     0.8,
	Fear:      0.7,
	Surprise:  0.6,
	Happiness: 0.5,
	Disgust:   0.4,
	Sadness:   0.2,
	Neutral:   0.0,
}

// valenceCoeffs weight each class into the positivity coordinate on [-1, 1],
// remapped to [0, 1] after summation
var valenceCoeffs = map[Emotion]float64{
	Happiness: 1.0,
	Surprise:  0.3,
	Neutral:   0.0,
	Disgust:   -0.3,
	Fear:      -0.5,
	Sadness:   -0.8,
	Anger:     -0.6,
}
