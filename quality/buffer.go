package quality

import (
	"fmt"
	"time"

	"github.com/vocalsense/vocalsense/transcode"
)

// chunkInterval is the offline chunking cadence, matching the realtime
// capture tick
const chunkInterval = 100 * time.Millisecond

// AnalyzeBuffer runs the realtime quality pipeline over a whole decoded
// sample at the standard cadence: the buffer is cut into 100 ms chunks, each
// measured and pushed through a fresh rolling history, and the final window
// is scored. A trailing partial chunk is analyzed as-is.
func AnalyzeBuffer(data *transcode.AudioData, config *AnalyzerConfig) (*Report, error) {
	if data == nil || data.SampleRate <= 0 {
		return nil, fmt.Errorf("quality analysis: no decoded audio")
	}
	if config == nil {
		config = DefaultAnalyzerConfig(data.SampleRate)
	}
	if config.SampleRate != data.SampleRate {
		return nil, fmt.Errorf("quality analysis: config sample rate %d does not match audio %d",
			config.SampleRate, data.SampleRate)
	}

	analyzer, err := NewAnalyzer(config)
	if err != nil {
		return nil, err
	}

	history := NewHistory(DefaultHistoryCapacity)
	chunkSize := data.SampleRate / 10
	if chunkSize < 1 {
		// Sample rates below the 100 ms cadence still have to advance
		chunkSize = 1
	}
	now := data.Timestamp

	for offset := 0; offset < len(data.PCM); offset += chunkSize {
		end := offset + chunkSize
		if end > len(data.PCM) {
			end = len(data.PCM)
		}
		history.Push(analyzer.Analyze(data.PCM[offset:end], now))
		now = now.Add(chunkInterval)
	}

	return NewScorer().Score(history), nil
}
