package model

// PerformanceFeedback is the quick-feedback breakdown produced straight from
// the raw samples. Sub-scores are 0-100.
type PerformanceFeedback struct {
	PitchAccuracy         float64 `json:"pitchAccuracy" yaml:"pitchAccuracy" msgpack:"pitchAccuracy"`
	AverageCentsDeviation float64 `json:"averageCentsDeviation" yaml:"averageCentsDeviation" msgpack:"averageCentsDeviation"`
	InTunePercentage      float64 `json:"inTunePercentage" yaml:"inTunePercentage" msgpack:"inTunePercentage"`

	Stability           float64 `json:"stability" yaml:"stability" msgpack:"stability"`
	JitterCents         float64 `json:"jitterCents" yaml:"jitterCents" msgpack:"jitterCents"`
	StabilityPercentage float64 `json:"stabilityPercentage" yaml:"stabilityPercentage" msgpack:"stabilityPercentage"`

	// Timing is a fixed placeholder until onset alignment exists.
	Timing float64 `json:"timing" yaml:"timing" msgpack:"timing"`

	Recommendations []string `json:"recommendations" yaml:"recommendations" msgpack:"recommendations"`
}

// AnalysisResult pairs the composite score with its feedback breakdown.
type AnalysisResult struct {
	Score    int                 `json:"score" yaml:"score" msgpack:"score"`
	Feedback PerformanceFeedback `json:"feedback" yaml:"feedback" msgpack:"feedback"`
}
