// Package feedback scores a session straight from its raw samples. It is
// the quick path next to the telemetry/diagnosis pair and shares nothing
// with it but the pitch helpers.
package feedback

import (
	"math"

	"github.com/RyanBlaney/sonido-vocal/config"
	"github.com/RyanBlaney/sonido-vocal/logging"
	"github.com/RyanBlaney/sonido-vocal/model"
	"github.com/RyanBlaney/sonido-vocal/pitch"
	"github.com/RyanBlaney/sonido-vocal/stats"
)

// Recommendation bands on the sub-scores
const (
	pitchPoor         = 50.0
	pitchFair         = 75.0
	stabilityPoor     = 60.0
	stabilityGood     = 85.0
	jitterHighCents   = 15.0
	timingPoor        = 70.0
	bonusPitchMin     = 80.0
	bonusStabilityMin = 80.0
)

const (
	RecNoSinging        = "No valid singing detected. Check your microphone and sing closer to it."
	RecPitchPoor        = "Work on pitch matching: practise slow scales against a reference tone."
	RecPitchFair        = "Your pitch is close. Focus on landing each note cleanly at its start."
	RecPitchGood        = "Great pitch accuracy. Keep it up."
	RecStabilityPoor    = "Your notes waver. Practise long sustained tones with steady breath support."
	RecStabilityGood    = "Very steady sustained notes."
	RecJitterHigh       = "There is noticeable pitch jitter; relax the jaw and throat while holding notes."
	RecTimingPoor       = "Practise with a metronome to tighten your timing."
	RecExcellentOverall = "Excellent control overall: try more demanding songs."
)

// Summarizer computes the composite score and recommendation list. It
// holds only configuration and can be shared between goroutines.
type Summarizer struct {
	config config.FeedbackConfig
	logger logging.Logger
}

// NewSummarizer creates a summarizer with the given weights and penalties
func NewSummarizer(cfg config.FeedbackConfig) *Summarizer {
	return &Summarizer{
		config: cfg,
		logger: logging.WithFields(logging.Fields{
			"component": "feedback_summarizer",
		}),
	}
}

// NewDefaultSummarizer creates a summarizer with stock weights
func NewDefaultSummarizer() *Summarizer {
	return NewSummarizer(config.DefaultFeedbackConfig())
}

// Analyze scores the valid samples of a session. With no valid sample the
// result is the zero score with a single "no singing" recommendation.
func (s *Summarizer) Analyze(samples []model.PerformanceSample) model.AnalysisResult {
	valid := model.ValidSamples(samples)
	if len(valid) == 0 {
		s.logger.Debug("No valid samples, returning empty feedback")
		return model.AnalysisResult{
			Score: 0,
			Feedback: model.PerformanceFeedback{
				Recommendations: []string{RecNoSinging},
			},
		}
	}

	cents := make([]float64, 0, len(valid))
	inTune := 0
	for _, smp := range valid {
		c := pitch.FrequencyToCents(smp.DetectedFrequency, smp.TargetFrequency)
		cents = append(cents, c)
		if pitch.IsInTuneWithin(smp.DetectedFrequency, smp.TargetFrequency, s.config.InTuneCents) {
			inTune++
		}
	}
	avgAbs := stats.MeanAbs(cents)

	freqs := model.DetectedFrequencies(valid)
	jitter := pitch.CalculateJitter(freqs)

	fb := model.PerformanceFeedback{
		PitchAccuracy:         s.PitchScore(avgAbs),
		AverageCentsDeviation: avgAbs,
		InTunePercentage:      stats.Fraction(inTune, len(valid)),
		Stability:             s.StabilityScore(jitter),
		JitterCents:           jitter,
		StabilityPercentage:   pitch.CalculateStabilityPercentage(freqs),
		Timing:                s.config.TimingScore,
	}
	fb.Recommendations = recommendations(fb)

	score := s.Composite(fb.PitchAccuracy, fb.Stability, fb.Timing)

	s.logger.Debug("Feedback computed", logging.Fields{
		"valid_samples": len(valid),
		"score":         score,
		"pitch":         fb.PitchAccuracy,
		"stability":     fb.Stability,
	})

	return model.AnalysisResult{Score: score, Feedback: fb}
}

// PitchScore maps an average absolute cents deviation to 0-100. It never
// increases as the deviation grows.
func (s *Summarizer) PitchScore(avgAbsCents float64) float64 {
	return stats.ClampMin(100-s.config.PitchPenaltyPerCent*math.Abs(avgAbsCents), 0)
}

// StabilityScore maps average jitter in cents to 0-100
func (s *Summarizer) StabilityScore(jitterCents float64) float64 {
	return stats.ClampMin(100-s.config.StabilityPenaltyPerCent*jitterCents, 0)
}

// Composite weights the sub-scores into the integer session score
func (s *Summarizer) Composite(pitchScore, stabilityScore, timingScore float64) int {
	w := s.config.Weights
	return int(math.Round(w.Pitch*pitchScore + w.Stability*stabilityScore + w.Timing*timingScore))
}

func recommendations(fb model.PerformanceFeedback) []string {
	recs := make([]string, 0, 4)

	switch {
	case fb.PitchAccuracy < pitchPoor:
		recs = append(recs, RecPitchPoor)
	case fb.PitchAccuracy < pitchFair:
		recs = append(recs, RecPitchFair)
	default:
		recs = append(recs, RecPitchGood)
	}

	if fb.Stability < stabilityPoor {
		recs = append(recs, RecStabilityPoor)
	} else if fb.Stability > stabilityGood {
		recs = append(recs, RecStabilityGood)
	}

	if fb.JitterCents > jitterHighCents {
		recs = append(recs, RecJitterHigh)
	}

	if fb.Timing < timingPoor {
		recs = append(recs, RecTimingPoor)
	}

	if fb.PitchAccuracy > bonusPitchMin && fb.Stability > bonusStabilityMin {
		recs = append(recs, RecExcellentOverall)
	}

	return recs
}
