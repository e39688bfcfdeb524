package diagnosis

import (
	"fmt"
	"math"
	"strings"

	"github.com/RyanBlaney/sonido-vocal/config"
	"github.com/RyanBlaney/sonido-vocal/model"
	"github.com/RyanBlaney/sonido-vocal/pitch"
)

// RuleID identifies a diagnostic rule
type RuleID string

const (
	RuleHypoPitch          RuleID = "R1"
	RuleHyperPitch         RuleID = "R2"
	RuleInstability        RuleID = "R3"
	RuleExcessiveVibrato   RuleID = "R4"
	RuleHighNoteDifficulty RuleID = "R5"
	RuleLowNoteDifficulty  RuleID = "R6"
	RuleTiming             RuleID = "R7"
	RuleAnticipation       RuleID = "R8"
)

// Rule describes one heuristic. The engine evaluates every rule the same
// way, so new rules are new table entries.
type Rule struct {
	ID RuleID

	// Diagnosis is the short issue text used for primary and secondary issues
	Diagnosis    string
	Prescription []string

	Trigger  func(t model.SessionTelemetry) bool
	Severity func(t model.SessionTelemetry) model.Severity
	Range    func(t model.SessionTelemetry) model.AffectedRange

	// Template renders the detailed explanation; nil falls back to Diagnosis
	Template func(t model.SessionTelemetry) string
}

func fixedSeverity(s model.Severity) func(model.SessionTelemetry) model.Severity {
	return func(model.SessionTelemetry) model.Severity { return s }
}

func fixedRange(r model.AffectedRange) func(model.SessionTelemetry) model.AffectedRange {
	return func(model.SessionTelemetry) model.AffectedRange { return r }
}

func missedRange(t model.SessionTelemetry) model.AffectedRange {
	return AffectedRangeFor(t.RangeCoverage.NotesMissed)
}

// DefaultRules builds the stock rule table in ranking-tie order.
func DefaultRules(cfg config.DiagnosisConfig) []Rule {
	return []Rule{
		{
			ID:        RuleHypoPitch,
			Diagnosis: "Hypo-pitch: singing consistently flat",
			Prescription: []string{
				"Sirens on 'ng' sliding up into the target note",
				"Lip trills on ascending five-note scales",
				"Sustained notes against a drone, checked with a tuner",
			},
			Trigger: func(t model.SessionTelemetry) bool {
				return t.PitchDeviationAverage < -cfg.PitchBands.Mild
			},
			Severity: func(t model.SessionTelemetry) model.Severity {
				return severityForBands(math.Abs(t.PitchDeviationAverage), cfg.PitchBands)
			},
			Range: missedRange,
			Template: func(t model.SessionTelemetry) string {
				return fmt.Sprintf("Your pitch sits on average %.1f cents below the target. "+
					"This usually comes from insufficient breath support or a lowered soft palate, "+
					"which lets the tone sag under the note.", math.Abs(t.PitchDeviationAverage))
			},
		},
		{
			ID:        RuleHyperPitch,
			Diagnosis: "Hyper-pitch: singing consistently sharp",
			Prescription: []string{
				"Descending five-note scales on 'oo' with a released jaw",
				"Breath-release exercises to lower laryngeal tension",
				"Soft sustained notes against a reference pitch",
			},
			Trigger: func(t model.SessionTelemetry) bool {
				return t.PitchDeviationAverage > cfg.PitchBands.Mild
			},
			Severity: func(t model.SessionTelemetry) model.Severity {
				return severityForBands(t.PitchDeviationAverage, cfg.PitchBands)
			},
			Range: missedRange,
			Template: func(t model.SessionTelemetry) string {
				return fmt.Sprintf("Your pitch sits on average %.1f cents above the target. "+
					"Overshooting like this is typical of excess subglottic pressure or a raised larynx.",
					t.PitchDeviationAverage)
			},
		},
		{
			ID:        RuleInstability,
			Diagnosis: "Pitch instability (tremolo)",
			Prescription: []string{
				"Messa di voce on one comfortable pitch",
				"Straw phonation for five minutes a day",
				"Long tones with a steady 4-8-4 breath count",
			},
			Trigger: func(t model.SessionTelemetry) bool {
				return t.StabilityVariance > cfg.StabilityBands.Mild
			},
			Severity: func(t model.SessionTelemetry) model.Severity {
				return severityForBands(t.StabilityVariance, cfg.StabilityBands)
			},
			Range: fixedRange(model.RangeFull),
			Template: func(t model.SessionTelemetry) string {
				return fmt.Sprintf("Held notes waver with a frequency variance of %.1f Hz². "+
					"Unsteady airflow is the usual cause; the pitch follows the breath.",
					t.StabilityVariance)
			},
		},
		{
			ID:        RuleTiming,
			Diagnosis: "Inconsistent timing",
			Prescription: []string{
				"Sing the melody on 'ta' with a slow metronome",
				"Clap the rhythm before singing it",
				"Record entries and compare them with the backing track",
			},
			Trigger: func(t model.SessionTelemetry) bool {
				return math.Abs(t.RhythmicOffsetAverage) > cfg.TimingBands.Mild
			},
			Severity: func(t model.SessionTelemetry) model.Severity {
				return severityForBands(math.Abs(t.RhythmicOffsetAverage), cfg.TimingBands)
			},
			Range: fixedRange(model.RangeFull),
			Template: func(t model.SessionTelemetry) string {
				direction := "after"
				if t.RhythmicOffsetAverage < 0 {
					direction = "ahead of"
				}
				return fmt.Sprintf("Note entries land on average %.0f ms %s the beat.",
					math.Abs(t.RhythmicOffsetAverage), direction)
			},
		},
		{
			ID:        RuleExcessiveVibrato,
			Diagnosis: "Excessive vibrato rate",
			Prescription: []string{
				"Straight-tone sustained notes before letting vibrato in",
				"Slow pitch oscillations paced by a metronome",
				"Neck and shoulder release before singing",
			},
			Trigger: func(t model.SessionTelemetry) bool {
				return t.VibratoRate > cfg.VibratoRateMaxHz
			},
			Severity: fixedSeverity(model.SeverityMild),
			Range:    fixedRange(model.RangeFull),
			Template: func(t model.SessionTelemetry) string {
				return fmt.Sprintf("Vibrato oscillates at %.1f Hz with %.0f cents depth, faster than %.1f Hz. "+
					"A fast, narrow vibrato often signals throat tension.",
					t.VibratoRate, t.VibratoDepth, cfg.VibratoRateMaxHz)
			},
		},
		{
			ID:        RuleHighNoteDifficulty,
			Diagnosis: "Difficulty with high notes",
			Prescription: []string{
				"Octave slides on 'ng' to bridge registers",
				"Staccato arpeggios into the upper range",
				"Narrow the vowel as the pitch rises",
			},
			Trigger: func(t model.SessionTelemetry) bool {
				return len(missedNotes(t.RangeCoverage.NotesMissed, pitch.IsHighNote)) > 0
			},
			Severity: fixedSeverity(model.SeverityModerate),
			Range:    fixedRange(model.RangeHigh),
			Template: func(t model.SessionTelemetry) string {
				return fmt.Sprintf("Upper-register notes were missed: %s. "+
					"The voice is likely not transitioning cleanly into head voice.",
					strings.Join(missedNotes(t.RangeCoverage.NotesMissed, pitch.IsHighNote), ", "))
			},
		},
		{
			ID:        RuleLowNoteDifficulty,
			Diagnosis: "Difficulty with low notes",
			Prescription: []string{
				"Descending glides on 'vvv' into the low range",
				"Relaxed humming on low pitches at speech volume",
				"Keep the chest voice light instead of pushing",
			},
			Trigger: func(t model.SessionTelemetry) bool {
				return len(missedNotes(t.RangeCoverage.NotesMissed, pitch.IsLowNote)) > 0
			},
			Severity: fixedSeverity(model.SeverityModerate),
			Range:    fixedRange(model.RangeLow),
			Template: func(t model.SessionTelemetry) string {
				return fmt.Sprintf("Lower-register notes were missed: %s. "+
					"Low notes need a relaxed larynx and less pressure than they seem to.",
					strings.Join(missedNotes(t.RangeCoverage.NotesMissed, pitch.IsLowNote), ", "))
			},
		},
		{
			ID:        RuleAnticipation,
			Diagnosis: "Excessive anticipation",
			Prescription: []string{
				"Count rests aloud before each entry",
				"Breathe on the beat before the phrase, not earlier",
				"Practise deliberately late entries against a metronome",
			},
			Trigger: func(t model.SessionTelemetry) bool {
				return float64(t.EarlyNotesCount) > float64(t.LateNotesCount)*cfg.AnticipationRatio
			},
			Severity: fixedSeverity(model.SeverityMild),
			Range:    fixedRange(model.RangeFull),
			Template: func(t model.SessionTelemetry) string {
				return fmt.Sprintf("%d entries came early against %d late. "+
					"You tend to jump in before the beat.", t.EarlyNotesCount, t.LateNotesCount)
			},
		},
	}
}
