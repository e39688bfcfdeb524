package model

// RangeCoverage summarises which target notes the singer reached.
type RangeCoverage struct {
	NotesMissed      []string  `json:"notesMissed" yaml:"notesMissed" msgpack:"notesMissed"`
	NotesAchieved    []string  `json:"notesAchieved" yaml:"notesAchieved" msgpack:"notesAchieved"`
	LowestNote       string    `json:"lowestNote" yaml:"lowestNote" msgpack:"lowestNote"`
	HighestNote      string    `json:"highestNote" yaml:"highestNote" msgpack:"highestNote"`
	ComfortableRange [2]string `json:"comfortableRange" yaml:"comfortableRange" msgpack:"comfortableRange"`
}

// SessionTelemetry is the full set of derived metrics for one session.
// Pitch values are in cents (+ sharp, - flat), rhythm offsets in ms
// (- early, + late), durations in seconds.
type SessionTelemetry struct {
	PitchDeviationAverage float64 `json:"pitchDeviationAverage" yaml:"pitchDeviationAverage" msgpack:"pitchDeviationAverage"`
	PitchDeviationStdDev  float64 `json:"pitchDeviationStdDev" yaml:"pitchDeviationStdDev" msgpack:"pitchDeviationStdDev"`
	SharpNotesCount       int     `json:"sharpNotesCount" yaml:"sharpNotesCount" msgpack:"sharpNotesCount"`
	FlatNotesCount        int     `json:"flatNotesCount" yaml:"flatNotesCount" msgpack:"flatNotesCount"`

	RhythmicOffsetAverage float64 `json:"rhythmicOffsetAverage" yaml:"rhythmicOffsetAverage" msgpack:"rhythmicOffsetAverage"`
	EarlyNotesCount       int     `json:"earlyNotesCount" yaml:"earlyNotesCount" msgpack:"earlyNotesCount"`
	LateNotesCount        int     `json:"lateNotesCount" yaml:"lateNotesCount" msgpack:"lateNotesCount"`

	StabilityVariance float64 `json:"stabilityVariance" yaml:"stabilityVariance" msgpack:"stabilityVariance"`
	VibratoRate       float64 `json:"vibratoRate" yaml:"vibratoRate" msgpack:"vibratoRate"`
	VibratoDepth      float64 `json:"vibratoDepth" yaml:"vibratoDepth" msgpack:"vibratoDepth"`

	RangeCoverage RangeCoverage `json:"rangeCoverage" yaml:"rangeCoverage" msgpack:"rangeCoverage"`

	TotalDuration     float64 `json:"totalDuration" yaml:"totalDuration" msgpack:"totalDuration"`
	ActiveSingingTime float64 `json:"activeSingingTime" yaml:"activeSingingTime" msgpack:"activeSingingTime"`
	SilenceTime       float64 `json:"silenceTime" yaml:"silenceTime" msgpack:"silenceTime"`
}

// EmptyTelemetry is the canonical result for a session without a single
// valid sample.
func EmptyTelemetry(durationSeconds float64) SessionTelemetry {
	return SessionTelemetry{
		RangeCoverage: RangeCoverage{
			NotesMissed:      []string{},
			NotesAchieved:    []string{},
			LowestNote:       NoNote,
			HighestNote:      NoNote,
			ComfortableRange: [2]string{NoNote, NoNote},
		},
		TotalDuration: durationSeconds,
		SilenceTime:   durationSeconds,
	}
}
