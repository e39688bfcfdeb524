package telemetry

import (
	"sort"

	"github.com/RyanBlaney/sonido-vocal/config"
	"github.com/RyanBlaney/sonido-vocal/model"
	"github.com/RyanBlaney/sonido-vocal/pitch"
	"github.com/RyanBlaney/sonido-vocal/stats"
)

type noteStats struct {
	name   string
	total  int
	inTune int
}

func (n noteStats) accuracy() float64 {
	if n.total == 0 {
		return 0
	}
	return float64(n.inTune) / float64(n.total)
}

// rangeCoverage classifies each target note with enough samples as missed
// or achieved, and reports the detected extremes and the comfortable range.
func (a *Aggregator) rangeCoverage(valid []model.PerformanceSample) model.RangeCoverage {
	notes := a.groupByTargetNote(valid)

	rc := model.RangeCoverage{
		NotesMissed:   []string{},
		NotesAchieved: []string{},
	}
	var comfortable []string
	for _, n := range notes {
		if n.total < a.config.MinNoteSamples {
			continue
		}
		acc := n.accuracy()
		if acc < a.config.MissedAccuracy {
			rc.NotesMissed = append(rc.NotesMissed, n.name)
		} else {
			rc.NotesAchieved = append(rc.NotesAchieved, n.name)
		}
		if acc > a.config.ComfortableAccuracy {
			comfortable = append(comfortable, n.name)
		}
	}

	lo, hi, _ := stats.MinMax(model.DetectedFrequencies(valid))
	rc.LowestNote = pitch.FrequencyToNoteName(lo)
	rc.HighestNote = pitch.FrequencyToNoteName(hi)

	if len(comfortable) == 0 {
		rc.ComfortableRange = [2]string{rc.LowestNote, rc.HighestNote}
	} else {
		sortNoteNames(comfortable, a.config.ComfortableRangeOrder)
		rc.ComfortableRange = [2]string{comfortable[0], comfortable[len(comfortable)-1]}
	}
	return rc
}

// groupByTargetNote tallies samples per target note in order of first
// appearance. Frames without an active note are skipped.
func (a *Aggregator) groupByTargetNote(valid []model.PerformanceSample) []*noteStats {
	index := make(map[string]*noteStats)
	var ordered []*noteStats
	for _, s := range valid {
		if !s.HasTargetNote() {
			continue
		}
		n, ok := index[s.TargetNote]
		if !ok {
			n = &noteStats{name: s.TargetNote}
			index[s.TargetNote] = n
			ordered = append(ordered, n)
		}
		n.total++
		if pitch.IsInTuneWithin(s.DetectedFrequency, s.TargetFrequency, a.config.InTuneCents) {
			n.inTune++
		}
	}
	return ordered
}

func sortNoteNames(names []string, order config.RangeOrder) {
	if order != config.RangeOrderPitch {
		sort.Strings(names)
		return
	}
	// Unparseable names sort after real notes, lexically among themselves.
	sort.SliceStable(names, func(i, j int) bool {
		mi, erri := pitch.NoteToMIDI(names[i])
		mj, errj := pitch.NoteToMIDI(names[j])
		switch {
		case erri == nil && errj == nil:
			if mi != mj {
				return mi < mj
			}
			return names[i] < names[j]
		case erri == nil:
			return true
		case errj == nil:
			return false
		default:
			return names[i] < names[j]
		}
	})
}
