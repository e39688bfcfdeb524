package model

// Session is one recorded performance as handed over by the capture layer:
// samples in capture order plus the nominal backing-track duration.
type Session struct {
	ID           string              `json:"sessionId,omitempty" yaml:"sessionId,omitempty" msgpack:"sessionId,omitempty"`
	SongDuration float64             `json:"songDuration" yaml:"songDuration" msgpack:"songDuration"`
	Samples      []PerformanceSample `json:"samples" yaml:"samples" msgpack:"samples"`
}

// ValidCount returns how many samples carry a voiced pitch.
func (s Session) ValidCount() int {
	n := 0
	for _, smp := range s.Samples {
		if smp.Valid() {
			n++
		}
	}
	return n
}
