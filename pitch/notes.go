// Package pitch converts between note names, frequencies and cents, and
// measures frame-to-frame pitch stability.
package pitch

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// ErrInvalidNoteFormat is returned when a note name is not scientific pitch
// notation such as "C4", "F#3" or "Bb5".
var ErrInvalidNoteFormat = errors.New("invalid note format")

const (
	// ReferenceA4 is the concert pitch of A4 in Hz
	ReferenceA4 = 440.0
	// ReferenceA4MIDI is the MIDI number of A4
	ReferenceA4MIDI = 69

	// LowOctaveMax is the highest octave counted as the low register
	LowOctaveMax = 3
	// HighOctaveMin is the lowest octave counted as the high register
	HighOctaveMin = 5

	unknownNote = "N/A"
)

var (
	notePattern   = regexp.MustCompile(`^([A-G])([#b]?)(\d+)$`)
	octavePattern = regexp.MustCompile(`(\d+)$`)

	// semitone offset of each natural within an octave starting at C
	noteClassOffsets = map[string]int{
		"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11,
	}

	sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

	// frequency of C0 relative to A4
	c0Frequency = ReferenceA4 * math.Pow(2, -4.75)
)

// Note is a parsed scientific-pitch note name
type Note struct {
	Class      string // natural letter, A-G
	Accidental string // "", "#" or "b"
	Octave     int
}

// ParseNote splits a note name into its parts.
func ParseNote(name string) (Note, error) {
	m := notePattern.FindStringSubmatch(name)
	if m == nil {
		return Note{}, fmt.Errorf("%w: %q", ErrInvalidNoteFormat, name)
	}
	octave, err := strconv.Atoi(m[3])
	if err != nil {
		return Note{}, fmt.Errorf("%w: %q", ErrInvalidNoteFormat, name)
	}
	return Note{Class: m[1], Accidental: m[2], Octave: octave}, nil
}

// MIDI returns the MIDI number using the C0 = 12 convention.
func (n Note) MIDI() int {
	offset := noteClassOffsets[n.Class]
	switch n.Accidental {
	case "#":
		offset++
	case "b":
		offset--
	}
	return 12*(n.Octave+1) + offset
}

func (n Note) String() string {
	return n.Class + n.Accidental + strconv.Itoa(n.Octave)
}

// NoteToMIDI parses a note name and returns its MIDI number.
func NoteToMIDI(name string) (int, error) {
	n, err := ParseNote(name)
	if err != nil {
		return 0, err
	}
	return n.MIDI(), nil
}

// NoteToFrequency converts a note name into its equal-tempered frequency in Hz.
func NoteToFrequency(name string) (float64, error) {
	midi, err := NoteToMIDI(name)
	if err != nil {
		return 0, err
	}
	return MIDIToFrequency(midi), nil
}

// MIDIToFrequency converts a MIDI number into Hz relative to A4 = 440.
func MIDIToFrequency(midi int) float64 {
	return ReferenceA4 * math.Pow(2, float64(midi-ReferenceA4MIDI)/12.0)
}

// FrequencyToNoteName returns the nearest note name, spelled with sharps.
// Non-positive or non-finite input yields "N/A".
func FrequencyToNoteName(freq float64) string {
	if !validFrequency(freq) {
		return unknownNote
	}
	h := int(math.Round(12 * math.Log2(freq/c0Frequency)))
	octave := h / 12
	n := h % 12
	if n < 0 {
		n += 12
		octave--
	}
	return sharpNames[n] + strconv.Itoa(octave)
}

// NoteOctave reads the trailing octave digits of a note name. Names without
// them count as octave 0.
func NoteOctave(name string) int {
	m := octavePattern.FindStringSubmatch(name)
	if m == nil {
		return 0
	}
	octave, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return octave
}

// IsLowNote reports whether a note lies in the low register (octave <= 3).
func IsLowNote(name string) bool {
	return NoteOctave(name) <= LowOctaveMax
}

// IsHighNote reports whether a note lies in the high register (octave >= 5).
func IsHighNote(name string) bool {
	return NoteOctave(name) >= HighOctaveMin
}
