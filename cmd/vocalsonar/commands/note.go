package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-vocal/model"
	"github.com/RyanBlaney/sonido-vocal/pitch"
)

type noteInfo struct {
	Note      string  `json:"note" yaml:"note"`
	Frequency float64 `json:"frequency" yaml:"frequency"`
	MIDI      int     `json:"midi" yaml:"midi"`
	Cents     float64 `json:"cents" yaml:"cents"` // input relative to the named note
	Register  string  `json:"register" yaml:"register"`
}

var noteCmd = &cobra.Command{
	Use:   "note NOTE|HZ",
	Short: "Convert between note names and frequencies",
	Example: `  vocalsonar note C#5
  vocalsonar note 452.3 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := lookupNote(args[0])
		if err != nil {
			return err
		}
		return writeResult(cmd, info)
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
}

func lookupNote(arg string) (noteInfo, error) {
	if hz, err := strconv.ParseFloat(arg, 64); err == nil {
		name := pitch.FrequencyToNoteName(hz)
		if name == model.NoNote {
			return noteInfo{}, fmt.Errorf("frequency must be positive and finite: %s", arg)
		}
		info, err := lookupNote(name)
		if err != nil {
			return noteInfo{}, err
		}
		info.Cents = pitch.FrequencyToCents(hz, info.Frequency)
		info.Frequency = hz
		return info, nil
	}

	n, err := pitch.ParseNote(arg)
	if err != nil {
		return noteInfo{}, err
	}
	register := "mid"
	switch {
	case pitch.IsLowNote(arg):
		register = "low"
	case pitch.IsHighNote(arg):
		register = "high"
	}
	return noteInfo{
		Note:      n.String(),
		Frequency: pitch.MIDIToFrequency(n.MIDI()),
		MIDI:      n.MIDI(),
		Register:  register,
	}, nil
}
