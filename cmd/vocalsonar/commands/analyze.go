package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-vocal/ingest"
	"github.com/RyanBlaney/sonido-vocal/logging"
	"github.com/RyanBlaney/sonido-vocal/model"
)

var (
	analyzeDuration float64
	analyzeWorkers  int
	analyzeSeed     int64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE...",
	Short: "Telemetry, diagnosis and score for recorded sessions",
	Long: `Analyze one or more session files.

Every file must contain enough voiced samples (pipeline.min_valid_samples)
or the whole command fails before any analysis starts. Files without a
sessionId get a generated one.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().Float64Var(&analyzeDuration, "duration", 0, "song duration in seconds (overrides the file)")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "parallel sessions (default: pipeline.workers)")
	analyzeCmd.Flags().Int64Var(&analyzeSeed, "seed", 0, "seed for the diagnosis message picker")
	rootCmd.AddCommand(analyzeCmd)
}

func loadSessions(cmd *cobra.Command, paths []string, duration float64, minValid int) ([]model.Session, error) {
	sessions := make([]model.Session, 0, len(paths))
	for _, path := range paths {
		s, err := ingest.LoadSession(path)
		if err != nil {
			return nil, err
		}
		if cmd.Flags().Changed("duration") {
			s.SongDuration = duration
		}
		if err := ingest.Validate(s, minValid); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		logging.Debug("Session loaded", logging.Fields{
			"path":    path,
			"samples": len(s.Samples),
			"valid":   s.ValidCount(),
		})
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfig()
	sessions, err := loadSessions(cmd, args, analyzeDuration, cfg.Pipeline.MinValidSamples)
	if err != nil {
		return err
	}

	reports, err := newPipeline(cmd, analyzeSeed).AnalyzeBatch(cmd.Context(), sessions, analyzeWorkers)
	if err != nil {
		return err
	}

	if len(reports) == 1 {
		return writeResult(cmd, reports[0])
	}
	return writeResult(cmd, reports)
}
