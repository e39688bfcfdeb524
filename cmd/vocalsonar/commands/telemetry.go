package commands

import (
	"github.com/spf13/cobra"
)

var telemetryDuration float64

var telemetryCmd = &cobra.Command{
	Use:   "telemetry FILE",
	Short: "Compute session telemetry only",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		sessions, err := loadSessions(cmd, args, telemetryDuration, cfg.Pipeline.MinValidSamples)
		if err != nil {
			return err
		}
		return writeResult(cmd, newPipeline(cmd, 0).Telemetry(sessions[0]))
	},
}

func init() {
	telemetryCmd.Flags().Float64Var(&telemetryDuration, "duration", 0, "song duration in seconds (overrides the file)")
	rootCmd.AddCommand(telemetryCmd)
}
