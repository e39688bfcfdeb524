package commands

import (
	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-vocal/ingest"
)

var diagnoseSeed int64

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose TELEMETRY_FILE",
	Short: "Run the rule engine over a stored telemetry record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := ingest.LoadTelemetry(args[0])
		if err != nil {
			return err
		}
		return writeResult(cmd, newPipeline(cmd, diagnoseSeed).Diagnose(t))
	},
}

func init() {
	diagnoseCmd.Flags().Int64Var(&diagnoseSeed, "seed", 0, "seed for the diagnosis message picker")
	rootCmd.AddCommand(diagnoseCmd)
}
