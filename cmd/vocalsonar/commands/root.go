package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-vocal/analysis"
	"github.com/RyanBlaney/sonido-vocal/config"
	"github.com/RyanBlaney/sonido-vocal/diagnosis"
	"github.com/RyanBlaney/sonido-vocal/logging"
	"github.com/RyanBlaney/sonido-vocal/report"
)

var (
	// Global flags
	cfgFile      string
	outputFormat string
	verbose      bool

	// Global configuration, loaded before every command runs
	globalConfig *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vocalsonar",
	Short: "Vocal performance analysis",
	Long: `vocalsonar scores recorded singing sessions.

A session file holds the pitch samples captured while singing along to a
backing track, as JSON, YAML or MessagePack. Either a bare list of samples
or an object with sessionId, songDuration and samples is accepted.

Examples:
  # Full report for one take
  vocalsonar analyze take.json --duration 180

  # Several takes in parallel, as JSON
  vocalsonar analyze takes/*.yaml -o json --workers 8

  # Re-run the rule engine on stored telemetry
  vocalsonar diagnose telemetry.json

  # Note conversions
  vocalsonar note A4
  vocalsonar note 261.63
`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
}

// Command returns the root cobra command for mounting into a parent CLI.
func Command() *cobra.Command {
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a cancellable context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, json or yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if verbose {
		level = logging.DebugLevel
	}

	// stdout carries results only
	logger := logging.NewWriterLogger(os.Stderr, os.Stderr, logging.IsTerminal(os.Stderr))
	logger.SetLevel(level)
	logging.SetGlobalLogger(logger)

	globalConfig = cfg
	return nil
}

// getConfig returns the global configuration
func getConfig() *config.Config {
	if globalConfig == nil {
		return config.Default()
	}
	return globalConfig
}

func newPipeline(cmd *cobra.Command, seed int64) *analysis.Pipeline {
	var opts []diagnosis.Option
	if cmd.Flags().Changed("seed") {
		opts = append(opts, diagnosis.WithSeed(seed))
	}
	return analysis.NewPipeline(getConfig(), opts...)
}

func writeResult(cmd *cobra.Command, v any) error {
	format, err := report.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	return report.Write(cmd.OutOrStdout(), v, format)
}
