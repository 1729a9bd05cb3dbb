package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"schedassist/config"
	"schedassist/internal/logger"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "schedassist",
	Short: "Schedule assistant - answer availability questions over an indexed schedule",
	Long: `schedassist indexes personal schedule documents line by line, retrieves
the entries most relevant to a question by embedding similarity, and asks
a local language model for a structured availability verdict.

Example usage:
  schedassist index ./schedules      # Index schedule files
  schedassist ask -q "Am I free Wednesday at 3pm?"
  schedassist serve                  # Run the HTTP API`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			wd, wdErr := os.Getwd()
			if wdErr != nil {
				return fmt.Errorf("failed to get working directory: %w", wdErr)
			}
			cfg, err = config.LoadFromDir(wd)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger.SetVerbose(verbose || cfg.Logging.Verbose)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./schedassist.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}
