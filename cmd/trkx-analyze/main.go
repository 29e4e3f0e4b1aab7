// Command trkx-analyze inspects finished track-reconstruction experiments:
// training summaries, checkpoint evaluation, and diagnostic plots.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logger *zap.Logger

	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "trkx-analyze",
	Short: "Analysis utilities for GNN track-reconstruction experiments",
	Long: `trkx-analyze inspects finished experiments of the GNN tracking
workflow: it reads experiment configurations, training summaries and model
checkpoints, evaluates models over the test split of the hit-graph dataset,
and renders diagnostic plots.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"experiment configuration YAML (or a result directory containing config.yaml)")
	_ = rootCmd.MarkPersistentFlagRequired("config")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
