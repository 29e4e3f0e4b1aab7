package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/murnanedaniel/heptrkx-gnn-tracking/analysis"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the training summaries of an experiment",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger.Info("loading summaries", zap.String("output_dir", cfg.OutputDir()))

		s, err := analysis.LoadSummaries(cfg)
		if err != nil {
			return err
		}

		last := s.Len() - 1
		fmt.Printf("epochs trained:   %d\n", s.Len())
		fmt.Printf("final train loss: %.6f\n", s.TrainLoss()[last])
		fmt.Printf("final valid loss: %.6f\n", s.ValidLoss()[last])
		fmt.Printf("final valid acc:  %.4f\n", s.ValidAcc()[last])

		epoch, loss, err := s.BestEpoch()
		if err != nil {
			return err
		}
		fmt.Printf("best epoch:       %d (valid loss %.6f)\n", epoch, loss)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
