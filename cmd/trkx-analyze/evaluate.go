package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/murnanedaniel/heptrkx-gnn-tracking/analysis"
)

var (
	evalEpoch int
	evalNTest int
	evalCut   float64
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a model checkpoint over the test split",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		m, err := analysis.LoadModel(cfg, evalEpoch)
		if err != nil {
			return err
		}
		loader, err := analysis.GetTestDataLoader(cfg, evalNTest)
		if err != nil {
			return err
		}
		logger.Info("running inference",
			zap.String("model", cfg.Model.Name),
			zap.Int("batches", loader.Len()))

		preds, targets, err := analysis.ApplyModel(m, loader)
		if err != nil {
			return err
		}
		res, err := analysis.ComputeMetrics(preds, targets, evalCut)
		if err != nil {
			return err
		}

		fmt.Printf("accuracy:  %.4f\n", res.Accuracy)
		fmt.Printf("precision: %.4f\n", res.Precision)
		fmt.Printf("recall:    %.4f\n", res.Recall)
		fmt.Printf("roc auc:   %.4f\n", res.ROCAUC)
		return nil
	},
}

func init() {
	evaluateCmd.Flags().IntVar(&evalEpoch, "epoch", -1, "checkpoint epoch to load (-1 for latest)")
	evaluateCmd.Flags().IntVar(&evalNTest, "n-test", 16, "number of test graphs taken from the back")
	evaluateCmd.Flags().Float64Var(&evalCut, "cut", 0.5, "decision threshold")
	rootCmd.AddCommand(evaluateCmd)
}
