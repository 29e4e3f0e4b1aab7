package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/murnanedaniel/heptrkx-gnn-tracking/analysis"
)

var (
	plotsEpoch int
	plotsNTest int
	plotsCut   float64
	plotsOut   string
)

var plotsCmd = &cobra.Command{
	Use:   "plots",
	Short: "Render training and evaluation plots for an experiment",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		outDir := plotsOut
		if outDir == "" {
			outDir = filepath.Join(cfg.OutputDir(), "plots")
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create plot directory: %w", err)
		}

		s, err := analysis.LoadSummaries(cfg)
		if err != nil {
			return err
		}
		if err := analysis.PlotTrainHistory(s, analysis.ScaleLinear, analysis.ScaleLinear, outDir); err != nil {
			return err
		}

		m, err := analysis.LoadModel(cfg, plotsEpoch)
		if err != nil {
			return err
		}
		loader, err := analysis.GetTestDataLoader(cfg, plotsNTest)
		if err != nil {
			return err
		}
		preds, targets, err := analysis.ApplyModel(m, loader)
		if err != nil {
			return err
		}
		res, err := analysis.ComputeMetrics(preds, targets, plotsCut)
		if err != nil {
			return err
		}
		if err := analysis.PlotMetrics(preds, targets, res, outDir); err != nil {
			return err
		}

		// Detector views of the first test graph.
		batch, err := loader.Batch(0)
		if err != nil {
			return err
		}
		if err := analysis.DrawSampleXY(batch.Sparse, preds[0], plotsCut,
			filepath.Join(outDir, "sample_xy.png")); err != nil {
			return err
		}

		logger.Info("plots written", zap.String("dir", outDir))
		return nil
	},
}

func init() {
	plotsCmd.Flags().IntVar(&plotsEpoch, "epoch", -1, "checkpoint epoch to load (-1 for latest)")
	plotsCmd.Flags().IntVar(&plotsNTest, "n-test", 16, "number of test graphs taken from the back")
	plotsCmd.Flags().Float64Var(&plotsCut, "cut", 0.5, "decision threshold")
	plotsCmd.Flags().StringVar(&plotsOut, "out", "", "plot output directory (default <output_dir>/plots)")
	rootCmd.AddCommand(plotsCmd)
}
