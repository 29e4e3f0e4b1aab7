package analysis

import (
	"path/filepath"

	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/inference"
	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/plot"
)

// Scale selects the axis scale of a plot panel.
type Scale = plot.Scale

// Supported axis scales.
const (
	ScaleLinear = plot.ScaleLinear
	ScaleLog    = plot.ScaleLog
)

// Triplets is a triplet-classification sample prepared for plotting.
type Triplets = plot.Triplets

// PlotTrainHistory renders the loss and accuracy history of an experiment
// into outDir.
func PlotTrainHistory(s *Summaries, lossScale, accScale Scale, outDir string) error {
	return plot.TrainHistory(s, lossScale, accScale, outDir)
}

// PlotMetrics renders the model-output distributions, purity/efficiency
// curves and ROC curve into outDir.
func PlotMetrics(preds, targets [][]float64, res *Results, outDir string) error {
	return plot.Metrics(inference.Concat(preds), inference.Concat(targets), res, outDir)
}

// PlotOutputsROC renders only the output distributions and the ROC curve,
// the compact evaluation figure.
func PlotOutputsROC(preds, targets [][]float64, res *Results, outDir string) error {
	p, y := inference.Concat(preds), inference.Concat(targets)
	if err := plot.Outputs(p, y, filepath.Join(outDir, plot.OutputsFile)); err != nil {
		return err
	}
	return plot.ROC(res, filepath.Join(outDir, plot.ROCFile))
}

// DrawSample renders a hit graph in the r-z and r-phi detector views.
func DrawSample(g *Graph, alphaLabels bool, outDir string) error {
	return plot.Sample(g, plot.SampleOptions{AlphaLabels: alphaLabels}, outDir)
}

// DrawSampleXY renders a hit graph in the transverse view with edges tagged
// by classification outcome at the cut.
func DrawSampleXY(sg *SparseGraph, preds []float64, cut float64, path string) error {
	return plot.SampleXY(sg, preds, cut, path)
}

// DrawTripletsXY renders the transverse view of a triplet sample with edges
// tagged by outcome at the cut.
func DrawTripletsXY(t *Triplets, cut float64, path string) error {
	return plot.TripletsXY(t, cut, path)
}

// DrawTripletsXYScore renders the triplet view with doublet-score opacity.
func DrawTripletsXYScore(t *Triplets, cut float64, anti bool, path string) error {
	return plot.TripletsXYScore(t, cut, anti, path)
}

// DrawTripletsMulXY renders the multiplicity-selected doublets colored by
// their doublet score.
func DrawTripletsMulXY(t *Triplets, cut float64, path string) error {
	return plot.TripletsMulXY(t, cut, path)
}

// DrawTripletsTFMulXY renders the per-doublet quality tagging built from
// TP/FP/TN/FN edge multiplicities.
func DrawTripletsTFMulXY(t *Triplets, cut float64, path string) error {
	return plot.TripletsTFMulXY(t, cut, path)
}

// DrawTripletsXYDisagreement renders the edges where the triplet model and
// the per-doublet scores disagree at the cut.
func DrawTripletsXYDisagreement(t *Triplets, cut float64, path string) error {
	return plot.TripletsXYDisagreement(t, cut, path)
}
