package plot

import (
	"fmt"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/metrics"
)

// Evaluation figure file names written by Metrics.
const (
	OutputsFile         = "outputs.png"
	PrecisionRecallFile = "prc.png"
	ROCFile             = "roc.png"
)

// outputBins is the histogram binning of the model-output panel.
const outputBins = 25

// Outputs renders the model-output distributions, split by truth label:
// step histograms over [0, 1] with logarithmic counts.
func Outputs(preds, targets []float64, path string) error {
	if len(preds) != len(targets) {
		return fmt.Errorf("length mismatch: %d predictions, %d targets", len(preds), len(targets))
	}

	var fake, real []float64
	for i, p := range preds {
		if targets[i] > 0.5 {
			real = append(real, p)
		} else {
			fake = append(fake, p)
		}
	}

	ch := chart.Chart{
		Width:  defaultWidth,
		Height: defaultHeight,
		XAxis:  chart.XAxis{Name: "Model output"},
		YAxis:  chart.YAxis{Range: &chart.LogarithmicRange{}},
		Series: []chart.Series{
			stepSeries("fake", histogram(fake, outputBins, 0, 1), 0, 1, 0.5, chart.ColorBlue),
			stepSeries("real", histogram(real, outputBins, 0, 1), 0, 1, 0.5, chart.ColorOrange),
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return writePNG(ch, path)
}

// PrecisionRecall renders purity and efficiency against the model decision
// threshold.
func PrecisionRecall(res *metrics.Results, path string) error {
	n := len(res.PRCThresholds)
	if n == 0 {
		return fmt.Errorf("no precision-recall points to plot")
	}

	ch := chart.Chart{
		Width:  defaultWidth,
		Height: defaultHeight,
		XAxis:  chart.XAxis{Name: "Model threshold"},
		Series: []chart.Series{
			lineSeries("purity", res.PRCThresholds, res.PRCPrecision[:n], chart.ColorBlue),
			lineSeries("efficiency", res.PRCThresholds, res.PRCRecall[:n], chart.ColorOrange),
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return writePNG(ch, path)
}

// ROC renders the ROC curve with the chance diagonal, AUC in the title.
func ROC(res *metrics.Results, path string) error {
	if len(res.ROCFPR) == 0 {
		return fmt.Errorf("no ROC points to plot")
	}

	diag := chart.ContinuousSeries{
		XValues: []float64{0, 1},
		YValues: []float64{0, 1},
		Style:   chart.Style{StrokeColor: chart.ColorOrange, StrokeWidth: 1.5, StrokeDashArray: dashed},
	}

	ch := chart.Chart{
		Title:  fmt.Sprintf("ROC curve, AUC = %.3f", res.ROCAUC),
		Width:  defaultWidth,
		Height: defaultHeight,
		XAxis:  chart.XAxis{Name: "False positive rate"},
		YAxis:  chart.YAxis{Name: "True positive rate"},
		Series: []chart.Series{
			lineSeries("", res.ROCFPR, res.ROCTPR, chart.ColorBlue),
			diag,
		},
	}
	return writePNG(ch, path)
}

// Metrics renders the full evaluation panel set (model outputs, purity and
// efficiency vs threshold, ROC curve) into outDir.
func Metrics(preds, targets []float64, res *metrics.Results, outDir string) error {
	if err := Outputs(preds, targets, filepath.Join(outDir, OutputsFile)); err != nil {
		return err
	}
	if err := PrecisionRecall(res, filepath.Join(outDir, PrecisionRecallFile)); err != nil {
		return err
	}
	return ROC(res, filepath.Join(outDir, ROCFile))
}
