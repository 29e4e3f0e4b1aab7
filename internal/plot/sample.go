package plot

import (
	"fmt"
	"math"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/hitgraph"
)

// Detector-view figure file names written by Sample.
const (
	SampleRZFile   = "sample_rz.png"
	SampleRPhiFile = "sample_rphi.png"
)

// SampleOptions configures the Sample detector views.
type SampleOptions struct {
	// AlphaLabels draws segments in black with the edge label as opacity.
	// When false, segments are colored by the label on a reversed
	// blue-white-red map (true segments blue, fakes red).
	AlphaLabels bool
}

// Sample renders a hit graph in the r-z and r-phi detector views, hits as
// black points and every candidate segment drawn according to its label.
// One PNG per view is written into outDir.
//
// Node features are read as cylindrical coordinates (r, phi, z) from the
// first three feature columns.
func Sample(g *hitgraph.Graph, opts SampleOptions, outDir string) error {
	sg, err := g.ToSparse()
	if err != nil {
		return err
	}

	n := sg.NumNodes()
	r := make([]float64, n)
	phi := make([]float64, n)
	z := make([]float64, n)
	for i := 0; i < n; i++ {
		r[i] = sg.X.At(i, 0)
		phi[i] = sg.X.At(i, 1)
		z[i] = sg.X.At(i, 2)
	}

	cmap := bwrMap.reversed()
	style := func(label float64) chart.Style {
		if opts.AlphaLabels {
			return chart.Style{StrokeColor: withAlpha(chart.ColorBlack, label), StrokeWidth: 1}
		}
		return chart.Style{StrokeColor: cmap.at(label), StrokeWidth: 1}
	}

	views := []struct {
		file  string
		xAxis string
		x     []float64
	}{
		{SampleRZFile, "z", z},
		{SampleRPhiFile, "phi", phi},
	}
	for _, view := range views {
		series := make([]chart.Series, 0, len(sg.Edges)+1)
		for j, edge := range sg.Edges {
			series = append(series, segmentSeries(
				view.x[edge[0]], r[edge[0]],
				view.x[edge[1]], r[edge[1]],
				style(sg.Y[j])))
		}
		series = append(series, scatterSeries("", view.x, r, chart.ColorBlack, 3))

		ch := chart.Chart{
			Width:  defaultWidth,
			Height: defaultHeight,
			XAxis:  chart.XAxis{Name: view.xAxis},
			YAxis:  chart.YAxis{Name: "r"},
			Series: series,
		}
		if err := writePNG(ch, filepath.Join(outDir, view.file)); err != nil {
			return err
		}
	}
	return nil
}

// SampleXY renders a hit graph in the transverse (x-y) view with edges
// tagged by their classification outcome at the cut:
//
//   - false negatives: dashed blue,
//   - false positives: red, opacity from the prediction,
//   - true positives: black, opacity from the prediction.
//
// True negatives are not drawn.
func SampleXY(sg *hitgraph.SparseGraph, preds []float64, cut float64, path string) error {
	if len(preds) != sg.NumEdges() {
		return fmt.Errorf("length mismatch: %d predictions for %d edges", len(preds), sg.NumEdges())
	}

	n := sg.NumNodes()
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		r, phi := sg.X.At(i, 0), sg.X.At(i, 1)
		x[i] = r * math.Cos(phi)
		y[i] = r * math.Sin(phi)
	}

	series := make([]chart.Series, 0, len(sg.Edges)+1)
	for j, edge := range sg.Edges {
		style, draw := outcomeStyle(preds[j], sg.Y[j], cut)
		if !draw {
			continue
		}
		series = append(series, segmentSeries(x[edge[0]], y[edge[0]], x[edge[1]], y[edge[1]], style))
	}
	series = append(series, scatterSeries("", x, y, chart.ColorBlack, 2))

	ch := chart.Chart{
		Width:  squareSize,
		Height: squareSize,
		XAxis:  chart.XAxis{Name: "x"},
		YAxis:  chart.YAxis{Name: "y"},
		Series: series,
	}
	return writePNG(ch, path)
}

// outcomeStyle maps an edge classification outcome to its stroke style.
// The second return is false for true negatives, which stay invisible.
func outcomeStyle(pred, label, cut float64) (chart.Style, bool) {
	switch predSel, labelSel := pred > cut, label > cut; {
	case !predSel && labelSel: // false negative
		return chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 1, StrokeDashArray: dashed}, true
	case predSel && !labelSel: // false positive
		return chart.Style{StrokeColor: withAlpha(chart.ColorRed, pred), StrokeWidth: 1}, true
	case predSel && labelSel: // true positive
		return chart.Style{StrokeColor: withAlpha(chart.ColorBlack, pred), StrokeWidth: 1}, true
	default:
		return chart.Style{}, false
	}
}
