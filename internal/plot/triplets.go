package plot

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/mat"

	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/metrics"
)

// Triplets is a triplet-classification sample prepared for plotting.
//
// Each graph node is a doublet: its feature row pairs the cylindrical
// coordinates of the inner hit (columns 0-2: r, phi, z) and the outer hit
// (columns 3-5), followed by the doublet-classifier score (column 6).
// Edges join doublets into triplet candidates, with the triplet model's
// predictions and truth labels per edge.
type Triplets struct {
	Hits   *mat.Dense
	Edges  [][2]int
	Preds  []float64
	Labels []float64
}

// Validate checks the sample for shape consistency.
func (t *Triplets) Validate() error {
	_, cols := t.Hits.Dims()
	if cols < 7 {
		return fmt.Errorf("triplet hits need 7 feature columns, got %d", cols)
	}
	if len(t.Edges) != len(t.Preds) || len(t.Edges) != len(t.Labels) {
		return fmt.Errorf("length mismatch: %d edges, %d predictions, %d labels",
			len(t.Edges), len(t.Preds), len(t.Labels))
	}
	n, _ := t.Hits.Dims()
	for j, edge := range t.Edges {
		if edge[0] < 0 || edge[0] >= n || edge[1] < 0 || edge[1] >= n {
			return fmt.Errorf("edge %d references doublets %v outside [0, %d)", j, edge, n)
		}
	}
	return nil
}

// numDoublets returns the number of doublet nodes.
func (t *Triplets) numDoublets() int {
	n, _ := t.Hits.Dims()
	return n
}

// xy returns the transverse coordinates of the inner and outer hit of
// doublet i.
func (t *Triplets) xy(i int) (xi, yi, xo, yo float64) {
	ri, phii := t.Hits.At(i, 0), t.Hits.At(i, 1)
	ro, phio := t.Hits.At(i, 3), t.Hits.At(i, 4)
	return ri * math.Cos(phii), ri * math.Sin(phii),
		ro * math.Cos(phio), ro * math.Sin(phio)
}

// score returns the doublet-classifier score of doublet i.
func (t *Triplets) score(i int) float64 { return t.Hits.At(i, 6) }

// baseChart builds the square x-y chart with doublet endpoints scattered in
// black, plus the given segment series.
func (t *Triplets) baseChart(series []chart.Series) chart.Chart {
	n := t.numDoublets()
	xs := make([]float64, 0, 2*n)
	ys := make([]float64, 0, 2*n)
	for i := 0; i < n; i++ {
		xi, yi, xo, yo := t.xy(i)
		xs = append(xs, xi, xo)
		ys = append(ys, yi, yo)
	}
	series = append(series, scatterSeries("", xs, ys, chart.ColorBlack, 2))

	return chart.Chart{
		Width:  squareSize,
		Height: squareSize,
		XAxis:  chart.XAxis{Name: "x"},
		YAxis:  chart.YAxis{Name: "y"},
		Series: series,
	}
}

// doubletSegment draws the inner-to-outer segment of doublet i.
func (t *Triplets) doubletSegment(i int, style chart.Style) chart.ContinuousSeries {
	xi, yi, xo, yo := t.xy(i)
	return segmentSeries(xi, yi, xo, yo, style)
}

// TripletsXY renders the transverse view of a triplet sample with the
// doublets of each classified edge tagged by outcome at the cut, using the
// same styling as SampleXY. Both doublets of an edge are drawn.
func TripletsXY(t *Triplets, cut float64, path string) error {
	if err := t.Validate(); err != nil {
		return err
	}

	var series []chart.Series
	for j, edge := range t.Edges {
		style, draw := outcomeStyle(t.Preds[j], t.Labels[j], cut)
		if !draw {
			continue
		}
		series = append(series, t.doubletSegment(edge[0], style), t.doubletSegment(edge[1], style))
	}
	return writePNG(t.baseChart(series), path)
}

// TripletsXYScore renders the transverse view with segment opacity taken
// from the doublet-classifier score of each drawn doublet: false negatives
// and true positives fade with the score (or with 1-score when anti is set),
// false positives keep the triplet prediction as opacity.
func TripletsXYScore(t *Triplets, cut float64, anti bool, path string) error {
	if err := t.Validate(); err != nil {
		return err
	}

	alpha := func(i int) float64 {
		if anti {
			return 1 - t.score(i)
		}
		return t.score(i)
	}

	var series []chart.Series
	for j, edge := range t.Edges {
		predSel, labelSel := t.Preds[j] > cut, t.Labels[j] > cut
		for _, i := range edge {
			switch {
			case !predSel && labelSel: // false negative
				series = append(series, t.doubletSegment(i, chart.Style{
					StrokeColor:     withAlpha(chart.ColorBlue, alpha(i)),
					StrokeWidth:     1,
					StrokeDashArray: dashed,
				}))
			case predSel && !labelSel: // false positive
				series = append(series, t.doubletSegment(i, chart.Style{
					StrokeColor: withAlpha(chart.ColorRed, t.Preds[j]),
					StrokeWidth: 1,
				}))
			case predSel && labelSel: // true positive
				series = append(series, t.doubletSegment(i, chart.Style{
					StrokeColor: withAlpha(chart.ColorBlack, alpha(i)),
					StrokeWidth: 1,
				}))
			}
		}
	}
	return writePNG(t.baseChart(series), path)
}

// TripletsMulXY renders the doublets whose selected-edge multiplicity is one
// or two, colored by the doublet score on a diverging map (low scores red,
// high scores blue). Higher multiplicities are left out: they mark merged
// track candidates rather than clean segments.
func TripletsMulXY(t *Triplets, cut float64, path string) error {
	if err := t.Validate(); err != nil {
		return err
	}

	mul, _, err := metrics.Multiplicity(t.numDoublets(), t.Edges, t.Preds, cut)
	if err != nil {
		return err
	}

	var series []chart.Series
	for i := 0; i < t.numDoublets(); i++ {
		if mul[i] == 1 || mul[i] == 2 {
			series = append(series, t.doubletSegment(i, chart.Style{
				StrokeColor: seismicMap.at(1 - t.score(i)),
				StrokeWidth: 1.5,
			}))
		}
	}
	return writePNG(t.baseChart(series), path)
}

// Quality tier colors of TripletsTFMulXY.
var (
	colorGold   = drawing.ColorFromHex("ffc70f")
	colorBurnt  = drawing.ColorFromHex("982e06")
	colorSilver = drawing.ColorFromHex("adadad")
)

// TripletsTFMulXY renders a per-doublet quality tagging built from the
// TP/FP/TN/FN multiplicities of each doublet's edges at the cut:
//
//   - gold: only true positives attached — solid gold,
//   - gold with missed tracks: true positives plus false negatives — dashed
//     dark red,
//   - silver: true and false positives mixed — solid gray,
//   - totally missed: only false negatives — dashed blue,
//   - totally incorrect: false positives without true positives — solid red,
//   - conflicted: false positives and false negatives, no true positives —
//     dotted green.
func TripletsTFMulXY(t *Triplets, cut float64, path string) error {
	if err := t.Validate(); err != nil {
		return err
	}

	counts, err := metrics.TFMultiplicity(t.numDoublets(), t.Edges, t.Preds, t.Labels, cut)
	if err != nil {
		return err
	}

	var series []chart.Series
	for i := 0; i < t.numDoublets(); i++ {
		tp := counts[i][metrics.TruePositive]
		fp := counts[i][metrics.FalsePositive]
		fn := counts[i][metrics.FalseNegative]

		switch {
		case tp > 0 && fp == 0 && fn == 0:
			series = append(series, t.doubletSegment(i, chart.Style{
				StrokeColor: colorGold, StrokeWidth: 2,
			}))
		case tp > 0 && fp == 0 && fn > 0:
			series = append(series, t.doubletSegment(i, chart.Style{
				StrokeColor: colorBurnt, StrokeWidth: 1, StrokeDashArray: dashed,
			}))
		case tp > 0 && fp > 0:
			series = append(series, t.doubletSegment(i, chart.Style{
				StrokeColor: colorSilver, StrokeWidth: 1,
			}))
		case fp == 0 && fn > 0:
			series = append(series, t.doubletSegment(i, chart.Style{
				StrokeColor: chart.ColorBlue, StrokeWidth: 1, StrokeDashArray: dashed,
			}))
		case fp > 0 && fn == 0:
			series = append(series, t.doubletSegment(i, chart.Style{
				StrokeColor: chart.ColorRed, StrokeWidth: 1,
			}))
		case fp > 0 && fn > 0:
			series = append(series, t.doubletSegment(i, chart.Style{
				StrokeColor: chart.ColorGreen, StrokeWidth: 1, StrokeDashArray: dotted,
			}))
		}
	}
	return writePNG(t.baseChart(series), path)
}

// TripletsXYDisagreement renders the edges where the triplet model and the
// per-doublet scores disagree at the cut:
//
//   - false negatives the doublet score would have kept (score above cut):
//     dashed red,
//   - true negatives the doublet score would have kept: dashed black,
//   - false positives the doublet score would have rejected (score below
//     cut): solid red with the prediction as opacity,
//   - true positives the doublet score would have rejected: solid black.
//
// Each category is drawn per doublet of the edge, judged by that doublet's
// own score.
func TripletsXYDisagreement(t *Triplets, cut float64, path string) error {
	if err := t.Validate(); err != nil {
		return err
	}

	var series []chart.Series
	for j, edge := range t.Edges {
		predSel, labelSel := t.Preds[j] > cut, t.Labels[j] > cut
		for _, i := range edge {
			scoreSel := t.score(i) > cut
			switch {
			case !predSel && labelSel && scoreSel:
				series = append(series, t.doubletSegment(i, chart.Style{
					StrokeColor: chart.ColorRed, StrokeWidth: 1, StrokeDashArray: dashed,
				}))
			case !predSel && !labelSel && scoreSel:
				series = append(series, t.doubletSegment(i, chart.Style{
					StrokeColor: chart.ColorBlack, StrokeWidth: 1, StrokeDashArray: dashed,
				}))
			case predSel && !labelSel && !scoreSel:
				series = append(series, t.doubletSegment(i, chart.Style{
					StrokeColor: withAlpha(chart.ColorRed, t.Preds[j]), StrokeWidth: 1,
				}))
			case predSel && labelSel && !scoreSel:
				series = append(series, t.doubletSegment(i, chart.Style{
					StrokeColor: chart.ColorBlack, StrokeWidth: 1,
				}))
			}
		}
	}
	return writePNG(t.baseChart(series), path)
}
