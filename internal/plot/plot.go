// Package plot renders the diagnostic figures of the tracking analysis:
// training curves, model-output distributions, ROC and precision-recall
// curves, and detector-view visualizations of classified segments.
//
// Every function writes a PNG file; multi-panel matplotlib figures of the
// original workflow become one file per panel.
package plot

import (
	"fmt"
	"math"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Scale selects the axis scale of a panel.
type Scale string

// Supported axis scales.
const (
	ScaleLinear Scale = "linear"
	ScaleLog    Scale = "log"
)

// Default figure dimensions, in pixels.
const (
	defaultWidth  = 720
	defaultHeight = 480
	squareSize    = 800
)

func writePNG(ch chart.Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create figure: %w", err)
	}
	defer f.Close()

	if err := ch.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	return nil
}

// scatterSeries draws points with no connecting stroke.
func scatterSeries(name string, xs, ys []float64, col drawing.Color, dotWidth float64) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    dotWidth,
			DotColor:    col,
		},
	}
}

// lineSeries draws a named polyline.
func lineSeries(name string, xs, ys []float64, col drawing.Color) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style:   chart.Style{StrokeColor: col, StrokeWidth: 1.5},
	}
}

// segmentSeries draws a single segment between two points.
func segmentSeries(x0, y0, x1, y1 float64, style chart.Style) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		XValues: []float64{x0, x1},
		YValues: []float64{y0, y1},
		Style:   style,
	}
}

// dashed is the stroke dash pattern of dashed segments.
var dashed = []float64{5, 5}

// dotted is the stroke dash pattern of dotted segments.
var dotted = []float64{2, 4}

// withAlpha applies a [0, 1] opacity to a color.
func withAlpha(col drawing.Color, alpha float64) drawing.Color {
	return col.WithAlpha(uint8(math.Round(255 * clamp01(alpha))))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// histogram bins values into nBins equal-width bins over [lo, hi].
func histogram(values []float64, nBins int, lo, hi float64) []float64 {
	counts := make([]float64, nBins)
	width := (hi - lo) / float64(nBins)
	for _, v := range values {
		if v < lo || v > hi {
			continue
		}
		bin := int((v - lo) / width)
		if bin == nBins { // right edge belongs to the last bin
			bin--
		}
		counts[bin]++
	}
	return counts
}

// stepSeries turns bin counts into a step-style polyline over [lo, hi].
// Zero counts are clamped to floor so the series survives a log axis.
func stepSeries(name string, counts []float64, lo, hi, floor float64, col drawing.Color) chart.ContinuousSeries {
	width := (hi - lo) / float64(len(counts))
	xs := make([]float64, 0, 2*len(counts))
	ys := make([]float64, 0, 2*len(counts))
	for i, c := range counts {
		if c < floor {
			c = floor
		}
		xs = append(xs, lo+float64(i)*width, lo+float64(i+1)*width)
		ys = append(ys, c, c)
	}
	return lineSeries(name, xs, ys, col)
}
