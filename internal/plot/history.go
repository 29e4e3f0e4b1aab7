package plot

import (
	"fmt"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/summaries"
)

// Training-history figure file names.
const (
	TrainLossFile = "train_loss.png"
	ValidAccFile  = "valid_acc.png"
)

// TrainHistory renders the training history of an experiment: training and
// validation loss vs epoch, and validation accuracy vs epoch, one PNG per
// panel in outDir.
func TrainHistory(s *summaries.Summaries, lossScale, accScale Scale, outDir string) error {
	epochs := s.Epoch()
	if epochs == nil {
		return fmt.Errorf("summaries have no epoch column")
	}

	loss := chart.Chart{
		Width:  defaultWidth,
		Height: defaultHeight,
		XAxis:  chart.XAxis{Name: "Epoch"},
		YAxis:  chart.YAxis{Name: "Loss", Range: rangeFor(lossScale)},
		Series: []chart.Series{
			lineSeries("Train", epochs, s.TrainLoss(), chart.ColorBlue),
			lineSeries("Validation", epochs, s.ValidLoss(), chart.ColorOrange),
		},
	}
	loss.Elements = []chart.Renderable{chart.Legend(&loss)}
	if err := writePNG(loss, filepath.Join(outDir, TrainLossFile)); err != nil {
		return err
	}

	acc := chart.Chart{
		Width:  defaultWidth,
		Height: defaultHeight,
		XAxis:  chart.XAxis{Name: "Epoch"},
		YAxis:  chart.YAxis{Name: "Accuracy", Range: rangeFor(accScale)},
		Series: []chart.Series{
			lineSeries("Validation", epochs, s.ValidAcc(), chart.ColorOrange),
		},
	}
	acc.Elements = []chart.Renderable{chart.Legend(&acc)}
	return writePNG(acc, filepath.Join(outDir, ValidAccFile))
}

func rangeFor(scale Scale) chart.Range {
	if scale == ScaleLog {
		return &chart.LogarithmicRange{}
	}
	return nil
}
