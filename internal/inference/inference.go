// Package inference runs trained models over data loaders, producing the
// prediction/target pairs the metrics and plotting utilities consume.
package inference

import (
	"fmt"
	"math"

	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/hitgraph"
	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/model"
)

// Apply evaluates a model over every batch of a loader.
//
// The model's edge logits are mapped through the sigmoid, so predictions are
// probabilities in [0, 1]. Results keep the per-batch structure; use Concat
// to flatten them for metrics.
func Apply(m model.Model, loader *hitgraph.DataLoader) (preds, targets [][]float64, err error) {
	preds = make([][]float64, 0, loader.Len())
	targets = make([][]float64, 0, loader.Len())

	for i := 0; i < loader.Len(); i++ {
		batch, err := loader.Batch(i)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load batch %d: %w", i, err)
		}
		logits, err := m.Forward(batch)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to evaluate batch %d: %w", i, err)
		}
		if len(logits) != len(batch.Targets) {
			return nil, nil, fmt.Errorf("batch %d: %d predictions for %d targets",
				i, len(logits), len(batch.Targets))
		}

		p := make([]float64, len(logits))
		for j, z := range logits {
			p[j] = sigmoid(z)
		}
		preds = append(preds, p)
		targets = append(targets, batch.Targets)
	}
	return preds, targets, nil
}

// Concat flattens per-batch slices into one.
func Concat(batches [][]float64) []float64 {
	n := 0
	for _, b := range batches {
		n += len(b)
	}
	out := make([]float64, 0, n)
	for _, b := range batches {
		out = append(out, b...)
	}
	return out
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
