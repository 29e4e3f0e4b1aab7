package metrics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/metrics"
)

func TestCompute_PerfectClassifier(t *testing.T) {
	preds := []float64{0.9, 0.8, 0.4, 0.1}
	targets := []float64{1, 1, 0, 0}

	res, err := metrics.Compute(preds, targets, 0.5)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, res.Accuracy, 1e-12)
	assert.InDelta(t, 1.0, res.Precision, 1e-12)
	assert.InDelta(t, 1.0, res.Recall, 1e-12)
	assert.InDelta(t, 1.0, res.ROCAUC, 1e-12)
}

func TestCompute_Mixed(t *testing.T) {
	preds := []float64{0.9, 0.3, 0.6, 0.1}
	targets := []float64{1, 1, 0, 0}

	res, err := metrics.Compute(preds, targets, 0.5)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, res.Accuracy, 1e-12)
	assert.InDelta(t, 0.5, res.Precision, 1e-12)
	assert.InDelta(t, 0.5, res.Recall, 1e-12)
	assert.InDelta(t, 0.75, res.ROCAUC, 1e-12)
}

func TestCompute_ROCCurveShape(t *testing.T) {
	preds := []float64{0.9, 0.8, 0.4, 0.1}
	targets := []float64{1, 1, 0, 0}

	res, err := metrics.Compute(preds, targets, 0.5)
	require.NoError(t, err)

	// Anchored at (0, 0) with +Inf threshold, ends at (1, 1).
	require.Len(t, res.ROCFPR, 5)
	assert.True(t, math.IsInf(res.ROCThresholds[0], 1))
	assert.Equal(t, 0.0, res.ROCFPR[0])
	assert.Equal(t, 0.0, res.ROCTPR[0])
	assert.Equal(t, 1.0, res.ROCFPR[4])
	assert.Equal(t, 1.0, res.ROCTPR[4])

	// FPR is non-decreasing, thresholds decreasing.
	for i := 1; i < len(res.ROCFPR); i++ {
		assert.GreaterOrEqual(t, res.ROCFPR[i], res.ROCFPR[i-1])
		assert.Less(t, res.ROCThresholds[i], res.ROCThresholds[i-1])
	}
}

func TestCompute_PRCurve(t *testing.T) {
	preds := []float64{0.9, 0.8, 0.4, 0.1}
	targets := []float64{1, 1, 0, 0}

	res, err := metrics.Compute(preds, targets, 0.5)
	require.NoError(t, err)

	assert.Equal(t, []float64{0.1, 0.4, 0.8, 0.9}, res.PRCThresholds)
	require.Len(t, res.PRCPrecision, 5)
	require.Len(t, res.PRCRecall, 5)

	assert.InDelta(t, 0.5, res.PRCPrecision[0], 1e-12)
	assert.InDelta(t, 2.0/3.0, res.PRCPrecision[1], 1e-12)
	assert.InDelta(t, 1.0, res.PRCRecall[0], 1e-12)

	// Curve terminates at (precision=1, recall=0).
	assert.Equal(t, 1.0, res.PRCPrecision[4])
	assert.Equal(t, 0.0, res.PRCRecall[4])
}

func TestCompute_TiedScores(t *testing.T) {
	preds := []float64{0.8, 0.8, 0.2}
	targets := []float64{1, 0, 0}

	res, err := metrics.Compute(preds, targets, 0.5)
	require.NoError(t, err)

	// One curve point per distinct score, plus the ROC anchor.
	assert.Equal(t, []float64{0.2, 0.8}, res.PRCThresholds)
	assert.Len(t, res.ROCThresholds, 3)
}

func TestCompute_Errors(t *testing.T) {
	_, err := metrics.Compute([]float64{0.5}, []float64{1, 0}, 0.5)
	assert.Error(t, err)

	_, err = metrics.Compute(nil, nil, 0.5)
	assert.Error(t, err)
}

func TestMultiplicity(t *testing.T) {
	edges := [][2]int{{0, 1}, {1, 2}, {0, 2}}
	preds := []float64{0.9, 0.6, 0.2}

	mul, weighted, err := metrics.Multiplicity(3, edges, preds, 0.5)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2, 1}, mul)
	assert.InDelta(t, 0.81, weighted[0], 1e-12)
	assert.InDelta(t, 0.81+0.36, weighted[1], 1e-12)
	assert.InDelta(t, 0.36, weighted[2], 1e-12)
}

func TestMultiplicity_Errors(t *testing.T) {
	_, _, err := metrics.Multiplicity(3, [][2]int{{0, 1}}, nil, 0.5)
	assert.Error(t, err)

	_, _, err = metrics.Multiplicity(2, [][2]int{{0, 5}}, []float64{0.9}, 0.5)
	assert.Error(t, err)
}

func TestTFMultiplicity(t *testing.T) {
	edges := [][2]int{{0, 1}, {1, 2}, {0, 2}}
	preds := []float64{0.9, 0.6, 0.2}
	labels := []float64{1, 0, 1}

	counts, err := metrics.TFMultiplicity(3, edges, preds, labels, 0.5)
	require.NoError(t, err)

	// Edge 0 is TP, edge 1 FP, edge 2 FN; each tags both endpoints.
	assert.Equal(t, 1, counts[0][metrics.TruePositive])
	assert.Equal(t, 1, counts[0][metrics.FalseNegative])
	assert.Equal(t, 1, counts[1][metrics.TruePositive])
	assert.Equal(t, 1, counts[1][metrics.FalsePositive])
	assert.Equal(t, 1, counts[2][metrics.FalsePositive])
	assert.Equal(t, 1, counts[2][metrics.FalseNegative])
	assert.Equal(t, 0, counts[0][metrics.TrueNegative])
}

func TestTFMultiplicity_Errors(t *testing.T) {
	_, err := metrics.TFMultiplicity(3, [][2]int{{0, 1}}, []float64{0.9}, nil, 0.5)
	assert.Error(t, err)
}
