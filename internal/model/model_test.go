package model_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/config"
	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/hitgraph"
	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/model"
)

func testBatch() *hitgraph.Batch {
	sg := &hitgraph.SparseGraph{
		X: mat.NewDense(3, 3, []float64{
			1, 2, 3,
			4, 5, 6,
			7, 8, 9,
		}),
		Edges: [][2]int{{0, 1}, {1, 2}},
		Y:     []float64{1, 0},
	}
	return &hitgraph.Batch{Sparse: sg, Targets: sg.Y}
}

func TestNewTensor(t *testing.T) {
	tensor, err := model.NewTensor([]int{2, 3}, make([]float32, 6))
	require.NoError(t, err)
	assert.Equal(t, 6, tensor.NumElements())

	_, err = model.NewTensor([]int{2, 3}, make([]float32, 5))
	assert.Error(t, err)

	_, err = model.NewTensor([]int{-1}, nil)
	assert.Error(t, err)
}

func TestNew_Unknown(t *testing.T) {
	_, err := model.New("no_such_model", nil)
	assert.Error(t, err)
}

func TestNames(t *testing.T) {
	assert.Contains(t, model.Names(), "edge_scorer")
}

func TestEdgeScorer_Forward(t *testing.T) {
	m, err := model.New("edge_scorer", map[string]any{"input_dim": 3})
	require.NoError(t, err)

	weight := []float32{1, 0, 0, 0, 1, 0} // picks r of the outgoing hit, phi of the incoming
	require.NoError(t, m.LoadStateDict(map[string]*model.Tensor{
		"weight": {Shape: []int{6}, Data: weight},
		"bias":   {Shape: []int{1}, Data: []float32{0.5}},
	}))

	logits, err := m.Forward(testBatch())
	require.NoError(t, err)
	require.Len(t, logits, 2)
	// Edge 0->1: 1*1 + 1*5 + 0.5, edge 1->2: 1*4 + 1*8 + 0.5.
	assert.InDelta(t, 6.5, logits[0], 1e-6)
	assert.InDelta(t, 12.5, logits[1], 1e-6)
}

func TestEdgeScorer_DenseBatch(t *testing.T) {
	m, err := model.New("edge_scorer", nil)
	require.NoError(t, err)

	sg := testBatch().Sparse
	// Rebuild the dense incidence form of the same graph.
	ri := mat.NewDense(3, 2, nil)
	ro := mat.NewDense(3, 2, nil)
	for j, edge := range sg.Edges {
		ro.Set(edge[0], j, 1)
		ri.Set(edge[1], j, 1)
	}
	batch := &hitgraph.Batch{
		Dense:   &hitgraph.Graph{X: sg.X, Ri: ri, Ro: ro, Y: sg.Y},
		Targets: sg.Y,
	}

	logits, err := m.Forward(batch)
	require.NoError(t, err)
	assert.Len(t, logits, 2)
}

func TestEdgeScorer_LoadStateDictErrors(t *testing.T) {
	m, err := model.New("edge_scorer", map[string]any{"input_dim": 3})
	require.NoError(t, err)

	tests := []struct {
		name      string
		stateDict map[string]*model.Tensor
	}{
		{
			name:      "missing weight",
			stateDict: map[string]*model.Tensor{"bias": {Shape: []int{1}, Data: []float32{0}}},
		},
		{
			name: "missing bias",
			stateDict: map[string]*model.Tensor{
				"weight": {Shape: []int{6}, Data: make([]float32, 6)},
			},
		},
		{
			name: "wrong weight shape",
			stateDict: map[string]*model.Tensor{
				"weight": {Shape: []int{4}, Data: make([]float32, 4)},
				"bias":   {Shape: []int{1}, Data: []float32{0}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, m.LoadStateDict(tt.stateDict))
		})
	}
}

func TestStateDictRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.safetensors")
	stateDict := map[string]*model.Tensor{
		"weight": {Shape: []int{2, 3}, Data: []float32{1, 2, 3, 4, 5, 6}},
		"bias":   {Shape: []int{1}, Data: []float32{-0.25}},
	}
	meta := map[string]string{"model": "edge_scorer"}

	require.NoError(t, model.WriteStateDict(path, stateDict, meta))

	loaded, gotMeta, err := model.ReadStateDict(path)
	require.NoError(t, err)
	assert.Equal(t, meta, gotMeta)
	require.Contains(t, loaded, "weight")
	require.Contains(t, loaded, "bias")
	assert.Equal(t, []int{2, 3}, loaded["weight"].Shape)
	assert.Equal(t, stateDict["weight"].Data, loaded["weight"].Data)
	assert.InDelta(t, -0.25, float64(loaded["bias"].Data[0]), 1e-6)
}

func TestReadStateDict_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.safetensors")
	require.NoError(t, os.WriteFile(path, []byte("not a checkpoint"), 0o644))

	_, _, err := model.ReadStateDict(path)
	assert.Error(t, err)
}

func TestCheckpointFile(t *testing.T) {
	got := model.CheckpointFile("/results/agnn01", 7)
	assert.Equal(t, "/results/agnn01/checkpoints/model_checkpoint_007.safetensors", got)
}

// writeExperiment builds an output directory with checkpoints for the given
// epochs and returns its config.
func writeExperiment(t *testing.T, epochs ...int) *config.Config {
	t.Helper()
	outDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(outDir, model.CheckpointDirName), 0o755))

	for _, epoch := range epochs {
		stateDict := map[string]*model.Tensor{
			"weight": {Shape: []int{6}, Data: []float32{0, 0, 0, 0, 0, float32(epoch)}},
			"bias":   {Shape: []int{1}, Data: []float32{0}},
		}
		require.NoError(t, model.WriteStateDict(model.CheckpointFile(outDir, epoch), stateDict, nil))
	}

	return &config.Config{
		Output: outDir,
		Model: config.ModelConfig{
			Name:   "edge_scorer",
			Params: map[string]any{"input_dim": 3},
		},
	}
}

func TestLatestCheckpoint(t *testing.T) {
	cfg := writeExperiment(t, 0, 3, 12)

	epoch, err := model.LatestCheckpoint(cfg.OutputDir())
	require.NoError(t, err)
	assert.Equal(t, 12, epoch)
}

func TestLatestCheckpoint_None(t *testing.T) {
	outDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(outDir, model.CheckpointDirName), 0o755))

	_, err := model.LatestCheckpoint(outDir)
	assert.Error(t, err)
}

func TestLoadModel(t *testing.T) {
	cfg := writeExperiment(t, 0, 5)

	m, err := model.LoadModel(cfg, 5)
	require.NoError(t, err)

	logits, err := m.Forward(testBatch())
	require.NoError(t, err)
	// weight[5]=5 picks the z feature of the incoming hit.
	assert.InDelta(t, 5*6.0, logits[0], 1e-6)
}

func TestLoadModel_Latest(t *testing.T) {
	cfg := writeExperiment(t, 0, 5)

	m, err := model.LoadModel(cfg, -1)
	require.NoError(t, err)

	logits, err := m.Forward(testBatch())
	require.NoError(t, err)
	assert.False(t, math.IsNaN(logits[0]))
	assert.InDelta(t, 5*6.0, logits[0], 1e-6)
}

func TestLoadModel_MissingEpoch(t *testing.T) {
	cfg := writeExperiment(t, 0)
	_, err := model.LoadModel(cfg, 42)
	assert.Error(t, err)
}
