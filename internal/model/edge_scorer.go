package model

import (
	"fmt"

	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/hitgraph"
)

func init() {
	Register("edge_scorer", NewEdgeScorer)
}

// EdgeScorer is a linear classifier over the concatenated features of the
// two hits of a segment.
//
// It is the reference architecture of the analysis pipelines: cheap enough
// to evaluate anywhere, and it exercises exactly the checkpoint machinery
// the heavier GNN models use. The full architectures live with the training
// harness and register themselves the same way.
type EdgeScorer struct {
	inputDim int
	weight   []float32 // [2*inputDim]
	bias     float32
}

// NewEdgeScorer builds an edge scorer from its hyperparameters.
//
// Recognized parameters:
//   - input_dim: node feature count consumed per hit (default 3).
func NewEdgeScorer(params map[string]any) (Model, error) {
	dim, err := intParam(params, "input_dim", 3)
	if err != nil {
		return nil, err
	}
	if dim <= 0 {
		return nil, fmt.Errorf("input_dim must be positive, got %d", dim)
	}
	return &EdgeScorer{
		inputDim: dim,
		weight:   make([]float32, 2*dim),
	}, nil
}

// Forward scores each candidate edge as w . [x_out, x_in] + b.
func (m *EdgeScorer) Forward(b *hitgraph.Batch) ([]float64, error) {
	sg := b.Sparse
	if sg == nil {
		if b.Dense == nil {
			return nil, fmt.Errorf("batch has no graph")
		}
		var err error
		if sg, err = b.Dense.ToSparse(); err != nil {
			return nil, err
		}
	}

	_, f := sg.X.Dims()
	if f < m.inputDim {
		return nil, fmt.Errorf("graph has %d node features, model needs %d", f, m.inputDim)
	}

	logits := make([]float64, len(sg.Edges))
	for j, edge := range sg.Edges {
		z := float64(m.bias)
		for k := 0; k < m.inputDim; k++ {
			z += float64(m.weight[k]) * sg.X.At(edge[0], k)
			z += float64(m.weight[m.inputDim+k]) * sg.X.At(edge[1], k)
		}
		logits[j] = z
	}
	return logits, nil
}

// LoadStateDict restores the weight and bias parameters.
func (m *EdgeScorer) LoadStateDict(stateDict map[string]*Tensor) error {
	w, ok := stateDict["weight"]
	if !ok {
		return fmt.Errorf("state dict is missing %q", "weight")
	}
	if w.NumElements() != 2*m.inputDim {
		return fmt.Errorf("weight has %d elements, want %d", w.NumElements(), 2*m.inputDim)
	}

	b, ok := stateDict["bias"]
	if !ok {
		return fmt.Errorf("state dict is missing %q", "bias")
	}
	if b.NumElements() != 1 {
		return fmt.Errorf("bias has %d elements, want 1", b.NumElements())
	}

	m.weight = append([]float32(nil), w.Data...)
	m.bias = b.Data[0]
	return nil
}

// StateDict exports the current parameters, the inverse of LoadStateDict.
func (m *EdgeScorer) StateDict() map[string]*Tensor {
	return map[string]*Tensor{
		"weight": {Shape: []int{2 * m.inputDim}, Data: append([]float32(nil), m.weight...)},
		"bias":   {Shape: []int{1}, Data: []float32{m.bias}},
	}
}
