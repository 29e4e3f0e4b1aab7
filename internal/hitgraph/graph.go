// Package hitgraph provides the analysis-side view of the hit-graph dataset:
// graph structures, NPZ file loading, and data-loader construction.
//
// A hit graph has one node per detector hit and one edge per candidate track
// segment. Graphs come in two representations:
//
//   - dense: incidence matrices Ri and Ro of shape [n, e] mapping edges to
//     their incoming and outgoing hits,
//   - sparse: an edge list of (outgoing, incoming) node index pairs.
//
// The on-disk format (NumPy .npz archives, owned by the dataset producer) is
// always dense; the sparse form is derived on load.
package hitgraph

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Graph is a dense hit graph.
type Graph struct {
	// X holds the node features, one row per hit. The first three columns
	// are the cylindrical hit coordinates (r, phi, z).
	X *mat.Dense

	// Ri and Ro are [n, e] incidence matrices. Ri[n][e] is 1 when hit n is
	// the incoming end of edge e, Ro likewise for the outgoing end.
	Ri *mat.Dense
	Ro *mat.Dense

	// Y holds the edge labels, 1 for true track segments.
	Y []float64
}

// NumNodes returns the number of hits in the graph.
func (g *Graph) NumNodes() int {
	n, _ := g.X.Dims()
	return n
}

// NumEdges returns the number of candidate segments in the graph.
func (g *Graph) NumEdges() int { return len(g.Y) }

// SparseGraph is an edge-list hit graph.
type SparseGraph struct {
	// X holds the node features, one row per hit.
	X *mat.Dense

	// Edges lists the segments as (outgoing hit, incoming hit) index pairs.
	Edges [][2]int

	// Y holds the edge labels.
	Y []float64
}

// NumNodes returns the number of hits in the graph.
func (g *SparseGraph) NumNodes() int {
	n, _ := g.X.Dims()
	return n
}

// NumEdges returns the number of candidate segments in the graph.
func (g *SparseGraph) NumEdges() int { return len(g.Edges) }

// ToSparse converts a dense graph to the edge-list representation.
//
// Each incidence column must reference exactly one hit on each end.
func (g *Graph) ToSparse() (*SparseGraph, error) {
	n, e := g.Ri.Dims()
	no, eo := g.Ro.Dims()
	if n != no || e != eo {
		return nil, fmt.Errorf("incidence shape mismatch: Ri is %dx%d, Ro is %dx%d", n, e, no, eo)
	}
	if e != len(g.Y) {
		return nil, fmt.Errorf("label length mismatch: %d edges, %d labels", e, len(g.Y))
	}

	edges := make([][2]int, e)
	for j := 0; j < e; j++ {
		src, dst := -1, -1
		for i := 0; i < n; i++ {
			if g.Ro.At(i, j) != 0 {
				src = i
			}
			if g.Ri.At(i, j) != 0 {
				dst = i
			}
		}
		if src < 0 || dst < 0 {
			return nil, fmt.Errorf("edge %d has no incident hits", j)
		}
		edges[j] = [2]int{src, dst}
	}

	return &SparseGraph{X: g.X, Edges: edges, Y: g.Y}, nil
}
