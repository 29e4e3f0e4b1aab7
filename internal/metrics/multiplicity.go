package metrics

import "fmt"

// Outcome indexes the per-hit counters returned by TFMultiplicity.
type Outcome int

// Classification outcomes of an edge at a cut.
const (
	TruePositive Outcome = iota
	FalsePositive
	TrueNegative
	FalseNegative
)

// Multiplicity counts, for every hit, the selected edges incident to it.
//
// An edge is selected when its prediction exceeds the cut; it then
// contributes 1 to the plain multiplicity of both endpoints and pred^2 to
// the weighted multiplicity.
func Multiplicity(nHits int, edges [][2]int, preds []float64, cut float64) (mul, weighted []float64, err error) {
	if len(edges) != len(preds) {
		return nil, nil, fmt.Errorf("length mismatch: %d edges, %d predictions", len(edges), len(preds))
	}

	mul = make([]float64, nHits)
	weighted = make([]float64, nHits)
	for j, edge := range edges {
		if err := checkEdge(edge, nHits, j); err != nil {
			return nil, nil, err
		}
		if preds[j] > cut {
			mul[edge[0]]++
			mul[edge[1]]++
			weighted[edge[0]] += preds[j] * preds[j]
			weighted[edge[1]] += preds[j] * preds[j]
		}
	}
	return mul, weighted, nil
}

// TFMultiplicity counts, for every hit, the incident edges in each
// classification outcome {TP, FP, TN, FN} at a cut. Every edge contributes
// to both of its endpoints.
func TFMultiplicity(nHits int, edges [][2]int, preds, labels []float64, cut float64) ([][4]int, error) {
	if len(edges) != len(preds) || len(edges) != len(labels) {
		return nil, fmt.Errorf("length mismatch: %d edges, %d predictions, %d labels",
			len(edges), len(preds), len(labels))
	}

	counts := make([][4]int, nHits)
	for j, edge := range edges {
		if err := checkEdge(edge, nHits, j); err != nil {
			return nil, err
		}
		var outcome Outcome
		switch pred, label := preds[j] > cut, labels[j] > cut; {
		case pred && label:
			outcome = TruePositive
		case pred && !label:
			outcome = FalsePositive
		case !pred && !label:
			outcome = TrueNegative
		default:
			outcome = FalseNegative
		}
		counts[edge[0]][outcome]++
		counts[edge[1]][outcome]++
	}
	return counts, nil
}

func checkEdge(edge [2]int, nHits, j int) error {
	if edge[0] < 0 || edge[0] >= nHits || edge[1] < 0 || edge[1] >= nHits {
		return fmt.Errorf("edge %d references hits %v outside [0, %d)", j, edge, nHits)
	}
	return nil
}
