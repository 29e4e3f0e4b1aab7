// Package metrics computes binary-classification metrics for edge
// predictions: decision-threshold scores, ROC and precision-recall curves,
// and per-hit edge multiplicities.
package metrics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"
)

// Results holds the evaluation metrics of one set of edge predictions.
//
// Curve conventions: PRCThresholds are the distinct prediction values in
// increasing order, with PRCPrecision and PRCRecall one element longer and
// terminating at (precision=1, recall=0). ROCThresholds are decreasing,
// starting with +Inf at the (0, 0) point of the curve.
type Results struct {
	Accuracy  float64
	Precision float64
	Recall    float64

	PRCPrecision  []float64
	PRCRecall     []float64
	PRCThresholds []float64

	ROCFPR        []float64
	ROCTPR        []float64
	ROCThresholds []float64
	ROCAUC        float64
}

// Compute evaluates predictions against targets.
//
// Targets are compared against the same threshold as predictions to obtain
// boolean labels, so soft targets are handled uniformly.
func Compute(preds, targets []float64, threshold float64) (*Results, error) {
	if len(preds) != len(targets) {
		return nil, fmt.Errorf("length mismatch: %d predictions, %d targets", len(preds), len(targets))
	}
	if len(preds) == 0 {
		return nil, fmt.Errorf("no predictions to score")
	}

	labels := make([]bool, len(targets))
	nPos, nNeg := 0, 0
	for i, t := range targets {
		labels[i] = t > threshold
		if labels[i] {
			nPos++
		} else {
			nNeg++
		}
	}

	r := &Results{}

	// Decision-boundary metrics.
	var tp, fp, tn, fn int
	for i, p := range preds {
		switch pred := p > threshold; {
		case pred && labels[i]:
			tp++
		case pred && !labels[i]:
			fp++
		case !pred && !labels[i]:
			tn++
		default:
			fn++
		}
	}
	r.Accuracy = float64(tp+tn) / float64(len(preds))
	if tp+fp > 0 {
		r.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		r.Recall = float64(tp) / float64(tp+fn)
	}

	// Cumulative counts at each distinct score, scores decreasing.
	thresh, cumTP, cumFP := cumulativeCounts(preds, labels)

	// Precision-recall curve, thresholds increasing.
	n := len(thresh)
	r.PRCThresholds = make([]float64, n)
	r.PRCPrecision = make([]float64, n+1)
	r.PRCRecall = make([]float64, n+1)
	for i := 0; i < n; i++ {
		// Reverse to increasing threshold order.
		j := n - 1 - i
		r.PRCThresholds[i] = thresh[j]
		if cumTP[j]+cumFP[j] > 0 {
			r.PRCPrecision[i] = float64(cumTP[j]) / float64(cumTP[j]+cumFP[j])
		}
		if nPos > 0 {
			r.PRCRecall[i] = float64(cumTP[j]) / float64(nPos)
		}
	}
	r.PRCPrecision[n] = 1
	r.PRCRecall[n] = 0

	// ROC curve, thresholds decreasing, anchored at (0, 0).
	r.ROCThresholds = make([]float64, 0, n+1)
	r.ROCFPR = make([]float64, 0, n+1)
	r.ROCTPR = make([]float64, 0, n+1)
	r.ROCThresholds = append(r.ROCThresholds, math.Inf(1))
	r.ROCFPR = append(r.ROCFPR, 0)
	r.ROCTPR = append(r.ROCTPR, 0)
	for i := 0; i < n; i++ {
		var fpr, tpr float64
		if nNeg > 0 {
			fpr = float64(cumFP[i]) / float64(nNeg)
		}
		if nPos > 0 {
			tpr = float64(cumTP[i]) / float64(nPos)
		}
		r.ROCThresholds = append(r.ROCThresholds, thresh[i])
		r.ROCFPR = append(r.ROCFPR, fpr)
		r.ROCTPR = append(r.ROCTPR, tpr)
	}
	r.ROCAUC = integrate.Trapezoidal(r.ROCFPR, r.ROCTPR)

	return r, nil
}

// cumulativeCounts returns the distinct prediction values in decreasing
// order together with the cumulative true/false positive counts for a
// decision rule of score >= threshold.
func cumulativeCounts(preds []float64, labels []bool) (thresh []float64, cumTP, cumFP []int) {
	order := make([]int, len(preds))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return preds[order[a]] > preds[order[b]] })

	tp, fp := 0, 0
	for k, idx := range order {
		if labels[idx] {
			tp++
		} else {
			fp++
		}
		// Emit a point only once per distinct score.
		if k+1 < len(order) && preds[order[k+1]] == preds[idx] {
			continue
		}
		thresh = append(thresh, preds[idx])
		cumTP = append(cumTP, tp)
		cumFP = append(cumFP, fp)
	}
	return thresh, cumTP, cumFP
}
