// Package model loads trained edge-classifier models from experiment
// checkpoints.
//
// The training harness snapshots model parameters as SafeTensors state
// dicts, one file per epoch under <output_dir>/checkpoints. This package
// reads those snapshots and restores them into models built from the
// experiment configuration. Model architectures register themselves by name;
// the analysis utilities stay agnostic of their internals.
package model

import "fmt"

// Tensor is a named-parameter payload in a state dict: a shape and a flat
// float32 buffer in row-major order.
type Tensor struct {
	Shape []int
	Data  []float32
}

// NewTensor builds a tensor, validating that the buffer matches the shape.
func NewTensor(shape []int, data []float32) (*Tensor, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("invalid tensor dimension %d", d)
		}
		n *= d
	}
	if n != len(data) {
		return nil, fmt.Errorf("tensor data length %d does not match shape %v", len(data), shape)
	}
	return &Tensor{Shape: shape, Data: data}, nil
}

// NumElements returns the total element count.
func (t *Tensor) NumElements() int {
	n := 1
	for _, d := range t.Shape {
		n *= d
	}
	return n
}
