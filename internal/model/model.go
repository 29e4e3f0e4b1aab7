package model

import (
	"fmt"
	"sort"

	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/hitgraph"
)

// Model scores the candidate segments of a hit graph.
type Model interface {
	// Forward returns one logit per candidate edge of the batch. Callers
	// apply the sigmoid themselves when probabilities are needed.
	Forward(b *hitgraph.Batch) ([]float64, error)

	// LoadStateDict restores trained parameters from a checkpoint state
	// dict. Missing or misshapen parameters are errors.
	LoadStateDict(stateDict map[string]*Tensor) error
}

// Factory builds a model from the hyperparameters of the experiment
// configuration's model section.
type Factory func(params map[string]any) (Model, error)

var registry = map[string]Factory{}

// Register makes a model architecture available by name. Architectures call
// this from their init functions.
func Register(name string, f Factory) {
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("model %q registered twice", name))
	}
	registry[name] = f
}

// New builds a registered model by name.
func New(name string, params map[string]any) (Model, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown model %q (registered: %v)", name, Names())
	}
	return f(params)
}

// Names returns the registered model names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// intParam reads an integer hyperparameter, accepting the numeric types YAML
// decoding may produce.
func intParam(params map[string]any, key string, def int) (int, error) {
	v, ok := params[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("parameter %q must be an integer, got %T", key, v)
	}
}
