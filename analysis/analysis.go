// Package analysis is the public surface of the tracking analysis
// utilities: experiment configuration access, artifact loading, data-loader
// construction, inference, metrics and plotting.
//
// It wraps the internal packages with the flat helper vocabulary the
// analysis notebooks use. Callers wanting finer control can depend on a
// narrower internal concern through these aliases.
package analysis

import (
	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/config"
	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/hitgraph"
	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/inference"
	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/metrics"
	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/model"
	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/summaries"
)

// Configuration

// Config is a parsed experiment configuration.
type Config = config.Config

// LoadConfig reads an experiment configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// LoadConfigDir reads the configuration saved in an experiment result
// directory.
func LoadConfigDir(resultDir string) (*Config, error) {
	return config.LoadDir(resultDir)
}

// GetOutputDir returns the experiment output directory with environment
// variables expanded.
func GetOutputDir(cfg *Config) string { return cfg.OutputDir() }

// GetInputDir returns the dataset input directory with environment
// variables expanded.
func GetInputDir(cfg *Config) string { return cfg.InputDir() }

// Artifacts

// Summaries is the per-epoch training summaries table.
type Summaries = summaries.Summaries

// LoadSummaries reads the training summaries of an experiment.
func LoadSummaries(cfg *Config) (*Summaries, error) {
	return summaries.Load(cfg)
}

// Model scores the candidate segments of a hit graph.
type Model = model.Model

// LoadModel builds the configured model and restores the checkpoint of the
// requested epoch. A negative epoch selects the latest checkpoint.
func LoadModel(cfg *Config, epoch int) (Model, error) {
	return model.LoadModel(cfg, epoch)
}

// Datasets and loaders

// Graph is a dense hit graph.
type Graph = hitgraph.Graph

// SparseGraph is an edge-list hit graph.
type SparseGraph = hitgraph.SparseGraph

// Batch is one data-loader step.
type Batch = hitgraph.Batch

// Dataset is a directory of hit-graph files.
type Dataset = hitgraph.Dataset

// DataLoader iterates a dataset subset one graph per batch.
type DataLoader = hitgraph.DataLoader

// GetDataset opens the dataset referenced by the configuration.
func GetDataset(cfg *Config) (*Dataset, error) {
	return hitgraph.OpenConfigDataset(cfg)
}

// GetTestDataLoader builds a sparse-graph loader over the last nTest graphs
// of the dataset, iterated from the back.
func GetTestDataLoader(cfg *Config, nTest int) (*DataLoader, error) {
	return hitgraph.TestDataLoader(cfg, nTest, true)
}

// GetDenseTestDataLoader is GetTestDataLoader for the dense incidence
// representation.
func GetDenseTestDataLoader(cfg *Config, nTest int) (*DataLoader, error) {
	return hitgraph.TestDataLoader(cfg, nTest, false)
}

// GetDataLoader partitions the dataset into nTasks contiguous chunks and
// builds a sparse-graph loader over chunk number task, returning the
// dataset indices of the chunk alongside.
func GetDataLoader(cfg *Config, nTasks, task int) (*DataLoader, []int, error) {
	return hitgraph.TaskDataLoader(cfg, nTasks, task, true)
}

// Inference and metrics

// ApplyModel evaluates a model over every batch of a loader, returning
// per-batch sigmoid predictions and targets.
func ApplyModel(m Model, loader *DataLoader) (preds, targets [][]float64, err error) {
	return inference.Apply(m, loader)
}

// Results holds the evaluation metrics of one set of edge predictions.
type Results = metrics.Results

// ComputeMetrics concatenates per-batch predictions and targets and scores
// them at the decision threshold.
func ComputeMetrics(preds, targets [][]float64, threshold float64) (*Results, error) {
	return metrics.Compute(inference.Concat(preds), inference.Concat(targets), threshold)
}
