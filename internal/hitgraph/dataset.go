package hitgraph

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/config"
)

// Dataset is a directory of hit-graph .npz files, ordered by file name.
//
// Graphs are loaded lazily; the dataset itself only holds the file listing.
type Dataset struct {
	dir   string
	files []string
}

// OpenDataset lists the hit-graph files in a dataset directory.
func OpenDataset(dir string) (*Dataset, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.npz"))
	if err != nil {
		return nil, fmt.Errorf("failed to list dataset: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no graph files found in %s", dir)
	}
	sort.Strings(files)
	return &Dataset{dir: dir, files: files}, nil
}

// OpenConfigDataset opens the dataset referenced by an experiment
// configuration.
func OpenConfigDataset(cfg *config.Config) (*Dataset, error) {
	return OpenDataset(cfg.InputDir())
}

// Len returns the number of graphs in the dataset.
func (d *Dataset) Len() int { return len(d.files) }

// FileName returns the path of the i-th graph file.
func (d *Dataset) FileName(i int) string { return d.files[i] }

// Get loads the i-th graph in dense form.
func (d *Dataset) Get(i int) (*Graph, error) {
	if i < 0 || i >= len(d.files) {
		return nil, fmt.Errorf("graph index %d out of range [0, %d)", i, len(d.files))
	}
	return LoadNPZ(d.files[i])
}

// Batch is one data-loader step: a single graph in the representation the
// loader was built for, plus its edge targets.
type Batch struct {
	// Dense is set for dense loaders.
	Dense *Graph

	// Sparse is set for sparse loaders.
	Sparse *SparseGraph

	// Targets holds the edge labels of the graph.
	Targets []float64
}

// DataLoader iterates a subset of a dataset one graph per batch.
type DataLoader struct {
	ds      *Dataset
	indices []int
	sparse  bool
}

// NewDataLoader builds a loader over the given dataset indices.
//
// With sparse set, batches carry the edge-list representation; otherwise the
// dense incidence form.
func NewDataLoader(ds *Dataset, indices []int, sparse bool) (*DataLoader, error) {
	for _, i := range indices {
		if i < 0 || i >= ds.Len() {
			return nil, fmt.Errorf("subset index %d out of range [0, %d)", i, ds.Len())
		}
	}
	return &DataLoader{ds: ds, indices: indices, sparse: sparse}, nil
}

// Len returns the number of batches.
func (l *DataLoader) Len() int { return len(l.indices) }

// Indices returns the dataset indices this loader iterates, in order.
func (l *DataLoader) Indices() []int { return l.indices }

// Batch loads the i-th batch.
func (l *DataLoader) Batch(i int) (*Batch, error) {
	if i < 0 || i >= len(l.indices) {
		return nil, fmt.Errorf("batch index %d out of range [0, %d)", i, len(l.indices))
	}
	g, err := l.ds.Get(l.indices[i])
	if err != nil {
		return nil, err
	}
	if !l.sparse {
		return &Batch{Dense: g, Targets: g.Y}, nil
	}
	sg, err := g.ToSparse()
	if err != nil {
		return nil, err
	}
	return &Batch{Sparse: sg, Targets: sg.Y}, nil
}

// TestDataLoader builds a loader over the test split: the last nTest graphs
// of the dataset, iterated from the back.
func TestDataLoader(cfg *config.Config, nTest int, sparse bool) (*DataLoader, error) {
	ds, err := OpenConfigDataset(cfg)
	if err != nil {
		return nil, err
	}
	if nTest <= 0 {
		nTest = cfg.Data.NTest
	}
	if nTest <= 0 || nTest > ds.Len() {
		return nil, fmt.Errorf("invalid test size %d for dataset of %d graphs", nTest, ds.Len())
	}

	indices := make([]int, nTest)
	for i := range indices {
		indices[i] = ds.Len() - 1 - i
	}
	return NewDataLoader(ds, indices, sparse)
}

// TaskDataLoader partitions the dataset into nTasks contiguous chunks and
// builds a loader over chunk number task. It returns the loader together
// with the dataset indices of the chunk, for bookkeeping by batch jobs.
//
// Chunk sizes differ by at most one, with the earlier chunks larger.
func TaskDataLoader(cfg *config.Config, nTasks, task int, sparse bool) (*DataLoader, []int, error) {
	if nTasks <= 0 || task < 0 || task >= nTasks {
		return nil, nil, fmt.Errorf("invalid task %d of %d", task, nTasks)
	}
	ds, err := OpenConfigDataset(cfg)
	if err != nil {
		return nil, nil, err
	}

	n := ds.Len()
	base, extra := n/nTasks, n%nTasks
	start := task*base + min(task, extra)
	size := base
	if task < extra {
		size++
	}

	indices := make([]int, size)
	for i := range indices {
		indices[i] = start + i
	}
	loader, err := NewDataLoader(ds, indices, sparse)
	if err != nil {
		return nil, nil, err
	}
	return loader, indices, nil
}
