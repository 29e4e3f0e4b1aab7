// Package summaries loads the per-epoch training summaries table written by
// the training harness.
//
// The table is a CSV file named summaries_0.csv in the experiment output
// directory, one row per epoch with at least the epoch, train_loss,
// valid_loss and valid_acc columns. Extra columns (timings, learning rate)
// are kept and accessible by name.
package summaries

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/config"
)

// SummaryFileName is the summaries table written by rank 0 of the training
// harness.
const SummaryFileName = "summaries_0.csv"

// Well-known column names.
const (
	ColEpoch     = "epoch"
	ColTrainLoss = "train_loss"
	ColValidLoss = "valid_loss"
	ColValidAcc  = "valid_acc"
)

// Summaries is a column-oriented view of the training summaries table.
type Summaries struct {
	names   []string
	columns map[string][]float64
	rows    int
}

// Load reads the summaries table of the experiment described by cfg.
func Load(cfg *config.Config) (*Summaries, error) {
	return LoadFile(filepath.Join(cfg.OutputDir(), SummaryFileName))
}

// LoadFile reads a summaries table from a CSV file.
//
// The first row is the header; every value must parse as a float.
func LoadFile(path string) (*Summaries, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open summaries: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read summaries CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("summaries file %s is empty or missing header", path)
	}

	header := records[0]
	s := &Summaries{
		names:   header,
		columns: make(map[string][]float64, len(header)),
		rows:    len(records) - 1,
	}
	for _, name := range header {
		s.columns[name] = make([]float64, 0, s.rows)
	}

	for i, record := range records[1:] {
		if len(record) != len(header) {
			return nil, fmt.Errorf("invalid record length at row %d: got %d, want %d",
				i+1, len(record), len(header))
		}
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid value %q at row %d, column %s: %w",
					field, i+1, header[j], err)
			}
			s.columns[header[j]] = append(s.columns[header[j]], v)
		}
	}

	return s, nil
}

// Len returns the number of epochs in the table.
func (s *Summaries) Len() int { return s.rows }

// Columns returns the column names in file order.
func (s *Summaries) Columns() []string { return s.names }

// Column returns the named column.
func (s *Summaries) Column(name string) ([]float64, error) {
	col, ok := s.columns[name]
	if !ok {
		return nil, fmt.Errorf("summaries have no column %q", name)
	}
	return col, nil
}

// Epoch returns the epoch column, or nil if absent.
func (s *Summaries) Epoch() []float64 { return s.columns[ColEpoch] }

// TrainLoss returns the training loss column, or nil if absent.
func (s *Summaries) TrainLoss() []float64 { return s.columns[ColTrainLoss] }

// ValidLoss returns the validation loss column, or nil if absent.
func (s *Summaries) ValidLoss() []float64 { return s.columns[ColValidLoss] }

// ValidAcc returns the validation accuracy column, or nil if absent.
func (s *Summaries) ValidAcc() []float64 { return s.columns[ColValidAcc] }

// BestEpoch returns the epoch with the lowest validation loss.
func (s *Summaries) BestEpoch() (epoch int, validLoss float64, err error) {
	losses, err := s.Column(ColValidLoss)
	if err != nil {
		return 0, 0, err
	}
	epochs, err := s.Column(ColEpoch)
	if err != nil {
		return 0, 0, err
	}

	best := 0
	for i, v := range losses {
		if v < losses[best] {
			best = i
		}
	}
	return int(epochs[best]), losses[best], nil
}

// Stats returns the mean and standard deviation of a column.
func (s *Summaries) Stats(name string) (mean, stddev float64, err error) {
	col, err := s.Column(name)
	if err != nil {
		return 0, 0, err
	}
	mean, std := stat.MeanStdDev(col, nil)
	if math.IsNaN(std) {
		// Single-row tables have no spread.
		std = 0
	}
	return mean, std, nil
}
