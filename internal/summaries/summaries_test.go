package summaries_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/config"
	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/summaries"
)

const sampleSummaries = `epoch,train_loss,valid_loss,valid_acc,train_time
0,0.693,0.650,0.55,120.5
1,0.540,0.510,0.71,118.2
2,0.480,0.495,0.74,119.0
3,0.450,0.502,0.73,118.8
`

func writeSummaries(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, summaries.SummaryFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	s, err := summaries.LoadFile(writeSummaries(t, t.TempDir(), sampleSummaries))
	require.NoError(t, err)

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []string{"epoch", "train_loss", "valid_loss", "valid_acc", "train_time"}, s.Columns())
	assert.Equal(t, []float64{0, 1, 2, 3}, s.Epoch())
	assert.InDelta(t, 0.450, s.TrainLoss()[3], 1e-12)
	assert.InDelta(t, 0.74, s.ValidAcc()[2], 1e-12)

	// Extra columns stay reachable by name.
	times, err := s.Column("train_time")
	require.NoError(t, err)
	assert.Len(t, times, 4)
}

func TestLoad_FromConfig(t *testing.T) {
	outDir := t.TempDir()
	writeSummaries(t, outDir, sampleSummaries)

	cfg := &config.Config{Output: outDir}
	s, err := summaries.Load(cfg)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Len())
}

func TestBestEpoch(t *testing.T) {
	s, err := summaries.LoadFile(writeSummaries(t, t.TempDir(), sampleSummaries))
	require.NoError(t, err)

	epoch, loss, err := s.BestEpoch()
	require.NoError(t, err)
	assert.Equal(t, 2, epoch)
	assert.InDelta(t, 0.495, loss, 1e-12)
}

func TestStats(t *testing.T) {
	s, err := summaries.LoadFile(writeSummaries(t, t.TempDir(), sampleSummaries))
	require.NoError(t, err)

	mean, stddev, err := s.Stats("valid_acc")
	require.NoError(t, err)
	assert.InDelta(t, (0.55+0.71+0.74+0.73)/4, mean, 1e-12)
	assert.Greater(t, stddev, 0.0)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "header only", content: "epoch,train_loss\n"},
		{name: "ragged row", content: "epoch,train_loss\n0\n"},
		{name: "non numeric", content: "epoch,train_loss\n0,abc\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := summaries.LoadFile(writeSummaries(t, t.TempDir(), tt.content))
			assert.Error(t, err)
		})
	}
}

func TestColumn_Unknown(t *testing.T) {
	s, err := summaries.LoadFile(writeSummaries(t, t.TempDir(), sampleSummaries))
	require.NoError(t, err)

	_, err = s.Column("lr")
	assert.Error(t, err)
}
