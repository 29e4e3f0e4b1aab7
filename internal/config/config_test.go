package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/config"
)

const sampleConfig = `
output_dir: $SCRATCH/results/agnn01
data:
  input_dir: $SCRATCH/hitgraphs_big
  n_train: 800
  n_valid: 80
  n_test: 16
model:
  name: edge_scorer
  loss_func: binary_cross_entropy
  input_dim: 3
  hidden_dim: 64
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "$SCRATCH/results/agnn01", cfg.Output)
	assert.Equal(t, 800, cfg.Data.NTrain)
	assert.Equal(t, 16, cfg.Data.NTest)
	assert.Equal(t, "edge_scorer", cfg.Model.Name)
}

func TestLoad_ModelParams(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	// Hyperparameters stay, harness-only keys are dropped.
	assert.Equal(t, 3, cfg.Model.Params["input_dim"])
	assert.Equal(t, 64, cfg.Model.Params["hidden_dim"])
	assert.NotContains(t, cfg.Model.Params, "loss_func")
	assert.NotContains(t, cfg.Model.Params, "name")
}

func TestDirExpansion(t *testing.T) {
	t.Setenv("SCRATCH", "/data/scratch")

	cfg, err := config.Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "/data/scratch/results/agnn01", cfg.OutputDir())
	assert.Equal(t, "/data/scratch/hitgraphs_big", cfg.InputDir())
}

func TestLoadDir(t *testing.T) {
	resultDir := t.TempDir()
	cfg := &config.Config{
		Output: resultDir,
		Model: config.ModelConfig{
			Name:   "edge_scorer",
			Params: map[string]any{"input_dim": 3},
		},
	}
	require.NoError(t, cfg.Save(filepath.Join(resultDir, config.ConfigFileName)))

	loaded, err := config.LoadDir(resultDir)
	require.NoError(t, err)
	assert.Equal(t, cfg.Output, loaded.Output)
	assert.Equal(t, "edge_scorer", loaded.Model.Name)
	assert.Equal(t, 3, loaded.Model.Params["input_dim"])
}

func TestLoad_Missing(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := config.Load(writeConfig(t, "output_dir: [unclosed"))
	assert.Error(t, err)
}
