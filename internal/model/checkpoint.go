package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/murnanedaniel/heptrkx-gnn-tracking/internal/config"
)

// CheckpointDirName is the checkpoint directory inside an experiment output
// directory.
const CheckpointDirName = "checkpoints"

// checkpointPattern is the per-epoch checkpoint file name.
const checkpointPattern = "model_checkpoint_%03d.safetensors"

// CheckpointFile returns the checkpoint path for an epoch inside an
// experiment output directory.
func CheckpointFile(outputDir string, epoch int) string {
	return filepath.Join(outputDir, CheckpointDirName, fmt.Sprintf(checkpointPattern, epoch))
}

// LatestCheckpoint scans an experiment output directory for the highest
// checkpoint epoch.
func LatestCheckpoint(outputDir string) (int, error) {
	entries, err := os.ReadDir(filepath.Join(outputDir, CheckpointDirName))
	if err != nil {
		return 0, fmt.Errorf("failed to list checkpoints: %w", err)
	}

	best := -1
	for _, entry := range entries {
		name := strings.TrimSuffix(strings.TrimPrefix(entry.Name(), "model_checkpoint_"), ".safetensors")
		if name == entry.Name() {
			continue
		}
		if epoch, err := strconv.Atoi(name); err == nil && epoch > best {
			best = epoch
		}
	}
	if best < 0 {
		return 0, fmt.Errorf("no checkpoints found in %s", outputDir)
	}
	return best, nil
}

// LoadModel builds the configured model and restores the checkpoint of the
// requested epoch. A negative epoch selects the latest checkpoint.
func LoadModel(cfg *config.Config, epoch int) (Model, error) {
	m, err := New(cfg.Model.Name, cfg.Model.Params)
	if err != nil {
		return nil, err
	}

	outputDir := cfg.OutputDir()
	if epoch < 0 {
		if epoch, err = LatestCheckpoint(outputDir); err != nil {
			return nil, err
		}
	}

	path := CheckpointFile(outputDir, epoch)
	stateDict, _, err := ReadStateDict(path)
	if err != nil {
		return nil, err
	}
	if err := m.LoadStateDict(stateDict); err != nil {
		return nil, fmt.Errorf("failed to restore %s: %w", path, err)
	}
	return m, nil
}
