package main

import (
	"os"

	"github.com/murnanedaniel/heptrkx-gnn-tracking/analysis"
)

// loadConfig resolves the --config flag: either a YAML file or a result
// directory holding the config the training harness saved.
func loadConfig() (*analysis.Config, error) {
	info, err := os.Stat(configPath)
	if err == nil && info.IsDir() {
		return analysis.LoadConfigDir(configPath)
	}
	return analysis.LoadConfig(configPath)
}
