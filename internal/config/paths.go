// Package config manages Flow's persisted user settings.
//
// Settings live in a single JSON file at ~/.flow/config.json holding the
// development folder new projects are created under and the editor launched
// after a successful run. The file is created with defaults on first use,
// loaded fresh on every read, and always saved as a whole object.
package config

import (
	"os"
	"path/filepath"

	"github.com/mrz1836/flow/internal/constants"
	flowerrors "github.com/mrz1836/flow/internal/errors"
)

// FlowHomeDir returns the Flow state directory, typically ~/.flow.
// The FLOW_HOME environment variable overrides the location.
func FlowHomeDir() (string, error) {
	if custom := os.Getenv(constants.EnvFlowHome); custom != "" {
		return custom, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", flowerrors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.FlowHome), nil
}

// SettingsPath returns the full path to the settings file,
// typically ~/.flow/config.json.
func SettingsPath() (string, error) {
	dir, err := FlowHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.SettingsFileName), nil
}

// LogsDirPath returns the directory holding Flow's log files,
// typically ~/.flow/logs.
func LogsDirPath() (string, error) {
	dir, err := FlowHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.LogsDir), nil
}
