// Package constants provides centralized constant values used throughout Flow.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names used by Flow for organizing per-user state.
const (
	// FlowHome is the hidden directory name where Flow stores all its data.
	// This directory is created in the user's home directory.
	FlowHome = ".flow"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// File names used by Flow for state persistence.
const (
	// SettingsFileName is the name of the JSON file that stores user settings.
	// This file is located in the Flow home directory.
	SettingsFileName = "config.json"

	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.flow/logs/flow.log
	CLILogFileName = "flow.log"
)

// Settings defaults. The settings file is created with these values when absent.
const (
	// DefaultDevelopmentFolder is the default directory under which new
	// projects are created. The leading ~ is expanded at load time.
	DefaultDevelopmentFolder = "~/Development"

	// DefaultEditor is the default editor launched after a successful
	// generation run.
	DefaultEditor = "cursor"
)

// Settings keys as they appear in the settings file and in env overrides.
const (
	// SettingsKeyDevelopmentFolder selects the project parent directory.
	SettingsKeyDevelopmentFolder = "development_folder"

	// SettingsKeyPreferredEditor selects the post-generation editor.
	SettingsKeyPreferredEditor = "preferred_editor"
)

// EnvPrefix is the prefix for environment variable overrides
// (e.g. FLOW_DEVELOPMENT_FOLDER).
const EnvPrefix = "FLOW"

// EnvFlowHome overrides the Flow home directory location. Used by tests and
// by users who relocate their state directory.
const EnvFlowHome = "FLOW_HOME"

// Log rotation settings for the global CLI log file.
const (
	// LogMaxSizeMB is the maximum size in megabytes before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age in days of a rotated file.
	LogMaxAgeDays = 28

	// LogCompress enables gzip compression of rotated files.
	LogCompress = true
)

// Timeout configurations for various operations.
const (
	// EditorLaunchTimeout bounds the post-generation editor launch. The
	// launch is fire-and-forget; a slow editor must not hang the CLI.
	EditorLaunchTimeout = 10 * time.Second

	// LockTimeout is the maximum time to wait for the settings file lock.
	LockTimeout = 5 * time.Second

	// LockRetryInterval is the interval between lock acquisition attempts.
	LockRetryInterval = 50 * time.Millisecond
)
