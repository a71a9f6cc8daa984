// Package constants provides centralized constant values used throughout Flow.
// This file contains tool-related constants for the tool detection system.
package constants

import "time"

// Tool detection timeout configuration.
const (
	// ToolDetectionTimeout is the maximum duration for detecting all tools.
	// Detection runs in parallel but must complete within this timeout.
	ToolDetectionTimeout = 2 * time.Second
)

// Tool names used by the tool detection system and the kind step builders.
const (
	// ToolNode is the Node.js runtime, required by every npm-based kind.
	ToolNode = "node"

	// ToolNPM is the npm package manager.
	ToolNPM = "npm"

	// ToolNPX is the npm package runner used for one-shot scaffolding tools.
	ToolNPX = "npx"

	// ToolPython is the Python 3 interpreter, required by the backend kinds.
	ToolPython = "python3"

	// ToolGit is the Git version control system.
	ToolGit = "git"

	// ToolPoetry is the Poetry Python dependency manager (FastAPI kind).
	ToolPoetry = "poetry"

	// ToolCursor is the Cursor editor CLI, the default post-generation editor.
	ToolCursor = "cursor"
)

// Minimum version requirements for required tools.
const (
	// MinVersionNode is the minimum required Node.js version. The Vite and
	// Next.js generators refuse to run on anything older.
	MinVersionNode = "18.0.0"

	// MinVersionNPM is the minimum required npm version.
	MinVersionNPM = "9.0.0"

	// MinVersionPython is the minimum required Python version.
	MinVersionPython = "3.10.0"

	// MinVersionGit is the minimum required Git version.
	MinVersionGit = "2.20.0"
)

// Tool version command arguments.
const (
	// VersionFlagStandard is the standard version flag used by most tools.
	VersionFlagStandard = "--version"
)
