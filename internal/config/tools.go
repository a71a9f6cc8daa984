// This file implements detection of the external scaffolding tools Flow
// shells out to: the npm toolchain for the JavaScript kinds, Python for the
// backend kinds, and the editor launched after a successful run.
package config

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/flow/internal/constants"
)

// Pre-compiled regexes for version parsing (compiled once at package init).
//
//nolint:gochecknoglobals // Package-level compiled regexes are a Go best practice for performance
var (
	nodeVersionRe    = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?)`)
	pythonVersionRe  = regexp.MustCompile(`Python (\d+\.\d+(?:\.\d+)?)`)
	gitVersionRe     = regexp.MustCompile(`git version (\d+\.\d+(?:\.\d+)?)`)
	poetryVersionRe  = regexp.MustCompile(`\(version (\d+\.\d+(?:\.\d+)?)\)`)
	genericVersionRe = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?)`)
)

// ToolStatus represents the installation status of an external tool.
//
//nolint:recvcheck // UnmarshalJSON requires pointer receiver per json.Unmarshaler interface
type ToolStatus int

const (
	// ToolStatusMissing indicates the tool is not installed.
	ToolStatusMissing ToolStatus = iota

	// ToolStatusInstalled indicates the tool is installed and meets version requirements.
	ToolStatusInstalled

	// ToolStatusOutdated indicates the tool is installed but below the minimum version.
	ToolStatusOutdated
)

// maxVersionSegments is the number of segments in a semantic version (major.minor.patch).
const maxVersionSegments = 3

// String returns a human-readable representation of the tool status.
func (s ToolStatus) String() string {
	switch s {
	case ToolStatusInstalled:
		return "installed"
	case ToolStatusMissing:
		return "missing"
	case ToolStatusOutdated:
		return "outdated"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for human-readable JSON output.
func (s ToolStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for parsing JSON status strings.
func (s *ToolStatus) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}
	switch str {
	case "installed":
		*s = ToolStatusInstalled
	case "outdated":
		*s = ToolStatusOutdated
	default:
		*s = ToolStatusMissing
	}
	return nil
}

// Tool represents an external tool Flow shells out to.
type Tool struct {
	// Name is the tool's command name (e.g., "node", "python3").
	Name string `json:"name"`

	// Required indicates the tool is needed by at least one project kind's
	// base scaffold sequence.
	Required bool `json:"required"`

	// MinVersion is the minimum required version (semver format).
	MinVersion string `json:"min_version,omitempty"`

	// CurrentVersion is the detected installed version.
	CurrentVersion string `json:"current_version,omitempty"`

	// Status is the current installation status.
	Status ToolStatus `json:"status"`

	// InstallHint provides installation instructions for missing tools.
	InstallHint string `json:"install_hint"`
}

// ToolDetectionResult holds the results of detecting all tools.
type ToolDetectionResult struct {
	// Tools contains the detection result for each tool.
	Tools []Tool `json:"tools"`

	// HasMissingRequired indicates if any required tools are missing or outdated.
	HasMissingRequired bool `json:"has_missing_required"`
}

// MissingRequiredTools returns the required tools that are missing or outdated.
func (r *ToolDetectionResult) MissingRequiredTools() []Tool {
	var missing []Tool
	for _, tool := range r.Tools {
		if tool.Required && (tool.Status == ToolStatusMissing || tool.Status == ToolStatusOutdated) {
			missing = append(missing, tool)
		}
	}
	return missing
}

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	// LookPath searches for an executable named file in the PATH.
	LookPath(file string) (string, error)

	// Run executes a command and returns its combined output.
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// DefaultCommandExecutor implements CommandExecutor using os/exec.
type DefaultCommandExecutor struct{}

// LookPath searches for an executable in the PATH.
func (e *DefaultCommandExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command and returns its output.
func (e *DefaultCommandExecutor) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...) //#nosec G204 -- name comes from the static tool table
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// ToolDetector detects the installation status of external tools.
type ToolDetector interface {
	// Detect checks all known tools and returns their status.
	Detect(ctx context.Context) (*ToolDetectionResult, error)

	// DetectCommands checks only the named tools. Unknown names are skipped.
	DetectCommands(ctx context.Context, names ...string) (*ToolDetectionResult, error)
}

// DefaultToolDetector implements ToolDetector.
type DefaultToolDetector struct {
	executor CommandExecutor
}

// NewToolDetector creates a new DefaultToolDetector with the default executor.
func NewToolDetector() *DefaultToolDetector {
	return &DefaultToolDetector{
		executor: &DefaultCommandExecutor{},
	}
}

// NewToolDetectorWithExecutor creates a new DefaultToolDetector with a custom executor.
func NewToolDetectorWithExecutor(executor CommandExecutor) *DefaultToolDetector {
	return &DefaultToolDetector{
		executor: executor,
	}
}

// toolConfig holds the configuration for detecting a specific tool.
type toolConfig struct {
	name        string
	versionFlag string
	minVersion  string
	required    bool
	installHint string
	parseFunc   func(output string) string
}

// getToolConfigs returns the configuration for all tools to detect.
func getToolConfigs() []toolConfig {
	return []toolConfig{
		{
			name:        constants.ToolNode,
			versionFlag: constants.VersionFlagStandard,
			minVersion:  constants.MinVersionNode,
			required:    true,
			installHint: "Install Node.js from https://nodejs.org/ (version 18+)",
			parseFunc:   parseNodeVersion,
		},
		{
			name:        constants.ToolNPM,
			versionFlag: constants.VersionFlagStandard,
			minVersion:  constants.MinVersionNPM,
			required:    true,
			installHint: "npm ships with Node.js; install Node.js from https://nodejs.org/",
			parseFunc:   parseGenericVersion,
		},
		{
			name:        constants.ToolNPX,
			versionFlag: constants.VersionFlagStandard,
			minVersion:  "",
			required:    true,
			installHint: "npx ships with npm 5.2+; install Node.js from https://nodejs.org/",
			parseFunc:   parseGenericVersion,
		},
		{
			name:        constants.ToolPython,
			versionFlag: constants.VersionFlagStandard,
			minVersion:  constants.MinVersionPython,
			required:    true,
			installHint: "Install Python from https://www.python.org/downloads/ (version 3.10+)",
			parseFunc:   parsePythonVersion,
		},
		{
			name:        constants.ToolGit,
			versionFlag: constants.VersionFlagStandard,
			minVersion:  constants.MinVersionGit,
			required:    false,
			installHint: "Install Git from https://git-scm.com/downloads (version 2.20+)",
			parseFunc:   parseGitVersion,
		},
		{
			name:        constants.ToolPoetry,
			versionFlag: constants.VersionFlagStandard,
			minVersion:  "",
			required:    false,
			installHint: "Install Poetry: curl -sSL https://install.python-poetry.org | python3 -",
			parseFunc:   parsePoetryVersion,
		},
		{
			name:        constants.ToolCursor,
			versionFlag: constants.VersionFlagStandard,
			minVersion:  "",
			required:    false,
			installHint: "Install Cursor from https://cursor.com/ and enable its shell command",
			parseFunc:   parseGenericVersion,
		},
	}
}

// Detect checks all known tools and returns their status.
func (d *DefaultToolDetector) Detect(ctx context.Context) (*ToolDetectionResult, error) {
	return d.detect(ctx, getToolConfigs())
}

// DetectCommands checks only the named tools. Used as the pre-flight check
// before generation so a missing toolchain fails fast instead of mid-run.
func (d *DefaultToolDetector) DetectCommands(ctx context.Context, names ...string) (*ToolDetectionResult, error) {
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}

	var configs []toolConfig
	for _, cfg := range getToolConfigs() {
		if _, ok := wanted[cfg.name]; ok {
			// Pre-flight treats every requested tool as required.
			cfg.required = true
			configs = append(configs, cfg)
		}
	}
	return d.detect(ctx, configs)
}

// detect runs detection for the given tool configs in parallel.
func (d *DefaultToolDetector) detect(ctx context.Context, configs []toolConfig) (*ToolDetectionResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	detectCtx, cancel := context.WithTimeout(ctx, constants.ToolDetectionTimeout)
	defer cancel()

	result := &ToolDetectionResult{
		Tools: make([]Tool, 0, len(configs)),
	}
	var resultMu sync.Mutex

	g, gCtx := errgroup.WithContext(detectCtx)

	for _, cfg := range configs {
		g.Go(func() error {
			tool := d.detectTool(gCtx, cfg)
			resultMu.Lock()
			result.Tools = append(result.Tools, tool)
			resultMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to detect tools: %w", err)
	}

	for _, tool := range result.Tools {
		if tool.Required && (tool.Status == ToolStatusMissing || tool.Status == ToolStatusOutdated) {
			result.HasMissingRequired = true
			break
		}
	}

	return result, nil
}

// detectTool detects a single tool's status.
func (d *DefaultToolDetector) detectTool(ctx context.Context, cfg toolConfig) Tool {
	tool := Tool{
		Name:        cfg.name,
		Required:    cfg.required,
		MinVersion:  cfg.minVersion,
		InstallHint: cfg.installHint,
		Status:      ToolStatusMissing,
	}

	if _, err := d.executor.LookPath(cfg.name); err != nil {
		return tool
	}

	output, err := d.executor.Run(ctx, cfg.name, cfg.versionFlag)
	if err != nil {
		// Tool exists but version command failed - treat as installed without version info
		tool.Status = ToolStatusInstalled
		tool.CurrentVersion = "unknown"
		return tool
	}

	tool.CurrentVersion = cfg.parseFunc(output)
	if tool.CurrentVersion == "" {
		tool.CurrentVersion = "unknown"
		tool.Status = ToolStatusInstalled
		return tool
	}

	if cfg.minVersion != "" {
		if CompareVersions(tool.CurrentVersion, cfg.minVersion) < 0 {
			tool.Status = ToolStatusOutdated
		} else {
			tool.Status = ToolStatusInstalled
		}
	} else {
		tool.Status = ToolStatusInstalled
	}

	return tool
}

// Version parsing functions. All use pre-compiled regexes defined at package level.

// parseNodeVersion parses "v18.19.0" → "18.19.0"
func parseNodeVersion(output string) string {
	if matches := nodeVersionRe.FindStringSubmatch(output); len(matches) >= 2 {
		return matches[1]
	}
	return ""
}

// parsePythonVersion parses "Python 3.11.4" → "3.11.4"
func parsePythonVersion(output string) string {
	if matches := pythonVersionRe.FindStringSubmatch(output); len(matches) >= 2 {
		return matches[1]
	}
	return ""
}

// parseGitVersion parses "git version 2.39.0" → "2.39.0"
func parseGitVersion(output string) string {
	if matches := gitVersionRe.FindStringSubmatch(output); len(matches) >= 2 {
		return matches[1]
	}
	return ""
}

// parsePoetryVersion parses "Poetry (version 1.7.1)" → "1.7.1"
func parsePoetryVersion(output string) string {
	if matches := poetryVersionRe.FindStringSubmatch(output); len(matches) >= 2 {
		return matches[1]
	}
	return parseGenericVersion(output)
}

// parseGenericVersion extracts a bare version number, as printed by npm,
// npx, and cursor.
func parseGenericVersion(output string) string {
	if matches := genericVersionRe.FindStringSubmatch(output); len(matches) >= 2 {
		return matches[1]
	}
	return ""
}

// CompareVersions compares two semantic versions.
// Returns:
//
//	-1 if current < required
//	 0 if current == required
//	 1 if current > required
func CompareVersions(current, required string) int {
	current = strings.TrimPrefix(current, "v")
	required = strings.TrimPrefix(required, "v")

	currentParts := parseVersionParts(current)
	requiredParts := parseVersionParts(required)

	for i := 0; i < maxVersionSegments; i++ {
		if currentParts[i] < requiredParts[i] {
			return -1
		}
		if currentParts[i] > requiredParts[i] {
			return 1
		}
	}

	return 0
}

// parseVersionParts parses a version string into [major, minor, patch].
func parseVersionParts(version string) [maxVersionSegments]int {
	var parts [maxVersionSegments]int
	segments := strings.Split(version, ".")

	for i := 0; i < len(segments) && i < maxVersionSegments; i++ {
		numStr := segments[i]
		for j, c := range numStr {
			if c < '0' || c > '9' {
				numStr = numStr[:j]
				break
			}
		}
		if numStr != "" {
			parts[i], _ = strconv.Atoi(numStr)
		}
	}

	return parts
}

// FormatMissingToolsError creates a formatted error message for missing tools.
func FormatMissingToolsError(missing []Tool) string {
	if len(missing) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Missing required tools:\n\n")

	for _, tool := range missing {
		status := "missing"
		if tool.Status == ToolStatusOutdated {
			status = fmt.Sprintf("outdated (have %s, need %s)", tool.CurrentVersion, tool.MinVersion)
		}
		sb.WriteString(fmt.Sprintf("  • %s: %s\n", tool.Name, status))
		sb.WriteString(fmt.Sprintf("    Install: %s\n\n", tool.InstallHint))
	}

	return sb.String()
}
