package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries is the pre-built mapping of sentinel errors to their user-facing messages.
// This single source of truth ensures UserMessage and Actionable stay in sync.
// Using a slice (not a map) because errors.Is() requires proper error chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Wizard input
	// ===================
	{
		err: ErrProjectNameRequired,
		info: ErrorInfo{
			Message: "Project name is required",
			Action:  "Enter a non-empty project name.",
		},
	},
	{
		err: ErrCategoryRequired,
		info: ErrorInfo{
			Message: "Project category is required",
			Action:  "Pick a category from the menu.",
		},
	},
	{
		err: ErrProjectTypeRequired,
		info: ErrorInfo{
			Message: "Project type is required",
			Action:  "Pick a project type from the menu.",
		},
	},
	{
		err: ErrInvalidProjectName,
		info: ErrorInfo{
			Message: "Project name contains invalid characters",
			Action:  "Use letters, digits, dashes, underscores, and dots only.",
		},
	},
	{
		err: ErrCreationCancelled,
		info: ErrorInfo{
			Message: "Project creation cancelled.",
		},
	},
	{
		err: ErrNonInteractive,
		info: ErrorInfo{
			Message: "flow new needs an interactive terminal.",
			Action:  "Run it from a terminal; the wizard cannot read answers from a pipe or CI job.",
		},
	},
	{
		err: ErrKindNotFound,
		info: ErrorInfo{
			Message: "No template is registered for that selection.",
			Action:  "Run 'flow templates' to see the available project types.",
		},
	},

	// ===================
	// Generation
	// ===================
	{
		err: ErrGenerationFailed,
		info: ErrorInfo{
			Message: "Failed to create project",
			Action:  "Check ~/.flow/logs/flow.log for the failing step's output.",
		},
	},
	{
		err: ErrInterrupted,
		info: ErrorInfo{
			Message: "Project creation cancelled.",
		},
	},
	{
		err: ErrRollbackFailed,
		info: ErrorInfo{
			Message: "Cleanup of the partial project directory failed.",
			Action:  "Remove the target directory manually before retrying.",
		},
	},
	{
		err: ErrEditorLaunch,
		info: ErrorInfo{
			Message: "Project created, but the editor could not be launched.",
			Action:  "Open the project directory manually, or run 'flow config set preferred_editor <editor>'.",
		},
	},

	// ===================
	// Settings & tools
	// ===================
	{
		err: ErrSettingsInvalid,
		info: ErrorInfo{
			Message: "The settings file could not be read.",
			Action:  "Fix or delete ~/.flow/config.json; defaults are recreated on the next run.",
		},
	},
	{
		err: ErrUnknownSettingsKey,
		info: ErrorInfo{
			Message: "That is not a recognized setting.",
			Action:  "Valid keys: development_folder, preferred_editor.",
		},
	},
	{
		err: ErrMissingRequiredTools,
		info: ErrorInfo{
			Message: "Required scaffolding tools are missing or outdated.",
			Action:  "Run 'flow doctor' for installation hints.",
		},
	},
	{
		err: ErrLockTimeout,
		info: ErrorInfo{
			Message: "Another flow process is updating the settings file.",
			Action:  "Wait for the other process to finish and retry.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
// Built once from errorInfoEntries during package initialization.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

// buildErrorInfoMap creates a map from the errorInfoEntries slice.
// This is called once during package init for O(1) direct lookups.
func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// It first tries O(1) direct map lookup for unwrapped sentinel errors,
// then falls back to errors.Is() traversal for wrapped errors.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	// Fast path: O(1) lookup for direct sentinel errors
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	// Slow path: errors.Is() for wrapped errors
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// This function maps sentinel errors to helpful, actionable messages
// that are suitable for display to end users.
//
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
//
// For errors that are not recoverable or have no clear action, the action
// string will be empty.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
