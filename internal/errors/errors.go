// Package errors provides centralized error handling for Flow.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrProjectNameRequired indicates the user supplied an empty project name.
	ErrProjectNameRequired = errors.New("project name is required")

	// ErrCategoryRequired indicates no project category was selected.
	ErrCategoryRequired = errors.New("project category is required")

	// ErrProjectTypeRequired indicates no project type was selected.
	ErrProjectTypeRequired = errors.New("project type is required")

	// ErrInvalidProjectName indicates the project name contains characters
	// that are unsafe in a directory name.
	ErrInvalidProjectName = errors.New("project name contains invalid characters")

	// ErrCreationCancelled indicates the user declined to proceed (for
	// example at the overwrite confirmation). Nothing was created.
	ErrCreationCancelled = errors.New("project creation cancelled")

	// ErrMenuCanceled indicates the user aborted an interactive prompt.
	ErrMenuCanceled = errors.New("menu canceled")

	// ErrNoMenuOptions indicates a menu was invoked with an empty option list.
	ErrNoMenuOptions = errors.New("no menu options provided")

	// ErrNonInteractive indicates an interactive prompt was requested but
	// the terminal is not a TTY.
	ErrNonInteractive = errors.New("interactive terminal required")

	// ErrGenerationFailed indicates a generation run reached the failed
	// state. The target directory has been rolled back (best effort).
	ErrGenerationFailed = errors.New("generation failed")

	// ErrStepFailed indicates a single generation step failed, halting the
	// sequence.
	ErrStepFailed = errors.New("step failed")

	// ErrInterrupted indicates the run was interrupted by the user (Ctrl+C)
	// or by context cancellation.
	ErrInterrupted = errors.New("generation interrupted")

	// ErrRollbackFailed indicates the compensating delete of the target
	// directory failed. It never masks the original failure verdict.
	ErrRollbackFailed = errors.New("rollback failed")

	// ErrEngineNotPending indicates Generate was called on a run that
	// already started or finished.
	ErrEngineNotPending = errors.New("run is not pending")

	// ErrKindNil indicates a nil kind was passed to the registry.
	ErrKindNil = errors.New("kind is nil")

	// ErrKindNameEmpty indicates a kind with an empty name was passed to the registry.
	ErrKindNameEmpty = errors.New("kind name cannot be empty")

	// ErrKindDuplicate indicates an attempt to register a kind under a key
	// that is already taken.
	ErrKindDuplicate = errors.New("kind already registered")

	// ErrKindNotFound indicates no kind is registered for the requested
	// project type and framework. The orchestrator treats this as a
	// user-input error, not a system fault.
	ErrKindNotFound = errors.New("kind not found")

	// ErrCommandFailed indicates an external command exited non-zero or
	// failed to launch.
	ErrCommandFailed = errors.New("command failed")

	// ErrEmptyCommand indicates a command was invoked with an empty argv.
	ErrEmptyCommand = errors.New("command cannot be empty")

	// ErrCommandNotConfigured indicates a mock command was not configured in tests.
	ErrCommandNotConfigured = errors.New("command not configured")

	// ErrSettingsInvalid indicates the settings file could not be parsed.
	ErrSettingsInvalid = errors.New("settings file invalid")

	// ErrUnknownSettingsKey indicates an update named a key that is not a
	// recognized setting.
	ErrUnknownSettingsKey = errors.New("unknown settings key")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrLockTimeout indicates a file lock could not be acquired within the timeout period.
	ErrLockTimeout = errors.New("lock acquisition timeout")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrMissingRequiredTools indicates that required tools are missing or outdated.
	ErrMissingRequiredTools = errors.New("required tools are missing or outdated")

	// ErrEditorLaunch indicates the post-generation editor launch failed.
	// This is reported as a warning and never rolls back the project.
	ErrEditorLaunch = errors.New("editor launch failed")

	// ErrTargetExists indicates the target directory already exists and the
	// run proceeded without the required overwrite confirmation.
	ErrTargetExists = errors.New("target directory already exists")
)
