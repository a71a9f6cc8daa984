// Package testutil provides testing utilities for Flow.
//
// This package contains mock errors and test helpers used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors are used to simulate various failure scenarios in tests.
var (
	// ErrMockCommandFailed indicates a mock external command failed (used in tests).
	ErrMockCommandFailed = errors.New("command failed")

	// ErrMockWriteFailed indicates a mock file write failed (used in tests).
	ErrMockWriteFailed = errors.New("write failed")

	// ErrMockPermission indicates a mock permission error occurred (used in tests).
	ErrMockPermission = errors.New("permission denied")

	// ErrMockDiskFull indicates a mock disk-full condition (used in tests).
	ErrMockDiskFull = errors.New("no space left on device")

	// ErrMockEditorMissing indicates a mock editor binary was not found (used in tests).
	ErrMockEditorMissing = errors.New("editor not found")
)
