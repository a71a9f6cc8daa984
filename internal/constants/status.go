package constants

// RunStatus represents the state of a generation run in the Flow state machine.
// Status values use snake_case for JSON serialization compatibility.
type RunStatus string

// Run status constants define the valid states a generation run can be in.
// The state machine is strictly linear with two terminal states:
//
//	Pending → Running
//	Running → Succeeded, Failed
//
// There is no retry transition; a failed run is rolled back and reported.
const (
	// RunStatusPending indicates a run is constructed but not yet started.
	RunStatusPending RunStatus = "pending"

	// RunStatusRunning indicates steps are actively executing.
	RunStatusRunning RunStatus = "running"

	// RunStatusSucceeded indicates every step completed successfully.
	RunStatusSucceeded RunStatus = "succeeded"

	// RunStatusFailed indicates a step failed, a step panicked, or the run
	// was interrupted. The target directory has been rolled back (best effort).
	RunStatusFailed RunStatus = "failed"
)

// String returns the string representation of the RunStatus.
// This implements fmt.Stringer for convenient logging and debugging.
func (s RunStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status is a terminal state.
func (s RunStatus) IsTerminal() bool {
	return s == RunStatusSucceeded || s == RunStatusFailed
}
