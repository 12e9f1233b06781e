// Package errors provides centralized error definitions for the agent-teams
// codebase. It defines domain-specific error types, constructors with context
// wrapping, and classification helpers.
//
// # Error Types
//
// Domain-specific errors represent errors from specific subsystems:
//   - InvalidTeamError: malformed or unusable team name
//   - MalformedIdentityError: identity string missing member/team parts
//   - ClaimConflictError: task not claimable in its current status
//   - CompletionError: task not completable in its current status
//   - StorageError: I/O or durability failure in the storage layer
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewClaimConflictError(3, "in_progress")
//	err := errors.NewStorageError("write team config", ioErr)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrTaskNotFound) { ... }
//
//	var conflict *errors.ClaimConflictError
//	if errors.As(err, &conflict) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience, so callers can
// import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Sentinel errors for lookups and storage conditions.
var (
	// ErrTeamNotFound indicates that a team has no stored configuration.
	ErrTeamNotFound = New("team not found")
	// ErrTaskNotFound indicates that a task ID does not exist on the board.
	ErrTaskNotFound = New("task not found")
	// ErrNotFound indicates that a storage key does not exist.
	ErrNotFound = New("not found")
)

// InvalidTeamError indicates a team name that cannot be used. Team names
// become directory names, so empty names and names containing path
// separators or '@' are rejected.
type InvalidTeamError struct {
	Name   string
	Reason string
}

// NewInvalidTeamError creates an InvalidTeamError for the given name.
func NewInvalidTeamError(name, reason string) *InvalidTeamError {
	return &InvalidTeamError{Name: name, Reason: reason}
}

func (e *InvalidTeamError) Error() string {
	return fmt.Sprintf("invalid team name %q: %s", e.Name, e.Reason)
}

// IsUserFacing reports that the message is safe to display to end users.
func (e *InvalidTeamError) IsUserFacing() bool { return true }

// InvalidMemberError indicates a member name that cannot be used. Member
// names become inbox file names, so the same path-safety rules apply as
// for team names.
type InvalidMemberError struct {
	Name   string
	Reason string
}

// NewInvalidMemberError creates an InvalidMemberError for the given name.
func NewInvalidMemberError(name, reason string) *InvalidMemberError {
	return &InvalidMemberError{Name: name, Reason: reason}
}

func (e *InvalidMemberError) Error() string {
	return fmt.Sprintf("invalid member name %q: %s", e.Name, e.Reason)
}

// IsUserFacing reports that the message is safe to display to end users.
func (e *InvalidMemberError) IsUserFacing() bool { return true }

// MalformedIdentityError indicates an identity string that does not parse
// as "member@team".
type MalformedIdentityError struct {
	Identity string
}

// NewMalformedIdentityError creates a MalformedIdentityError.
func NewMalformedIdentityError(identity string) *MalformedIdentityError {
	return &MalformedIdentityError{Identity: identity}
}

func (e *MalformedIdentityError) Error() string {
	return fmt.Sprintf("invalid identity %q, expected member@team", e.Identity)
}

// IsUserFacing reports that the message is safe to display to end users.
func (e *MalformedIdentityError) IsUserFacing() bool { return true }

// ClaimConflictError indicates an attempt to claim a task that is not
// pending. It carries the current status for diagnostics.
type ClaimConflictError struct {
	TaskID int
	Status string
}

// NewClaimConflictError creates a ClaimConflictError for the given task.
func NewClaimConflictError(taskID int, status string) *ClaimConflictError {
	return &ClaimConflictError{TaskID: taskID, Status: status}
}

func (e *ClaimConflictError) Error() string {
	return fmt.Sprintf("Task %d is %s, cannot claim", e.TaskID, e.Status)
}

// IsUserFacing reports that the message is safe to display to end users.
func (e *ClaimConflictError) IsUserFacing() bool { return true }

// CompletionError indicates an attempt to complete a task that is not
// in progress. It carries the current status for diagnostics.
type CompletionError struct {
	TaskID int
	Status string
}

// NewCompletionError creates a CompletionError for the given task.
func NewCompletionError(taskID int, status string) *CompletionError {
	return &CompletionError{TaskID: taskID, Status: status}
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("Task %d is %s, cannot complete", e.TaskID, e.Status)
}

// IsUserFacing reports that the message is safe to display to end users.
func (e *CompletionError) IsUserFacing() bool { return true }

// StorageError indicates an I/O or durability failure. It is fatal for the
// current call but must not corrupt other keys.
type StorageError struct {
	Op    string
	cause error
}

// NewStorageError creates a StorageError wrapping the underlying cause.
func NewStorageError(op string, cause error) *StorageError {
	return &StorageError{Op: op, cause: cause}
}

func (e *StorageError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("storage: %s: %v", e.Op, e.cause)
	}
	return fmt.Sprintf("storage: %s", e.Op)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error { return e.cause }

// IsUserFacing reports that storage errors are internal.
func (e *StorageError) IsUserFacing() bool { return false }

// userFacer is implemented by errors whose messages are safe to show users.
type userFacer interface {
	IsUserFacing() bool
}

// IsUserFacing reports whether an error's message is safe to display to end
// users. Unknown errors are treated as internal.
func IsUserFacing(err error) bool {
	var uf userFacer
	if As(err, &uf) {
		return uf.IsUserFacing()
	}
	return false
}
