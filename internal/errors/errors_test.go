package errors

import (
	"fmt"
	"testing"
)

func TestClaimConflictError_Message(t *testing.T) {
	err := NewClaimConflictError(1, "in_progress")
	want := "Task 1 is in_progress, cannot claim"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCompletionError_Message(t *testing.T) {
	err := NewCompletionError(7, "pending")
	want := "Task 7 is pending, cannot complete"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestMalformedIdentityError_Message(t *testing.T) {
	err := NewMalformedIdentityError("worker")
	want := `invalid identity "worker", expected member@team`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestInvalidMemberError_Message(t *testing.T) {
	err := NewInvalidMemberError("../x", "name contains a path separator")
	want := `invalid member name "../x": name contains a path separator`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestStorageError_Unwrap(t *testing.T) {
	cause := New("disk full")
	err := NewStorageError("write team config", cause)

	if !Is(err, cause) {
		t.Error("expected errors.Is to match the wrapped cause")
	}
	if err.Error() != "storage: write team config: disk full" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestAs_TypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("claim failed: %w", NewClaimConflictError(2, "completed"))

	var conflict *ClaimConflictError
	if !As(wrapped, &conflict) {
		t.Fatal("expected errors.As to find ClaimConflictError")
	}
	if conflict.TaskID != 2 || conflict.Status != "completed" {
		t.Errorf("unexpected fields: %+v", conflict)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"claim conflict", NewClaimConflictError(1, "in_progress"), true},
		{"completion", NewCompletionError(1, "pending"), true},
		{"invalid team", NewInvalidTeamError("", "name is empty"), true},
		{"invalid member", NewInvalidMemberError("a/b", "name contains a path separator"), true},
		{"malformed identity", NewMalformedIdentityError("x"), true},
		{"storage", NewStorageError("read", New("io")), false},
		{"plain", New("boom"), false},
		{"wrapped user-facing", fmt.Errorf("context: %w", NewCompletionError(1, "pending")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}
