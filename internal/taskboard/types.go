package taskboard

import "time"

// Status is the lifecycle state of a task.
type Status string

const (
	// StatusPending means the task is unclaimed and available.
	StatusPending Status = "pending"

	// StatusInProgress means a member has claimed the task.
	StatusInProgress Status = "in_progress"

	// StatusCompleted means the task is finished; completion is final.
	StatusCompleted Status = "completed"
)

// ValidStatus reports whether s is a known task status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task is one item on a team's shared task board. IDs are assigned
// sequentially per team starting at 1 and are never reused.
type Task struct {
	ID          int       `json:"id"`
	Subject     string    `json:"subject"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	ClaimedBy   string    `json:"claimed_by,omitempty"`
	AssignedTo  string    `json:"assigned_to,omitempty"`
	AssignedBy  string    `json:"assigned_by,omitempty"`
	Result      string    `json:"result,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
