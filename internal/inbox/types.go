package inbox

import "time"

// MessageType identifies the kind of inter-member message.
type MessageType string

const (
	// TypeMessage is a direct message between two members.
	TypeMessage MessageType = "message"

	// TypeBroadcast is a message fanned out to every other team member.
	TypeBroadcast MessageType = "broadcast"

	// TypeTaskAssignment notifies a member that a task was assigned to them.
	// The message text carries a JSON payload with the task id and subject.
	TypeTaskAssignment MessageType = "task_assignment"

	// TypeIdleNotification is conventionally sent by a member on finishing
	// its unit of work, carrying a reason string.
	TypeIdleNotification MessageType = "idle_notification"
)

// Message is a single message in a member's inbox. Messages are immutable
// once appended; readers skip past them by advancing their cursor.
type Message struct {
	ID        string      `json:"id"`
	From      string      `json:"from"`
	To        string      `json:"to"`
	Team      string      `json:"team"`
	Type      MessageType `json:"type"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
}
