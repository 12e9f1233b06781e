// Package coordinator ties the team registry, inboxes, and task board
// together behind a single facade. Callers pass identities as
// "member@team" strings; the coordinator validates them before
// delegating, so the packages underneath only ever see parsed values.
package coordinator

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/openclaw/agent-teams/internal/identity"
	"github.com/openclaw/agent-teams/internal/inbox"
	"github.com/openclaw/agent-teams/internal/logging"
	"github.com/openclaw/agent-teams/internal/storage"
	"github.com/openclaw/agent-teams/internal/taskboard"
	"github.com/openclaw/agent-teams/internal/team"
)

// Coordinator is the top-level entry point for all team operations.
type Coordinator struct {
	store  *storage.Store
	teams  *team.Registry
	inbox  *inbox.Service
	board  *taskboard.Board
	logger *logging.Logger
}

// New creates a coordinator rooted at dataDir. The directory is created
// if it does not exist.
func New(dataDir string, logger *logging.Logger) (*Coordinator, error) {
	if logger == nil {
		logger = logging.NopLogger()
	}
	store, err := storage.NewStore(dataDir)
	if err != nil {
		return nil, err
	}
	registry := team.NewRegistry(store)
	return &Coordinator{
		store:  store,
		teams:  registry,
		inbox:  inbox.NewService(store, registry),
		board:  taskboard.NewBoard(store),
		logger: logger,
	}, nil
}

// Teams exposes the underlying registry.
func (c *Coordinator) Teams() *team.Registry { return c.teams }

// Inbox exposes the underlying inbox service.
func (c *Coordinator) Inbox() *inbox.Service { return c.inbox }

// Board exposes the underlying task board.
func (c *Coordinator) Board() *taskboard.Board { return c.board }

// CreateTeam creates the named team or merges members into it.
func (c *Coordinator) CreateTeam(name string, members []string) (*team.Team, error) {
	t, err := c.teams.CreateOrMerge(name, members)
	if err != nil {
		return nil, err
	}
	c.logger.WithTeam(name).Info("team created", "members", len(t.Members))
	return t, nil
}

// SendMessage delivers text from one member to another. Both identities
// are "member@team" strings and must name the same team.
func (c *Coordinator) SendMessage(from, to, text string, msgType inbox.MessageType) (inbox.Message, error) {
	fromID, err := identity.Parse(from)
	if err != nil {
		return inbox.Message{}, err
	}
	toID, err := identity.Parse(to)
	if err != nil {
		return inbox.Message{}, err
	}
	msg, err := c.inbox.Send(fromID, toID, text, msgType)
	if err != nil {
		return inbox.Message{}, err
	}
	c.logger.WithTeam(fromID.Team).Debug("message sent",
		"from", fromID.Member, "to", toID.Member, "type", string(msg.Type))
	return msg, nil
}

// Broadcast sends text to every member of the sender's team except the
// sender.
func (c *Coordinator) Broadcast(from, text string, msgType inbox.MessageType) ([]inbox.Message, error) {
	fromID, err := identity.Parse(from)
	if err != nil {
		return nil, err
	}
	msgs, err := c.inbox.Broadcast(fromID, text, msgType)
	if err != nil {
		return nil, err
	}
	c.logger.WithTeam(fromID.Team).Debug("broadcast sent",
		"from", fromID.Member, "recipients", len(msgs))
	return msgs, nil
}

// Poll drains unread messages for the given identity and advances its
// cursor.
func (c *Coordinator) Poll(id string) ([]inbox.Message, error) {
	parsed, err := identity.Parse(id)
	if err != nil {
		return nil, err
	}
	return c.inbox.Poll(parsed)
}

// Peek returns the full inbox without advancing the cursor.
func (c *Coordinator) Peek(id string) ([]inbox.Message, error) {
	parsed, err := identity.Parse(id)
	if err != nil {
		return nil, err
	}
	return c.inbox.Peek(parsed)
}

// Unread reports how many messages are waiting for the given identity.
func (c *Coordinator) Unread(id string) (int, error) {
	parsed, err := identity.Parse(id)
	if err != nil {
		return 0, err
	}
	return c.inbox.Unread(parsed)
}

// Watch polls the identity's inbox until the returned cancel function
// is called, invoking handler for each delivered message.
func (c *Coordinator) Watch(id string, interval time.Duration, handler func(inbox.Message)) (cancel func(), err error) {
	parsed, err := identity.Parse(id)
	if err != nil {
		return nil, err
	}
	return c.inbox.Watch(parsed, interval, handler), nil
}

// taskAssignmentPayload mirrors the JSON body carried by
// task_assignment messages.
type taskAssignmentPayload struct {
	Type        string `json:"type"`
	TaskID      int    `json:"taskId"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

// CreateTask adds a task to the team's board. When both assignTo and
// assignBy are set, a task_assignment message is sent from the
// assigner to the assignee so the assignee learns of the task on the
// next poll.
func (c *Coordinator) CreateTask(teamName, subject, description, assignTo, assignBy string) (*taskboard.Task, error) {
	if err := team.ValidateName(teamName); err != nil {
		return nil, err
	}
	for _, m := range []string{assignTo, assignBy} {
		if m != "" {
			if err := team.ValidateMember(m); err != nil {
				return nil, err
			}
		}
	}
	task, err := c.board.Create(teamName, subject, description, assignTo, assignBy)
	if err != nil {
		return nil, err
	}
	log := c.logger.WithTeam(teamName)
	log.Info("task created", "task", task.ID, "subject", subject)

	if assignTo != "" && assignBy != "" {
		payload, err := json.Marshal(taskAssignmentPayload{
			Type:        "task_assignment",
			TaskID:      task.ID,
			Subject:     subject,
			Description: description,
		})
		if err != nil {
			return nil, fmt.Errorf("encode assignment: %w", err)
		}
		from := identity.Identity{Member: assignBy, Team: teamName}
		to := identity.Identity{Member: assignTo, Team: teamName}
		if _, err := c.inbox.Send(from, to, string(payload), inbox.TypeTaskAssignment); err != nil {
			return nil, err
		}
		log.Debug("assignment notified", "task", task.ID, "assignee", assignTo)
	}
	return task, nil
}

// ClaimTask moves a pending task to in_progress on behalf of the given
// identity, which must belong to the task's team.
func (c *Coordinator) ClaimTask(teamName string, taskID int, claimant string) (*taskboard.Task, error) {
	member, err := memberOf(claimant, teamName)
	if err != nil {
		return nil, err
	}
	task, err := c.board.Claim(teamName, taskID, member)
	if err != nil {
		return nil, err
	}
	c.logger.WithTeam(teamName).Info("task claimed", "task", taskID, "claimant", member)
	return task, nil
}

// CompleteTask moves an in_progress task to completed. Any member of
// the team may complete it, not just the claimant.
func (c *Coordinator) CompleteTask(teamName string, taskID int, completer, result string) (*taskboard.Task, error) {
	member, err := memberOf(completer, teamName)
	if err != nil {
		return nil, err
	}
	task, err := c.board.Complete(teamName, taskID, result)
	if err != nil {
		return nil, err
	}
	c.logger.WithTeam(teamName).Info("task completed", "task", taskID, "by", member)
	return task, nil
}

// ListTasks returns the team's tasks, optionally filtered by status.
func (c *Coordinator) ListTasks(teamName string, filter taskboard.Status) ([]taskboard.Task, error) {
	if err := team.ValidateName(teamName); err != nil {
		return nil, err
	}
	if filter != "" && !taskboard.ValidStatus(filter) {
		return nil, fmt.Errorf("invalid status %q", filter)
	}
	return c.board.List(teamName, filter)
}

// memberOf accepts either a bare member name or a full "member@team"
// identity and returns the member part. A full identity naming a
// different team is rejected; bare names must pass member validation.
func memberOf(s, teamName string) (string, error) {
	if strings.Contains(s, "@") {
		id, err := identity.Parse(s)
		if err != nil {
			return "", err
		}
		if id.Team != teamName {
			return "", fmt.Errorf("identity %q does not belong to team %q", s, teamName)
		}
		return id.Member, nil
	}
	if err := team.ValidateMember(s); err != nil {
		return "", err
	}
	return s, nil
}
