// Package render turns teams, messages, and tasks into terminal
// output. Three shapes are supported: indented JSON for scripting,
// tagged text for injecting polled messages into an agent's context,
// and styled tables for humans.
package render

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/openclaw/agent-teams/internal/inbox"
	"github.com/openclaw/agent-teams/internal/taskboard"
	"github.com/openclaw/agent-teams/internal/team"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	inProgressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))

	completedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// JSON renders any value as indented JSON.
func JSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Messages renders polled messages as tagged text, one block per
// message. Text is emitted verbatim so agents receive exactly what was
// sent. An empty slice renders as an empty string.
func Messages(msgs []inbox.Message) string {
	if len(msgs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, fmt.Sprintf(
			"<teammate-message from=%q team=%q type=%q timestamp=%q>\n%s\n</teammate-message>",
			m.From, m.Team, m.Type, m.Timestamp.Format(time.RFC3339), m.Text))
	}
	return strings.Join(parts, "\n")
}

// MessagesJSON renders polled messages as indented JSON, using "[]"
// for an empty result so consumers always get valid JSON.
func MessagesJSON(msgs []inbox.Message) (string, error) {
	if len(msgs) == 0 {
		return "[]", nil
	}
	return JSON(msgs)
}

// Tasks renders a task table.
func Tasks(tasks []taskboard.Task) string {
	if len(tasks) == 0 {
		return dimStyle.Render("No tasks")
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-5s %-12s %-12s %s", "ID", "STATUS", "CLAIMED BY", "SUBJECT")))
	b.WriteByte('\n')
	for _, task := range tasks {
		status := statusStyle(task.Status).Render(fmt.Sprintf("%-12s", task.Status))
		claimant := task.ClaimedBy
		if claimant == "" {
			claimant = "-"
		}
		b.WriteString(fmt.Sprintf("%-5d %s %-12s %s\n", task.ID, status, claimant, task.Subject))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Task renders a single task with its full detail.
func Task(task *taskboard.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s #%d %s\n", statusStyle(task.Status).Render(string(task.Status)), task.ID, nameStyle.Render(task.Subject))
	if task.Description != "" {
		fmt.Fprintf(&b, "  %s\n", task.Description)
	}
	if task.AssignedTo != "" {
		fmt.Fprintf(&b, "  assigned to %s by %s\n", task.AssignedTo, task.AssignedBy)
	}
	if task.ClaimedBy != "" {
		fmt.Fprintf(&b, "  claimed by %s\n", task.ClaimedBy)
	}
	if task.Result != "" {
		fmt.Fprintf(&b, "  result: %s\n", task.Result)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Team renders a team with its member list.
func Team(t *team.Team) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d members)\n", nameStyle.Render(t.Name), len(t.Members))
	for _, m := range t.Members {
		fmt.Fprintf(&b, "  %s\n", m)
	}
	return strings.TrimRight(b.String(), "\n")
}

// TeamList renders a table of teams.
func TeamList(teams []*team.Team) string {
	if len(teams) == 0 {
		return dimStyle.Render("No teams")
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-20s %-8s %s", "TEAM", "MEMBERS", "CREATED")))
	b.WriteByte('\n')
	for _, t := range teams {
		fmt.Fprintf(&b, "%-20s %-8d %s\n", t.Name, len(t.Members), t.Created.Format("2006-01-02 15:04"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func statusStyle(s taskboard.Status) lipgloss.Style {
	switch s {
	case taskboard.StatusPending:
		return pendingStyle
	case taskboard.StatusInProgress:
		return inProgressStyle
	case taskboard.StatusCompleted:
		return completedStyle
	default:
		return dimStyle
	}
}
