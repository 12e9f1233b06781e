package render

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/openclaw/agent-teams/internal/inbox"
	"github.com/openclaw/agent-teams/internal/taskboard"
	"github.com/openclaw/agent-teams/internal/team"
)

func TestMessages_TaggedText(t *testing.T) {
	ts := time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC)
	msgs := []inbox.Message{
		{From: "lead", To: "worker", Team: "ops", Type: inbox.TypeMessage, Text: "status?", Timestamp: ts},
	}

	got := Messages(msgs)
	want := "<teammate-message from=\"lead\" team=\"ops\" type=\"message\" timestamp=\"2026-08-01T12:30:00Z\">\nstatus?\n</teammate-message>"
	if got != want {
		t.Errorf("Messages =\n%s\nwant\n%s", got, want)
	}
}

func TestMessages_MultipleJoinedByNewline(t *testing.T) {
	ts := time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC)
	msgs := []inbox.Message{
		{From: "a", Team: "ops", Type: inbox.TypeMessage, Text: "one", Timestamp: ts},
		{From: "b", Team: "ops", Type: inbox.TypeBroadcast, Text: "two", Timestamp: ts},
	}

	got := Messages(msgs)
	if strings.Count(got, "<teammate-message") != 2 {
		t.Errorf("expected 2 message blocks:\n%s", got)
	}
	if !strings.Contains(got, "</teammate-message>\n<teammate-message") {
		t.Errorf("blocks not newline-joined:\n%s", got)
	}
}

func TestMessages_PreservesTextVerbatim(t *testing.T) {
	msgs := []inbox.Message{
		{From: "a", Team: "ops", Type: inbox.TypeMessage, Text: "first line\nsecond <b>bold</b>"},
	}
	got := Messages(msgs)
	if !strings.Contains(got, "first line\nsecond <b>bold</b>") {
		t.Errorf("text mangled:\n%s", got)
	}
}

func TestMessages_Empty(t *testing.T) {
	if got := Messages(nil); got != "" {
		t.Errorf("Messages(nil) = %q, want empty", got)
	}
}

func TestMessagesJSON(t *testing.T) {
	got, err := MessagesJSON(nil)
	if err != nil {
		t.Fatalf("MessagesJSON: %v", err)
	}
	if got != "[]" {
		t.Errorf("empty = %q, want []", got)
	}

	msgs := []inbox.Message{{ID: "x", From: "a", To: "b", Team: "ops", Type: inbox.TypeMessage, Text: "hi"}}
	got, err = MessagesJSON(msgs)
	if err != nil {
		t.Fatalf("MessagesJSON: %v", err)
	}
	var decoded []inbox.Message
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Text != "hi" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestJSON(t *testing.T) {
	got, err := JSON(map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.Contains(got, "\"a\": 1") {
		t.Errorf("JSON = %q", got)
	}
}

func TestTasks(t *testing.T) {
	if got := Tasks(nil); !strings.Contains(got, "No tasks") {
		t.Errorf("empty = %q", got)
	}

	tasks := []taskboard.Task{
		{ID: 1, Subject: "build x", Status: taskboard.StatusPending},
		{ID: 2, Subject: "ship y", Status: taskboard.StatusInProgress, ClaimedBy: "worker"},
	}
	got := Tasks(tasks)
	for _, want := range []string{"build x", "ship y", "worker", "pending", "in_progress"} {
		if !strings.Contains(got, want) {
			t.Errorf("Tasks missing %q:\n%s", want, got)
		}
	}
}

func TestTask_Detail(t *testing.T) {
	task := &taskboard.Task{
		ID: 3, Subject: "build x", Description: "all of it",
		Status: taskboard.StatusCompleted, ClaimedBy: "worker", Result: "done",
		AssignedTo: "worker", AssignedBy: "lead",
	}
	got := Task(task)
	for _, want := range []string{"#3", "build x", "all of it", "claimed by worker", "assigned to worker by lead", "result: done"} {
		if !strings.Contains(got, want) {
			t.Errorf("Task missing %q:\n%s", want, got)
		}
	}
}

func TestTeamRendering(t *testing.T) {
	ops := &team.Team{Name: "ops", Members: []string{"lead", "worker"}, Created: time.Now()}

	got := Team(ops)
	if !strings.Contains(got, "ops") || !strings.Contains(got, "lead") || !strings.Contains(got, "worker") {
		t.Errorf("Team = %q", got)
	}

	if got := TeamList(nil); !strings.Contains(got, "No teams") {
		t.Errorf("empty list = %q", got)
	}
	got = TeamList([]*team.Team{ops})
	if !strings.Contains(got, "ops") || !strings.Contains(got, "2") {
		t.Errorf("TeamList = %q", got)
	}
}
