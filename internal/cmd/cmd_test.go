package cmd

import (
	"testing"
)

func TestRootCommand(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd is nil")
	}
	if rootCmd.Use != "agent-teams" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "agent-teams")
	}

	// Check for expected subcommands (compare by Name(), not Use which includes args)
	expectedCmds := []string{
		"create", "delete", "list", "info", "add-member", "remove-member",
		"send", "broadcast", "poll", "inbox",
		"create-task", "claim-task", "complete-task", "list-tasks",
		"watch",
	}
	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}

	for _, expected := range expectedCmds {
		if !cmdMap[expected] {
			t.Errorf("expected subcommand %q not found", expected)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	if rootCmd.PersistentFlags().Lookup("json") == nil {
		t.Error("missing --json flag")
	}
	if rootCmd.PersistentFlags().Lookup("config") == nil {
		t.Error("missing --config flag")
	}
}

func TestRequiredFlags(t *testing.T) {
	cases := []struct {
		cmdName string
		flag    string
	}{
		{"send", "text"},
		{"broadcast", "text"},
		{"create-task", "subject"},
	}
	for _, tc := range cases {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() != tc.cmdName {
				continue
			}
			found = true
			if cmd.Flags().Lookup(tc.flag) == nil {
				t.Errorf("%s: missing --%s flag", tc.cmdName, tc.flag)
			}
		}
		if !found {
			t.Errorf("command %q not registered", tc.cmdName)
		}
	}
}

func TestParseTaskID(t *testing.T) {
	if id, err := parseTaskID("7"); err != nil || id != 7 {
		t.Errorf("parseTaskID(7) = %d, %v", id, err)
	}
	if _, err := parseTaskID("seven"); err == nil {
		t.Error("expected error for non-numeric id")
	}
}
