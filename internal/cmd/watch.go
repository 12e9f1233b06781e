package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/openclaw/agent-teams/internal/identity"
	"github.com/openclaw/agent-teams/internal/inbox"
	"github.com/openclaw/agent-teams/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch [member@team]",
	Short: "Watch an inbox interactively",
	Long: `Open an interactive view of the member's inbox that polls for new
messages and streams them as they arrive. Messages shown here are
marked read, exactly as if polled. Press q to quit.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	id, err := identity.Parse(args[0])
	if err != nil {
		return err
	}

	coord, cfg, cleanup, err := newCoordinator()
	if err != nil {
		return err
	}
	defer cleanup()

	p := tea.NewProgram(tui.NewWatch(id), tea.WithAltScreen())

	// The watcher polls in its own goroutine and pushes each delivered
	// message into the running program.
	cancel, err := coord.Watch(args[0], cfg.Watch.PollInterval(), func(m inbox.Message) {
		p.Send(tui.MessageMsg(m))
	})
	if err != nil {
		return err
	}
	defer cancel()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
