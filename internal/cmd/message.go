package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openclaw/agent-teams/internal/inbox"
	"github.com/openclaw/agent-teams/internal/render"
)

var (
	sendText      string
	sendType      string
	pollFormat    string
	broadcastText string
)

var sendCmd = &cobra.Command{
	Use:   "send [sender@team] [recipient@team]",
	Short: "Send a message to a teammate",
	Long: `Send a message from one member to another. Both identities must name
the same team. Delivery is durable: the recipient picks the message up
on their next poll, whether or not they are running right now.`,
	Args: cobra.ExactArgs(2),
	RunE: runSend,
}

var broadcastCmd = &cobra.Command{
	Use:   "broadcast [sender@team]",
	Short: "Send a message to every teammate",
	Long: `Deliver the same message to every member of the sender's team except
the sender. Each recipient receives an independent copy in their own
inbox.`,
	Args: cobra.ExactArgs(1),
	RunE: runBroadcast,
}

var pollCmd = &cobra.Command{
	Use:   "poll [member@team]",
	Short: "Drain unread messages and advance the cursor",
	Long: `Print messages that arrived since the last poll and mark them read.
Each message is delivered exactly once across repeated polls. The
default output is tagged text suitable for injecting into an agent's
context; --format json emits the raw messages instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runPoll,
}

var inboxCmd = &cobra.Command{
	Use:   "inbox [member@team]",
	Short: "Read the full inbox without advancing the cursor",
	Args:  cobra.ExactArgs(1),
	RunE:  runInbox,
}

func init() {
	sendCmd.Flags().StringVarP(&sendText, "text", "t", "", "message text")
	_ = sendCmd.MarkFlagRequired("text")
	sendCmd.Flags().StringVar(&sendType, "type", "message", "message type")

	broadcastCmd.Flags().StringVarP(&broadcastText, "text", "t", "", "message text")
	_ = broadcastCmd.MarkFlagRequired("text")

	pollCmd.Flags().StringVar(&pollFormat, "format", "xml", "output format: xml or json")

	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(broadcastCmd)
	rootCmd.AddCommand(pollCmd)
	rootCmd.AddCommand(inboxCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	coord, _, cleanup, err := newCoordinator()
	if err != nil {
		return err
	}
	defer cleanup()

	msg, err := coord.SendMessage(args[0], args[1], sendText, inbox.MessageType(sendType))
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(msg)
	}
	fmt.Printf("Sent %s to %s@%s\n", msg.Type, msg.To, msg.Team)
	return nil
}

func runBroadcast(cmd *cobra.Command, args []string) error {
	coord, _, cleanup, err := newCoordinator()
	if err != nil {
		return err
	}
	defer cleanup()

	msgs, err := coord.Broadcast(args[0], broadcastText, inbox.TypeBroadcast)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(msgs)
	}
	fmt.Printf("Broadcast delivered to %d teammates\n", len(msgs))
	return nil
}

func runPoll(cmd *cobra.Command, args []string) error {
	if pollFormat != "xml" && pollFormat != "json" {
		return fmt.Errorf("invalid format %q, expected xml or json", pollFormat)
	}

	coord, _, cleanup, err := newCoordinator()
	if err != nil {
		return err
	}
	defer cleanup()

	msgs, err := coord.Poll(args[0])
	if err != nil {
		return err
	}
	if pollFormat == "json" || jsonOutput {
		out, err := render.MessagesJSON(msgs)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}
	if out := render.Messages(msgs); out != "" {
		fmt.Println(out)
	}
	return nil
}

func runInbox(cmd *cobra.Command, args []string) error {
	coord, _, cleanup, err := newCoordinator()
	if err != nil {
		return err
	}
	defer cleanup()

	msgs, err := coord.Peek(args[0])
	if err != nil {
		return err
	}
	out, err := render.MessagesJSON(msgs)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
