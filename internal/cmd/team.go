package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openclaw/agent-teams/internal/render"
)

var createMembers []string

var createCmd = &cobra.Command{
	Use:   "create [team]",
	Short: "Create a team or merge members into an existing one",
	Long: `Create a named team with an optional initial member list. Creating a
team that already exists merges the given members into it; members are
never removed by a create.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all teams",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var infoCmd = &cobra.Command{
	Use:   "info [team]",
	Short: "Show a team's members",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

var addMemberCmd = &cobra.Command{
	Use:   "add-member [team] [member]",
	Short: "Add a member to a team",
	Args:  cobra.ExactArgs(2),
	RunE:  runAddMember,
}

var removeMemberCmd = &cobra.Command{
	Use:   "remove-member [team] [member]",
	Short: "Remove a member from a team",
	Long: `Remove a member from a team. The member's inbox and read cursor are
deleted along with the membership.`,
	Args: cobra.ExactArgs(2),
	RunE: runRemoveMember,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [team]",
	Short: "Delete a team and all of its data",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	createCmd.Flags().StringSliceVar(&createMembers, "members", nil, "initial members")
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(addMemberCmd)
	rootCmd.AddCommand(removeMemberCmd)
	rootCmd.AddCommand(deleteCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	coord, _, cleanup, err := newCoordinator()
	if err != nil {
		return err
	}
	defer cleanup()

	t, err := coord.CreateTeam(args[0], createMembers)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(t)
	}
	fmt.Println(render.Team(t))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	coord, _, cleanup, err := newCoordinator()
	if err != nil {
		return err
	}
	defer cleanup()

	teams, err := coord.Teams().List()
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(teams)
	}
	fmt.Println(render.TeamList(teams))
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	coord, _, cleanup, err := newCoordinator()
	if err != nil {
		return err
	}
	defer cleanup()

	t, err := coord.Teams().Info(args[0])
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(t)
	}
	fmt.Println(render.Team(t))
	return nil
}

func runAddMember(cmd *cobra.Command, args []string) error {
	coord, _, cleanup, err := newCoordinator()
	if err != nil {
		return err
	}
	defer cleanup()

	t, err := coord.Teams().AddMember(args[0], args[1])
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(t)
	}
	fmt.Println(render.Team(t))
	return nil
}

func runRemoveMember(cmd *cobra.Command, args []string) error {
	coord, _, cleanup, err := newCoordinator()
	if err != nil {
		return err
	}
	defer cleanup()

	t, err := coord.Teams().RemoveMember(args[0], args[1])
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(t)
	}
	fmt.Println(render.Team(t))
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	coord, _, cleanup, err := newCoordinator()
	if err != nil {
		return err
	}
	defer cleanup()

	existed, err := coord.Teams().Delete(args[0])
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(map[string]bool{"deleted": existed})
	}
	if existed {
		fmt.Printf("Deleted team %s\n", args[0])
	} else {
		fmt.Printf("Team %s does not exist\n", args[0])
	}
	return nil
}

func printJSON(v any) error {
	out, err := render.JSON(v)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
