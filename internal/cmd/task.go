package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/openclaw/agent-teams/internal/render"
	"github.com/openclaw/agent-teams/internal/taskboard"
)

var (
	taskSubject     string
	taskDescription string
	taskAssignTo    string
	taskAssignBy    string
	taskResult      string
	taskStatus      string
)

var createTaskCmd = &cobra.Command{
	Use:   "create-task [team]",
	Short: "Add a task to the team's board",
	Long: `Create a pending task on the team's board. When both --assign-to and
--assign-by are given, the assignee is notified with a task_assignment
message on their next poll. Assignment is advisory; the task still has
to be claimed before work starts.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreateTask,
}

var claimTaskCmd = &cobra.Command{
	Use:   "claim-task [team] [task-id] [member]",
	Short: "Claim a pending task",
	Long: `Claim a pending task for the given member, moving it to in_progress.
Only one claimant ever wins; claiming an already-claimed or completed
task fails.`,
	Args: cobra.ExactArgs(3),
	RunE: runClaimTask,
}

var completeTaskCmd = &cobra.Command{
	Use:   "complete-task [team] [task-id] [member]",
	Short: "Mark an in_progress task completed",
	Args:  cobra.ExactArgs(3),
	RunE:  runCompleteTask,
}

var listTasksCmd = &cobra.Command{
	Use:   "list-tasks [team]",
	Short: "List the team's tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runListTasks,
}

func init() {
	createTaskCmd.Flags().StringVarP(&taskSubject, "subject", "s", "", "task subject")
	_ = createTaskCmd.MarkFlagRequired("subject")
	createTaskCmd.Flags().StringVarP(&taskDescription, "description", "d", "", "task description")
	createTaskCmd.Flags().StringVar(&taskAssignTo, "assign-to", "", "member to assign the task to")
	createTaskCmd.Flags().StringVar(&taskAssignBy, "assign-by", "", "member making the assignment")

	completeTaskCmd.Flags().StringVarP(&taskResult, "result", "r", "", "result summary")

	listTasksCmd.Flags().StringVar(&taskStatus, "status", "", "filter by status: pending, in_progress, or completed")

	rootCmd.AddCommand(createTaskCmd)
	rootCmd.AddCommand(claimTaskCmd)
	rootCmd.AddCommand(completeTaskCmd)
	rootCmd.AddCommand(listTasksCmd)
}

func runCreateTask(cmd *cobra.Command, args []string) error {
	coord, _, cleanup, err := newCoordinator()
	if err != nil {
		return err
	}
	defer cleanup()

	task, err := coord.CreateTask(args[0], taskSubject, taskDescription, taskAssignTo, taskAssignBy)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(task)
	}
	fmt.Println(render.Task(task))
	return nil
}

func runClaimTask(cmd *cobra.Command, args []string) error {
	taskID, err := parseTaskID(args[1])
	if err != nil {
		return err
	}
	coord, _, cleanup, err := newCoordinator()
	if err != nil {
		return err
	}
	defer cleanup()

	task, err := coord.ClaimTask(args[0], taskID, args[2])
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(task)
	}
	fmt.Println(render.Task(task))
	return nil
}

func runCompleteTask(cmd *cobra.Command, args []string) error {
	taskID, err := parseTaskID(args[1])
	if err != nil {
		return err
	}
	coord, _, cleanup, err := newCoordinator()
	if err != nil {
		return err
	}
	defer cleanup()

	task, err := coord.CompleteTask(args[0], taskID, args[2], taskResult)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(task)
	}
	fmt.Println(render.Task(task))
	return nil
}

func runListTasks(cmd *cobra.Command, args []string) error {
	coord, _, cleanup, err := newCoordinator()
	if err != nil {
		return err
	}
	defer cleanup()

	tasks, err := coord.ListTasks(args[0], taskboard.Status(taskStatus))
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(tasks)
	}
	fmt.Println(render.Tasks(tasks))
	return nil
}

func parseTaskID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}
