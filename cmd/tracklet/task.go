package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"tracklet/internal/track"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE:  runTaskList,
}

var taskShowCmd = &cobra.Command{
	Use:   "show [task]",
	Short: "Show a task's daily breakdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskShow,
}

var taskToggleCmd = &cobra.Command{
	Use:   "toggle [task]",
	Short: "Start the task, stopping whichever task is running; stop it if it is the one running",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskToggle,
}

var taskStartCmd = &cobra.Command{
	Use:   "start [task]",
	Short: "Start timing a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskStart,
}

var taskStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running task",
	Args:  cobra.NoArgs,
	RunE:  runTaskStop,
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete [task]",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDelete,
}

var taskEditCmd = &cobra.Command{
	Use:   "edit [task]",
	Short: "Edit a task's name and labels",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskEdit,
}

var (
	taskProject string
	taskTags    []string
	taskArea    string
	editName    string
)

func init() {
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskShowCmd, taskToggleCmd,
		taskStartCmd, taskStopCmd, taskDeleteCmd, taskEditCmd)

	for _, c := range []*cobra.Command{taskAddCmd, taskEditCmd} {
		c.Flags().StringVar(&taskProject, "project", "", "Project label")
		c.Flags().StringSliceVar(&taskTags, "tag", nil, "Tag (repeatable)")
		c.Flags().StringVar(&taskArea, "area", "", "Life-area label")
	}
	taskEditCmd.Flags().StringVar(&editName, "name", "", "New task name")
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	return withRegistry(func(reg *track.Registry) (bool, error) {
		task, err := reg.AddTask(args[0], taskProject, taskTags, taskArea)
		if err != nil {
			return false, err
		}
		fmt.Printf("Added task %s (%s)\n", task.Name(), shortID(task.ID()))
		return true, nil
	})
}

func runTaskList(cmd *cobra.Command, args []string) error {
	return withRegistry(func(reg *track.Registry) (bool, error) {
		views := reg.Snapshot()
		if len(views) == 0 {
			fmt.Println("No tasks yet")
			return false, nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPROJECT\tTAGS\tAREA\tTODAY\tTOTAL\t")
		for _, v := range views {
			marker := ""
			if v.Active {
				marker = "●"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				shortID(v.ID), v.Name, v.Project, strings.Join(v.Tags, ","),
				v.LifeArea, v.Today, v.Elapsed, marker)
		}
		w.Flush()
		return false, nil
	})
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	return withRegistry(func(reg *track.Registry) (bool, error) {
		task, err := reg.Resolve(args[0])
		if err != nil {
			return false, err
		}
		fmt.Printf("Name:      %s\n", task.Name())
		fmt.Printf("Project:   %s\n", orNone(task.Project()))
		fmt.Printf("Tags:      %s\n", orNone(strings.Join(task.Tags(), ", ")))
		fmt.Printf("Life area: %s\n", orNone(task.LifeArea()))
		fmt.Printf("Total:     %s\n", task.Elapsed(reg.Now()).FormatHMS())
		if task.Running() {
			fmt.Printf("Running since %s\n", task.StartedAt().Format("15:04:05"))
		}
		ledger := task.Ledger()
		if ledger.Len() > 0 {
			fmt.Println("\nDaily breakdown:")
			for _, day := range ledger.Days() {
				fmt.Printf("  %s  %s\n", day, ledger.Get(day).FormatHMS())
			}
		}
		return false, nil
	})
}

func runTaskToggle(cmd *cobra.Command, args []string) error {
	return withRegistry(func(reg *track.Registry) (bool, error) {
		task, err := reg.Resolve(args[0])
		if err != nil {
			return false, err
		}
		if err := reg.Toggle(task.ID()); err != nil {
			return false, err
		}
		if task.Running() {
			fmt.Printf("Started %s\n", task.Name())
		} else {
			fmt.Printf("Stopped %s at %s\n", task.Name(), task.Total().FormatHMS())
		}
		return true, nil
	})
}

func runTaskStart(cmd *cobra.Command, args []string) error {
	return withRegistry(func(reg *track.Registry) (bool, error) {
		task, err := reg.Resolve(args[0])
		if err != nil {
			return false, err
		}
		if task.Running() {
			fmt.Printf("%s is already running\n", task.Name())
			return false, nil
		}
		if err := reg.Toggle(task.ID()); err != nil {
			return false, err
		}
		fmt.Printf("Started %s\n", task.Name())
		return true, nil
	})
}

func runTaskStop(cmd *cobra.Command, args []string) error {
	return withRegistry(func(reg *track.Registry) (bool, error) {
		active := reg.Active()
		if active == nil {
			fmt.Println("No task is running")
			return false, nil
		}
		if err := reg.Toggle(active.ID()); err != nil {
			return false, err
		}
		fmt.Printf("Stopped %s at %s\n", active.Name(), active.Total().FormatHMS())
		return true, nil
	})
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	return withRegistry(func(reg *track.Registry) (bool, error) {
		task, err := reg.Resolve(args[0])
		if err != nil {
			return false, err
		}
		if err := reg.DeleteTask(task.ID()); err != nil {
			return false, err
		}
		fmt.Printf("Deleted %s\n", task.Name())
		return true, nil
	})
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	return withRegistry(func(reg *track.Registry) (bool, error) {
		task, err := reg.Resolve(args[0])
		if err != nil {
			return false, err
		}
		name := task.Name()
		if editName != "" {
			name = editName
		}
		project := task.Project()
		if cmd.Flags().Changed("project") {
			project = taskProject
		}
		tags := task.Tags()
		if cmd.Flags().Changed("tag") {
			tags = taskTags
		}
		area := task.LifeArea()
		if cmd.Flags().Changed("area") {
			area = taskArea
		}
		if err := reg.EditTask(task.ID(), name, project, tags, area); err != nil {
			return false, err
		}
		fmt.Printf("Updated %s\n", task.Name())
		return true, nil
	})
}

// --- Helpers ---

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
