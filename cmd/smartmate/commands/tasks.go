package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/smartmate/internal/app"
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/zerr"
)

var errInvalidStatus = zerr.New("invalid status, expected 'all', 'open' or 'done'")

func (c *CLI) newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and edit tasks",
	}

	cmd.AddCommand(c.newTasksListCmd())
	cmd.AddCommand(c.newTasksAddCmd())
	cmd.AddCommand(c.newTasksDoneCmd())
	cmd.AddCommand(c.newTasksEditCmd())
	cmd.AddCommand(c.newTasksRmCmd())
	return cmd
}

func (c *CLI) newTasksListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, _ := cmd.Flags().GetString("status")
			priority, _ := cmd.Flags().GetString("priority")

			opts := app.ListOptions{Filter: app.TaskFilter(status)}
			switch opts.Filter {
			case app.FilterAll, app.FilterOpen, app.FilterDone:
			default:
				return zerr.With(zerr.Wrap(errInvalidStatus, "parse status"), "value", status)
			}
			if priority != "" {
				p, err := domain.ParsePriority(priority)
				if err != nil {
					return err
				}
				opts.Priority = p
			}

			return c.app.ListTasks(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringP("status", "s", "all", "Filter by status: all, open, or done")
	cmd.Flags().StringP("priority", "p", "", "Filter by priority: high, medium, or low")
	return cmd
}

func (c *CLI) newTasksAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			priority, _ := cmd.Flags().GetString("priority")
			due, _ := cmd.Flags().GetString("due")

			in := domain.TaskInput{Title: strings.Join(args, " ")}
			p, err := domain.ParsePriority(priority)
			if err != nil {
				return err
			}
			in.Priority = p
			if due != "" {
				d, err := domain.ParseDueDate(due)
				if err != nil {
					return err
				}
				in.DueDate = &d
			}

			_, err = c.app.AddTask(cmd.Context(), in)
			return err
		},
	}
	cmd.Flags().StringP("priority", "p", string(domain.PriorityMedium), "Priority: high, medium, or low")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	return cmd
}

func (c *CLI) newTasksDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.app.CompleteTask(cmd.Context(), args[0])
			return err
		},
	}
}

func (c *CLI) newTasksEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := patchFromFlags(cmd)
			if err != nil {
				return err
			}
			_, err = c.app.UpdateTask(cmd.Context(), args[0], patch)
			return err
		},
	}
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().StringP("priority", "p", "", "New priority: high, medium, or low")
	cmd.Flags().String("due", "", "New due date (YYYY-MM-DD)")
	cmd.Flags().Bool("done", false, "Set the completed flag")
	return cmd
}

// patchFromFlags builds a patch from the flags that were set explicitly.
func patchFromFlags(cmd *cobra.Command) (domain.TaskPatch, error) {
	var patch domain.TaskPatch
	flags := cmd.Flags()

	if flags.Changed("title") {
		title, _ := flags.GetString("title")
		patch.Title = &title
	}
	if flags.Changed("priority") {
		raw, _ := flags.GetString("priority")
		p, err := domain.ParsePriority(raw)
		if err != nil {
			return patch, err
		}
		patch.Priority = &p
	}
	if flags.Changed("due") {
		raw, _ := flags.GetString("due")
		d, err := domain.ParseDueDate(raw)
		if err != nil {
			return patch, err
		}
		patch.DueDate = &d
	}
	if flags.Changed("done") {
		done, _ := flags.GetBool("done")
		patch.Completed = &done
	}
	return patch, nil
}

func (c *CLI) newTasksRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id...>",
		Aliases: []string{"delete"},
		Short:   "Delete tasks",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs error
			for _, id := range args {
				errs = errors.Join(errs, c.app.DeleteTask(cmd.Context(), id))
			}
			return errs
		},
	}
}
