// Package commands implements the CLI commands for smartmate.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/smartmate/internal/app"
	"go.trai.ch/smartmate/internal/build"
	"go.trai.ch/smartmate/internal/core/domain"
)

// CLI represents the command line interface for smartmate.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	ListTasks(ctx context.Context, opts app.ListOptions) error
	AddTask(ctx context.Context, in domain.TaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error)
	CompleteTask(ctx context.Context, id string) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ListUsers(ctx context.Context) error
	Theme() domain.Theme
	AppliedTheme() domain.Theme
	SetTheme(theme domain.Theme) error
	ToggleTheme() (domain.Theme, error)
	Board(ctx context.Context, opts app.BoardOptions) error
	Serve(ctx context.Context, addr string) error
	SetJSONLogs(enable bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "smartmate",
		Short:         "Tasks and users from the SmartMate API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("output", "o", "auto", "Output mode: auto, tui, or linear")
	rootCmd.PersistentFlags().Bool("json", false, "Write logs as JSON lines")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if jsonLogs, _ := cmd.Flags().GetBool("json"); jsonLogs {
			c.app.SetJSONLogs(true)
		}
	}

	rootCmd.AddCommand(c.newTasksCmd())
	rootCmd.AddCommand(c.newUsersCmd())
	rootCmd.AddCommand(c.newThemeCmd())
	rootCmd.AddCommand(c.newBoardCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
