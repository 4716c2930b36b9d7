package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/smartmate/internal/app"
)

func (c *CLI) newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive task board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outputMode, _ := cmd.Flags().GetString("output")
			ci, _ := cmd.Flags().GetBool("ci")

			// If --ci is set, override output to "linear"
			if ci {
				outputMode = "linear"
			}

			return c.app.Board(cmd.Context(), app.BoardOptions{OutputMode: outputMode})
		},
	}
	cmd.Flags().Bool("ci", false, "Print the task list instead (shorthand for --output=linear)")
	return cmd
}

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the in-memory reference API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			return c.app.Serve(cmd.Context(), addr)
		},
	}
	cmd.Flags().String("addr", "localhost:8080", "Listen address")
	return cmd
}
