package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/smartmate/internal/core/domain"
)

func (c *CLI) newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the color theme",
	}

	cmd.AddCommand(c.newThemeGetCmd())
	cmd.AddCommand(c.newThemeSetCmd())
	cmd.AddCommand(c.newThemeToggleCmd())

	return cmd
}

func (c *CLI) newThemeGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the stored theme",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			theme := c.app.Theme()
			if theme == domain.ThemeSystem {
				_, _ = fmt.Fprintf(out, "%s (%s)\n", theme, c.app.AppliedTheme())
				return
			}
			_, _ = fmt.Fprintln(out, theme)
		},
	}
}

func (c *CLI) newThemeSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "set <light|dark|system>",
		Short:     "Store a theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.ThemeLight), string(domain.ThemeDark), string(domain.ThemeSystem)},
		RunE: func(cmd *cobra.Command, args []string) error {
			theme, err := domain.ParseTheme(args[0])
			if err != nil {
				return err
			}
			if err := c.app.SetTheme(theme); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), theme)
			return nil
		},
	}
}

func (c *CLI) newThemeToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			theme, err := c.app.ToggleTheme()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), theme)
			return nil
		},
	}
}
