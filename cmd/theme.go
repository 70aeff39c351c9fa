package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light]",
		Short:     "Show or set the colour theme",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"dark", "light"},
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd, envOptions{})
			if err != nil {
				return err
			}
			defer env.Close()

			ctx := cmd.Context()
			if len(args) == 1 {
				if err := env.prefs.SetDarkMode(ctx, args[0] == "dark"); err != nil {
					return fmt.Errorf("save theme: %w", err)
				}
			}

			theme := "light"
			if env.prefs.DarkMode(ctx) {
				theme = "dark"
			}
			printf(cmd, "%s\n", theme)
			return nil
		},
	}
}
