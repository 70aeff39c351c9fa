package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func newModulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List every module with its state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd, envOptions{})
			if err != nil {
				return err
			}
			defer env.Close()

			journey := env.tracker.Journey(cmd.Context())

			// Header.
			printf(cmd, "%3s  %-10s  %-20s  %-10s  %s\n", "#", "ID", "Title", "State", "Prerequisites")
			printf(cmd, "%s\n", strings.Repeat("─", 72))

			for _, st := range journey {
				prereqs := strings.Join(st.Module.Prerequisites, ", ")
				if prereqs == "" {
					prereqs = "-"
				}
				printf(cmd, "%3d  %-10s  %-20s  %s %-8s  %s\n",
					st.Module.Order, st.Module.ID, st.Module.Title,
					st.State.Icon(), st.State.Label(), prereqs)
			}

			printf(cmd, "\n%d modules\n", len(journey))
			return nil
		},
	}
}
