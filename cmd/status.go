package cmd

import (
	"github.com/spf13/cobra"

	"github.com/learninglab/bitlab/internal/api"
	"github.com/learninglab/bitlab/internal/curriculum"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show overall progress and what to learn next",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd, envOptions{})
			if err != nil {
				return err
			}
			defer env.Close()

			ctx := cmd.Context()
			summary := env.tracker.Summary(ctx)

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return writeJSON(cmd, summary)
			}

			if name := env.prefs.LearnerName(ctx); name != "" {
				printf(cmd, "Learner:   %s\n", name)
			}
			printf(cmd, "Progress:  %d%% (%d of %d modules)\n", summary.Percentage, summary.Completed, summary.Total)

			if completed := env.tracker.CompletedModules(ctx); len(completed) > 0 {
				printf(cmd, "\nCompleted:\n")
				for _, id := range completed {
					if m, ok := env.tracker.ModuleInfo(id); ok {
						printf(cmd, "  %s %s\n", curriculum.StateCompleted.Icon(), m.Title)
					}
				}
			}

			if len(summary.Next) > 0 {
				printf(cmd, "\nNext up:\n")
				for _, m := range summary.Next {
					printf(cmd, "  %s %s (%s)\n", curriculum.StateUnlocked.Icon(), m.Title, m.ID)
				}
			} else if summary.Total > 0 && summary.Completed == summary.Total {
				printf(cmd, "\nEvery module is complete. Well done!\n")
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print the summary as JSON")
	return cmd
}

// writeJSON prints v the way the local API would serve it.
func writeJSON(cmd *cobra.Command, v any) error {
	return api.EncodeJSON(cmd.OutOrStdout(), v)
}
