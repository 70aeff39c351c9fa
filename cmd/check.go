package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/learninglab/bitlab/internal/curriculum"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <module-id>",
		Short: "Check whether a module's prerequisites are completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd, envOptions{})
			if err != nil {
				return err
			}
			defer env.Close()

			ctx := cmd.Context()
			m, ok := env.tracker.ModuleInfo(args[0])
			if !ok {
				return fmt.Errorf("unknown module %q (see bitlab modules)", args[0])
			}

			if env.tracker.HasCompletedPrerequisites(ctx, m.ID) {
				printf(cmd, "%s %s is ready: every prerequisite is completed.\n",
					curriculum.StateUnlocked.Icon(), m.Title)
				return nil
			}

			printf(cmd, "%s %s works best after completing these modules first:\n",
				curriculum.StateLocked.Icon(), m.Title)
			for _, title := range env.tracker.MissingPrerequisites(ctx, m.ID) {
				printf(cmd, "  ✗ %s\n", title)
			}
			return nil
		},
	}
}
