package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/learninglab/bitlab/internal/progress"
)

func newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <module-id>",
		Short: "Mark a module as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd, envOptions{})
			if err != nil {
				return err
			}
			defer env.Close()

			ctx := cmd.Context()
			if err := env.tracker.MarkModuleComplete(ctx, args[0]); err != nil {
				if errors.Is(err, progress.ErrUnknownModule) {
					return fmt.Errorf("unknown module %q (see bitlab modules)", args[0])
				}
				return fmt.Errorf("save progress: %w", err)
			}

			title := env.tracker.Registry().Title(args[0])
			printf(cmd, "Completed %s. Progress: %d%%\n", title, env.tracker.ProgressPercentage(ctx))
			return nil
		},
	}
}
