package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/learninglab/bitlab/internal/prefs"
)

func newNameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "name [new-name]",
		Short: "Show or set the learner's name",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd, envOptions{})
			if err != nil {
				return err
			}
			defer env.Close()

			ctx := cmd.Context()
			forget, _ := cmd.Flags().GetBool("clear")
			switch {
			case forget:
				if err := env.prefs.ClearLearnerName(ctx); err != nil {
					return fmt.Errorf("clear name: %w", err)
				}
				printf(cmd, "Name cleared.\n")
			case len(args) > 0:
				err := env.prefs.SetLearnerName(ctx, strings.Join(args, " "))
				if errors.Is(err, prefs.ErrEmptyName) {
					return err
				}
				if err != nil {
					return fmt.Errorf("save name: %w", err)
				}
				printf(cmd, "Hello, %s!\n", env.prefs.LearnerName(ctx))
			default:
				name := env.prefs.LearnerName(ctx)
				if name == "" {
					printf(cmd, "No name set. Try: bitlab name Ada\n")
					return nil
				}
				printf(cmd, "%s\n", name)
			}
			return nil
		},
	}
	cmd.Flags().Bool("clear", false, "Forget the saved name")
	return cmd
}
