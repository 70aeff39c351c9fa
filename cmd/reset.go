package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear every completed module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				printf(cmd, "This clears all learning progress. Type \"yes\" to continue: ")
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if strings.TrimSpace(strings.ToLower(answer)) != "yes" {
					printf(cmd, "Reset cancelled.\n")
					return nil
				}
			}

			env, err := openEnv(cmd, envOptions{})
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.tracker.ResetProgress(cmd.Context()); err != nil {
				return fmt.Errorf("reset progress: %w", err)
			}
			printf(cmd, "Progress reset. Progress: %d%%\n", env.tracker.ProgressPercentage(cmd.Context()))
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
