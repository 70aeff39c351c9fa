package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/learninglab/bitlab/internal/app"
	"github.com/learninglab/bitlab/internal/logger"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bitlab",
		Short: "Computer data & memory learning lab for kids",
		Long: "BitLab: a learning journey through binary, hex, ASCII, memory, logic gates " +
			"and the internet. Run without a command to open the terminal app.",
		SilenceUsage: true,
		RunE:         runApp,
	}

	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides BITLAB_DB env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a YAML module catalogue (overrides BITLAB_CATALOG env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL env var)")
	rootCmd.PersistentFlags().Bool("ephemeral", false, "Keep progress in memory only; nothing is saved")
	rootCmd.Flags().Bool("skip-welcome", false, "Start on the learning journey instead of the splash screen")

	rootCmd.AddCommand(
		newModulesCmd(),
		newStatusCmd(),
		newCheckCmd(),
		newCompleteCmd(),
		newResetCmd(),
		newServeCmd(),
		newNameCmd(),
		newThemeCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command until it returns or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

// runApp opens the learner's data and launches the TUI.
func runApp(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd, envOptions{logFile: true})
	if err != nil {
		return err
	}
	defer env.Close()

	skip, _ := cmd.Flags().GetBool("skip-welcome")
	return app.Run(cmd.Context(), app.Options{
		Tracker:     env.tracker,
		Prefs:       env.prefs,
		Logger:      env.logger,
		SkipWelcome: skip,
	})
}

// logFormatFor picks JSON logs for the server and console logs elsewhere.
func logFormatFor(cmd *cobra.Command) logger.Format {
	if cmd.Name() == "serve" {
		return logger.FormatJSON
	}
	return logger.FormatConsole
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
