package cmd

import (
	"github.com/spf13/cobra"

	"github.com/learninglab/bitlab/internal/api"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local JSON API for the web app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd, envOptions{})
			if err != nil {
				return err
			}
			defer env.Close()

			addr := env.cfg.Server.Addr
			if a, _ := cmd.Flags().GetString("addr"); a != "" {
				addr = a
			}

			handler := api.NewRouter(api.Options{
				Progress:       env.tracker,
				Prefs:          env.prefs,
				Logger:         env.logger,
				AllowedOrigins: env.cfg.CORS.AllowedOrigins,
				RateLimit:      env.cfg.Server.RateLimit,
			})
			return api.Serve(cmd.Context(), addr, handler, env.logger)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides BITLAB_ADDR env var)")
	return cmd
}
