package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Chitrak-Aseri/Agents/internal/config"
	"github.com/Chitrak-Aseri/Agents/internal/logging"
	"github.com/Chitrak-Aseri/Agents/internal/providers"
	"github.com/Chitrak-Aseri/Agents/internal/server"
)

var flagAddr string

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve comment reviews over HTTP",
		Long:  "Listen for POST " + server.GenerateRoute + " requests and answer each with a validated comment review.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, env, err := loadConfig(config.CommentReviewFile, nil)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				exitCode = ExitUsageError
				return nil
			}

			srv := server.New(server.Options{
				Env: env,
				Factory: func(pc providers.Config) (providers.Provider, error) {
					return newProvider(pc, env)
				},
				Observer:      logging.NewZerolog(log.Logger),
				RedactSecrets: cfg.Privacy.RedactSecrets,
			})

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := srv.Run(ctx, flagAddr); err != nil {
				fail(cmd.ErrOrStderr(), err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flagAddr, "addr", ":8000", "Listen address")
	return cmd
}
