package server

import (
	"context"

	"github.com/SafeMPC/pox-signer/internal/api"
	"github.com/SafeMPC/pox-signer/internal/config"
	"github.com/SafeMPC/pox-signer/internal/util/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the signer server",
		Long: `Starts the HTTP server serving POST /get-signature.

Requires configuration through ENV.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	config := config.DefaultServiceConfigFromEnv()

	return command.WithServer(ctx, config, func(ctx context.Context, s *api.Server) error {
		log.Info().
			Str("listen_address", s.Config.Echo.ListenAddress).
			Str("network", s.Network.Name).
			Bool("signer_configured", s.SignerReady()).
			Msg("Starting server")

		return command.RunServer(ctx, s)
	})
}
