package probe

import (
	"github.com/SafeMPC/pox-signer/internal/config"
	"github.com/spf13/cobra"
)

func newReadiness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Runs readiness probes",
		Long: `Checks that the server is ready to issue signatures.
The ready endpoint answers 503 while no signer key is configured.

Exits with a non-zero code if the probe fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				return err
			}

			cfg := config.DefaultServiceConfigFromEnv()
			return probeURL(cmd.Context(), cfg.Management.ReadinessURL, cfg.Management.ProbeTimeout, cmd.OutOrStdout(), verbose)
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}
