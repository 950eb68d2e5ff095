package probe

import (
	"github.com/SafeMPC/pox-signer/internal/config"
	"github.com/spf13/cobra"
)

func newLiveness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Runs liveness probes",
		Long: `Checks that the server answers on the healthy endpoint.

Exits with a non-zero code if the probe fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				return err
			}

			cfg := config.DefaultServiceConfigFromEnv()
			return probeURL(cmd.Context(), cfg.Management.LivenessURL, cfg.Management.ProbeTimeout, cmd.OutOrStdout(), verbose)
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}
