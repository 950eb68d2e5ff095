package keys

import (
	"fmt"
	"time"

	"github.com/SafeMPC/pox-signer/internal/auth"
	"github.com/SafeMPC/pox-signer/internal/config"
	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	subjectFlag = "subject"
	ttlFlag     = "ttl"
)

func newToken() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issues a bearer token for the signature routes",
		Long: `Issues an HS256 token carrying the signatures:create scope,
signed with AUTH_JWT_SECRET and issued by AUTH_JWT_ISSUER.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			subject, _ := cmd.Flags().GetString(subjectFlag)
			ttl, _ := cmd.Flags().GetDuration(ttlFlag)

			cfg := config.DefaultServiceConfigFromEnv()
			if cfg.Auth.JWTSecret == "" {
				return errors.New("AUTH_JWT_SECRET is not set")
			}

			token, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, time2.DefaultClock).
				Issue(subject, ttl, auth.ScopeSign)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().String(subjectFlag, "pool-operator", "Token subject")
	cmd.Flags().Duration(ttlFlag, 24*time.Hour, "Token lifetime")

	return cmd
}
