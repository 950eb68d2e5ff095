package cmd

import (
	"fmt"
	"os"

	"github.com/SafeMPC/pox-signer/cmd/env"
	"github.com/SafeMPC/pox-signer/cmd/keys"
	"github.com/SafeMPC/pox-signer/cmd/probe"
	"github.com/SafeMPC/pox-signer/cmd/server"
	"github.com/SafeMPC/pox-signer/cmd/sign"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"
)

const envFileFlag = "env-file"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "app",
	Short: "pox-signer",
	Long: `pox-signer issues PoX-4 signer key signatures
for stacking and aggregation requests.

Requires configuration through ENV.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		envFile, err := cmd.Flags().GetString(envFileFlag)
		if err != nil {
			return err
		}
		return loadEnvFile(envFile)
	},
}

// loadEnvFile loads variables from file without overriding the real environment.
// A missing default .env is not an error.
func loadEnvFile(file string) error {
	if err := gotenv.Load(file); err != nil {
		if os.IsNotExist(err) && file == ".env" {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", file, err)
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String(envFileFlag, ".env", "File with environment variables to load (does not override the environment)")

	rootCmd.AddCommand(
		server.New(),
		sign.New(),
		keys.New(),
		env.New(),
		probe.New(),
	)
}
