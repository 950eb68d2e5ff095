package keys

import (
	"encoding/json"
	"fmt"

	"github.com/SafeMPC/pox-signer/internal/pox"
	"github.com/SafeMPC/pox-signer/internal/stacks"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const networkFlag = "network"

type generatedKey struct {
	PrivateKey        string `json:"privateKey"`
	PublicKey         string `json:"publicKey"`
	Network           string `json:"network"`
	BitcoinPoxAddress string `json:"bitcoinPoxAddress"`
}

func newGen() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generates a signer key",
		Long: `Generates a new compressed secp256k1 signer key.
The private key is printed in the SIGNER_PRV_KEY format (with the 01 suffix)
together with a P2PKH reward address derived from the same key.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			networkName, err := cmd.Flags().GetString(networkFlag)
			if err != nil {
				return err
			}

			network, err := stacks.NetworkByName(networkName, "")
			if err != nil {
				return err
			}

			key, err := generate(network)
			if err != nil {
				return err
			}

			b, err := json.MarshalIndent(key, "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}

	cmd.Flags().String(networkFlag, "mainnet", "Network used for the sample reward address")

	return cmd
}

func generate(network stacks.Network) (*generatedKey, error) {
	privKey, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate private key")
	}

	signer := pox.NewKeySigner(privKey, true)

	address, err := pox.AddressFromPubKey(signer.PublicKey(), network.BitcoinParams)
	if err != nil {
		return nil, err
	}

	return &generatedKey{
		PrivateKey:        signer.PrivateKeyHex(),
		PublicKey:         signer.PublicKeyHex(),
		Network:           network.Name,
		BitcoinPoxAddress: address,
	}, nil
}
