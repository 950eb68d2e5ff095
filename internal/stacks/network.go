package stacks

import (
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/pkg/errors"
)

const (
	ChainIDMainnet uint32 = 0x00000001
	ChainIDTestnet uint32 = 0x80000000
)

var ErrUnknownNetwork = errors.New("unknown network")

// Network 描述签名服务连接的 Stacks 网络
type Network struct {
	Name    string
	ChainID uint32
	NodeURL string
	// BitcoinParams is used to derive sample payout addresses for the network.
	BitcoinParams *chaincfg.Params
}

var (
	Mainnet = Network{
		Name:          "mainnet",
		ChainID:       ChainIDMainnet,
		NodeURL:       "https://api.hiro.so",
		BitcoinParams: &chaincfg.MainNetParams,
	}
	Testnet = Network{
		Name:          "testnet",
		ChainID:       ChainIDTestnet,
		NodeURL:       "https://api.testnet.hiro.so",
		BitcoinParams: &chaincfg.TestNet3Params,
	}
	NakamotoTestnet = Network{
		Name:          "nakamoto-testnet",
		ChainID:       ChainIDTestnet,
		NodeURL:       "https://api.nakamoto.testnet.hiro.so",
		BitcoinParams: &chaincfg.TestNet3Params,
	}
)

// Networks lists the known networks by name.
var Networks = map[string]Network{
	Mainnet.Name:         Mainnet,
	Testnet.Name:         Testnet,
	NakamotoTestnet.Name: NakamotoTestnet,
}

// NetworkByName resolves a network name (case-insensitive). An empty nodeURL keeps the default node.
func NetworkByName(name string, nodeURL string) (Network, error) {
	n, ok := Networks[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Network{}, errors.Wrapf(ErrUnknownNetwork, "%q", name)
	}
	if nodeURL != "" {
		n.NodeURL = strings.TrimRight(nodeURL, "/")
	}
	return n, nil
}

// NetworkNames returns the sorted list of supported network names.
func NetworkNames() []string {
	return []string{Mainnet.Name, NakamotoTestnet.Name, Testnet.Name}
}
