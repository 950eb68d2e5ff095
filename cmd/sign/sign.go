package sign

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SafeMPC/pox-signer/internal/config"
	"github.com/SafeMPC/pox-signer/internal/pox"
	"github.com/SafeMPC/pox-signer/internal/stacks"
	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	currentCycleFlag = "current-cycle"
	topicFlag        = "topic"
	poxAddressFlag   = "pox-address"
	rewardCycleFlag  = "reward-cycle"
	periodFlag       = "period"
	maxAmountFlag    = "max-amount"
	networkFlag      = "network"
	verifyFlag       = "verify"
)

type output struct {
	Signature       string    `json:"signature"`
	SignerPublicKey string    `json:"signerPublicKey"`
	MessageHash     string    `json:"messageHash"`
	AuthID          uint64    `json:"authId"`
	MaxAmount       uint64    `json:"maxAmount"`
	Topic           string    `json:"topic"`
	Period          uint64    `json:"period"`
	RewardCycle     uint64    `json:"rewardCycle"`
	PoxAddress      string    `json:"poxAddress"`
	Network         string    `json:"network"`
	Verified        *bool     `json:"verified,omitempty"`
	SignedAt        time.Time `json:"signedAt"`
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Signs a request offline",
		Long: `Runs the signing pipeline without a node: the current reward cycle
is taken from --current-cycle. The signer key is read from SIGNER_PRV_KEY.`,
		RunE: run,
	}

	cmd.Flags().Uint64(currentCycleFlag, 0, "Current reward cycle used for validation")
	cmd.Flags().String(topicFlag, string(pox.TopicStackStx), "Signature topic")
	cmd.Flags().String(poxAddressFlag, "", "Bitcoin PoX reward address")
	cmd.Flags().Uint64(rewardCycleFlag, 0, "Reward cycle")
	cmd.Flags().Int64(periodFlag, 1, "Lock period")
	cmd.Flags().String(maxAmountFlag, "", "Maximum amount in STX")
	cmd.Flags().String(networkFlag, "", "Network name, defaults to NETWORK")
	cmd.Flags().Bool(verifyFlag, false, "Recover the signer key from the signature and check it")

	_ = cmd.MarkFlagRequired(currentCycleFlag)
	_ = cmd.MarkFlagRequired(poxAddressFlag)
	_ = cmd.MarkFlagRequired(maxAmountFlag)

	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	cfg := config.DefaultServiceConfigFromEnv()

	currentCycle, _ := flags.GetUint64(currentCycleFlag)
	topic, _ := flags.GetString(topicFlag)
	poxAddress, _ := flags.GetString(poxAddressFlag)
	rewardCycle, _ := flags.GetUint64(rewardCycleFlag)
	period, _ := flags.GetInt64(periodFlag)
	maxAmount, _ := flags.GetString(maxAmountFlag)
	networkName, _ := flags.GetString(networkFlag)

	if networkName == "" {
		networkName = cfg.Signer.Network
	}
	network, err := stacks.NetworkByName(networkName, "")
	if err != nil {
		return err
	}

	signer, err := pox.ParsePrivateKey(cfg.Signer.PrivateKey)
	if err != nil {
		return errors.Wrap(err, "SIGNER_PRV_KEY")
	}

	svc, err := pox.NewService(pox.FixedRewardCycle(currentCycle), signer, network.ChainID, pox.NewAuthIDGenerator(time2.DefaultClock), nil)
	if err != nil {
		return err
	}

	req := &pox.SignatureRequest{
		Topic:      topic,
		PoxAddress: poxAddress,
		Period:     &period,
		MaxAmount:  maxAmount,
	}
	if flags.Changed(rewardCycleFlag) {
		req.RewardCycle = &rewardCycle
	}

	res, err := svc.Handle(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := output{
		Signature:       res.Signature,
		SignerPublicKey: res.PublicKey,
		MessageHash:     res.MessageHash,
		AuthID:          res.AuthID,
		MaxAmount:       res.MaxAmount,
		Topic:           res.Topic.Name(),
		Period:          res.Period,
		RewardCycle:     res.RewardCycle,
		PoxAddress:      res.PoxAddress,
		Network:         network.Name,
		SignedAt:        res.SignedAt,
	}

	if verify, _ := flags.GetBool(verifyFlag); verify {
		ok, err := verifyResult(res)
		if err != nil {
			return err
		}
		out.Verified = &ok
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

func verifyResult(res *pox.SignatureResult) (bool, error) {
	pub, err := hex.DecodeString(res.PublicKey)
	if err != nil {
		return false, errors.Wrap(err, "failed to decode public key")
	}
	sig, err := hex.DecodeString(res.Signature)
	if err != nil {
		return false, errors.Wrap(err, "failed to decode signature")
	}
	digest, err := hex.DecodeString(res.MessageHash)
	if err != nil || len(digest) != 32 {
		return false, errors.Errorf("invalid message hash %q", res.MessageHash)
	}

	var d [32]byte
	copy(d[:], digest)
	return pox.VerifySignature(pub, d, sig)
}
