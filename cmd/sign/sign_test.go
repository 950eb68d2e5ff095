package sign

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/SafeMPC/pox-signer/internal/pox"
	"github.com/SafeMPC/pox-signer/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSign(t *testing.T, args ...string) (*output, error) {
	t.Helper()

	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		return nil, err
	}

	var res output
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	return &res, nil
}

func TestSignOffline(t *testing.T) {
	t.Setenv("SIGNER_PRV_KEY", test.TestSignerPrivateKey)

	res, err := runSign(t,
		"--current-cycle", "90",
		"--reward-cycle", "90",
		"--period", "12",
		"--topic", "stack-stx",
		"--pox-address", "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa",
		"--max-amount", "1.5",
		"--network", "testnet",
		"--verify",
	)
	require.NoError(t, err)

	assert.Equal(t, test.TestSignerPublicKey, res.SignerPublicKey)
	assert.Equal(t, uint64(1500000), res.MaxAmount)
	assert.Equal(t, uint64(90), res.RewardCycle)
	assert.Equal(t, uint64(12), res.Period)
	assert.Equal(t, "stack-stx", res.Topic)
	assert.Equal(t, "testnet", res.Network)
	assert.Len(t, res.Signature, pox.SignatureLength*2)
	require.NotNil(t, res.Verified)
	assert.True(t, *res.Verified)
}

func TestSignOfflineRejectsRuleViolation(t *testing.T) {
	t.Setenv("SIGNER_PRV_KEY", test.TestSignerPrivateKey)

	_, err := runSign(t,
		"--current-cycle", "90",
		"--reward-cycle", "89",
		"--pox-address", "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa",
		"--max-amount", "1",
		"--network", "mainnet",
	)
	require.Error(t, err)

	ruleErr, ok := pox.IsRuleError(err)
	require.True(t, ok)
	assert.Equal(t, pox.ReasonPastRewCycle, ruleErr.Reason)
}

func TestSignOfflineRequiresKey(t *testing.T) {
	t.Setenv("SIGNER_PRV_KEY", "")

	_, err := runSign(t,
		"--current-cycle", "90",
		"--reward-cycle", "90",
		"--pox-address", "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa",
		"--max-amount", "1",
		"--network", "mainnet",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, pox.ErrInvalidPrivateKey)
}
