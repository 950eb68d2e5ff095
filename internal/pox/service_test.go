package pox_test

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/SafeMPC/pox-signer/internal/pox"
	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorderSpy struct {
	issued   []pox.Topic
	rejected []pox.Reason
	upstream int
}

func (r *recorderSpy) SignatureIssued(topic pox.Topic)   { r.issued = append(r.issued, topic) }
func (r *recorderSpy) RequestRejected(reason pox.Reason) { r.rejected = append(r.rejected, reason) }
func (r *recorderSpy) UpstreamFailed()                   { r.upstream++ }

func newTestService(t *testing.T, oracle pox.RewardCycleOracle, signer pox.Signer, recorder pox.Recorder) *pox.Service {
	t.Helper()
	clock := time2.NewMockClock(time.UnixMilli(1_700_000_000_000))
	svc, err := pox.NewService(oracle, signer, mainnetChainID, pox.NewAuthIDGenerator(clock), recorder)
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresCollaborators(t *testing.T) {
	_, err := pox.NewService(nil, mustSigner(t), mainnetChainID, pox.NewAuthIDGenerator(nil), nil)
	assert.Error(t, err)

	_, err = pox.NewService(pox.FixedRewardCycle(1), mustSigner(t), mainnetChainID, nil, nil)
	assert.Error(t, err)
}

func TestServiceHandleSignsLockRequest(t *testing.T) {
	spy := &recorderSpy{}
	signer := mustSigner(t)
	svc := newTestService(t, pox.FixedRewardCycle(currentCycle), signer, spy)
	require.True(t, svc.Configured())
	assert.Equal(t, testPublicKey, svc.PublicKeyHex())

	res, err := svc.Handle(context.Background(), &pox.SignatureRequest{
		Topic:       "stack-stx",
		PoxAddress:  mainnetP2PKH,
		RewardCycle: u64(currentCycle),
		Period:      i64(12),
		MaxAmount:   "250.5",
	})
	require.NoError(t, err)

	assert.Equal(t, pox.TopicStackStx, res.Topic)
	assert.Equal(t, uint64(250_500_000), res.MaxAmount)
	assert.Equal(t, uint64(12), res.Period)
	assert.Equal(t, currentCycle, res.RewardCycle)
	assert.Equal(t, testPublicKey, res.PublicKey)
	assert.Equal(t, mainnetP2PKH, res.PoxAddress)
	assert.Equal(t, int64(1_700_000_000_000), res.SignedAt.UnixMilli())
	assert.GreaterOrEqual(t, res.AuthID, uint64(1_700_000_000_000_000))

	// the digest can be rebuilt from the returned fields
	digest, err := pox.BuildMessageHash(pox.Message{
		PoxAddress:  mustDecode(t, res.PoxAddress),
		RewardCycle: res.RewardCycle,
		Topic:       res.Topic,
		Period:      res.Period,
		AuthID:      res.AuthID,
		MaxAmount:   res.MaxAmount,
	}, mainnetChainID)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(digest[:]), res.MessageHash)

	sig, err := hex.DecodeString(res.Signature)
	require.NoError(t, err)
	ok, err := pox.VerifySignature(signer.PublicKey(), digest, sig)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, []pox.Topic{pox.TopicStackStx}, spy.issued)
	assert.Empty(t, spy.rejected)
}

func TestServiceHandleSignsAggregateRequest(t *testing.T) {
	svc := newTestService(t, pox.FixedRewardCycle(currentCycle), mustSigner(t), nil)

	res, err := svc.Handle(context.Background(), &pox.SignatureRequest{
		Topic:       "stack-aggregation-commit",
		PoxAddress:  testnetP2PKH,
		RewardCycle: u64(currentCycle + 1),
		Period:      i64(1),
		MaxAmount:   "5",
	})
	require.NoError(t, err)
	assert.Equal(t, pox.TopicAggregateCommit, res.Topic)
	assert.Equal(t, uint64(5_000_000), res.MaxAmount)
}

func TestServiceHandleAuthIDsAreUnique(t *testing.T) {
	svc := newTestService(t, pox.FixedRewardCycle(currentCycle), mustSigner(t), nil)
	req := &pox.SignatureRequest{
		Topic:       "stack-extend",
		PoxAddress:  mainnetP2PKH,
		RewardCycle: u64(currentCycle),
		Period:      i64(3),
		MaxAmount:   "1",
	}

	first, err := svc.Handle(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Handle(context.Background(), req)
	require.NoError(t, err)

	assert.Greater(t, second.AuthID, first.AuthID)
	assert.NotEqual(t, first.MessageHash, second.MessageHash)
	assert.NotEqual(t, first.Signature, second.Signature)
}

func TestServiceHandleRejections(t *testing.T) {
	spy := &recorderSpy{}
	svc := newTestService(t, pox.FixedRewardCycle(currentCycle), mustSigner(t), spy)

	_, err := svc.Handle(context.Background(), &pox.SignatureRequest{
		Topic:       "stack-stx",
		PoxAddress:  mainnetP2PKH,
		RewardCycle: u64(currentCycle - 1),
		Period:      i64(1),
		MaxAmount:   "1",
	})
	requireReason(t, err, pox.ReasonPastRewCycle)

	_, err = svc.Handle(context.Background(), &pox.SignatureRequest{
		Topic:       "agg-increase",
		PoxAddress:  mainnetP2PKH,
		RewardCycle: u64(currentCycle + 1),
		Period:      i64(2),
		MaxAmount:   "1",
	})
	requireReason(t, err, pox.ReasonAggCommitWrongPeriod)

	assert.Equal(t, []pox.Reason{pox.ReasonPastRewCycle, pox.ReasonAggCommitWrongPeriod}, spy.rejected)
	assert.Empty(t, spy.issued)
}

func TestServiceHandleUpstreamFailure(t *testing.T) {
	spy := &recorderSpy{}
	oracle := &countingOracle{err: errors.New("connection refused")}
	svc := newTestService(t, oracle, mustSigner(t), spy)

	_, err := svc.Handle(context.Background(), &pox.SignatureRequest{
		Topic:       "stack-stx",
		PoxAddress:  mainnetP2PKH,
		RewardCycle: u64(currentCycle),
		Period:      i64(1),
		MaxAmount:   "1",
	})
	require.Error(t, err)
	assert.True(t, pox.IsUpstreamError(err))
	_, isRule := pox.IsRuleError(err)
	assert.False(t, isRule)
	assert.Equal(t, 1, spy.upstream)
}

func TestServiceHandleWithoutSigner(t *testing.T) {
	oracle := &countingOracle{cycle: currentCycle}
	svc := newTestService(t, oracle, nil, nil)
	assert.False(t, svc.Configured())
	assert.Empty(t, svc.PublicKeyHex())

	_, err := svc.Handle(context.Background(), &pox.SignatureRequest{
		Topic:       "stack-stx",
		PoxAddress:  mainnetP2PKH,
		RewardCycle: u64(currentCycle),
		Period:      i64(1),
		MaxAmount:   "1",
	})
	assert.True(t, errors.Is(err, pox.ErrConfiguration))
	assert.Zero(t, oracle.calls)
}

func TestServiceHandleRejectsSegwitAddresses(t *testing.T) {
	for _, address := range []string{
		"bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4",
		"bc1p0xlxvlhemja6c4dqv22uapctqupfhlxm9h8z3k2e72q4k9hcz7vqzk5jj0",
	} {
		t.Run(address, func(t *testing.T) {
			spy := &recorderSpy{}
			oracle := &countingOracle{cycle: currentCycle}
			svc := newTestService(t, oracle, mustSigner(t), spy)

			_, err := svc.Handle(context.Background(), &pox.SignatureRequest{
				Topic:       "stack-stx",
				PoxAddress:  address,
				RewardCycle: u64(currentCycle),
				Period:      i64(1),
				MaxAmount:   "1",
			})
			requireReason(t, err, pox.ReasonInvalidPoxAddress)
			assert.False(t, errors.Is(err, pox.ErrInternal))
			assert.Zero(t, oracle.calls)
			assert.Empty(t, spy.issued)
		})
	}
}
