package pox_test

import (
	"encoding/hex"
	"testing"

	"github.com/SafeMPC/pox-signer/internal/pox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	mainnetChainID uint32 = 1
	testnetChainID uint32 = 0x80000000
)

func mustDecode(t *testing.T, address string) pox.PoxAddress {
	t.Helper()
	addr, err := pox.DecodeAddress(address)
	require.NoError(t, err)
	return addr
}

func stackStxMessage(t *testing.T) pox.Message {
	return pox.Message{
		PoxAddress:  mustDecode(t, mainnetP2PKH),
		RewardCycle: 90,
		Topic:       pox.TopicStackStx,
		Period:      6,
		AuthID:      1700000000000000,
		MaxAmount:   1_000_000_000,
	}
}

func TestDomainHash(t *testing.T) {
	h, err := pox.StructuredDataHash(pox.DomainTuple(mainnetChainID))
	require.NoError(t, err)
	assert.Equal(t, "8f02a780d30a426b98ae714faf630b46214d8ec1de88daf6f3afde8530826562", hex.EncodeToString(h[:]))

	h, err = pox.StructuredDataHash(pox.DomainTuple(testnetChainID))
	require.NoError(t, err)
	assert.Equal(t, "a95df00e63898fd334ff3c42dadafba323692b272a7b52952ceeb77c3191d739", hex.EncodeToString(h[:]))
}

func TestBuildMessageHash(t *testing.T) {
	digest, err := pox.BuildMessageHash(stackStxMessage(t), mainnetChainID)
	require.NoError(t, err)
	assert.Equal(t, "dad6dcff52009015761927ef39cbffd16dea9c63ee4e93f81ddca43b7af15212", hex.EncodeToString(digest[:]))

	agg := pox.Message{
		PoxAddress:  mustDecode(t, testnetP2PKH),
		RewardCycle: 91,
		Topic:       pox.TopicAggregateCommit,
		Period:      1,
		AuthID:      42,
		MaxAmount:   5_000_000,
	}
	digest, err = pox.BuildMessageHash(agg, testnetChainID)
	require.NoError(t, err)
	assert.Equal(t, "c882c1a79d14bf1a04f4ae77d114c33af57a9ce594c5752e4709b9103b84a609", hex.EncodeToString(digest[:]))
}

func TestBuildMessageHashIsDeterministic(t *testing.T) {
	first, err := pox.BuildMessageHash(stackStxMessage(t), mainnetChainID)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := pox.BuildMessageHash(stackStxMessage(t), mainnetChainID)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	nextCycle := stackStxMessage(t)
	nextCycle.RewardCycle = 91
	other, err := pox.BuildMessageHash(nextCycle, mainnetChainID)
	require.NoError(t, err)
	assert.Equal(t, "4f7d9112d9f8ac1bea924fbefd94c789d44dbe7baa57c860c38ce372cf1728cd", hex.EncodeToString(other[:]))

	otherChain, err := pox.BuildMessageHash(stackStxMessage(t), testnetChainID)
	require.NoError(t, err)
	assert.NotEqual(t, first, otherChain)
}

func TestBuildMessageHashRejectsUnknownTopic(t *testing.T) {
	m := stackStxMessage(t)
	m.Topic = pox.Topic("stack-aggregation-commit")
	_, err := pox.BuildMessageHash(m, mainnetChainID)
	assert.Error(t, err)
}

func TestStructuredDataPrefix(t *testing.T) {
	assert.Equal(t, "SIP018", string(pox.StructuredDataPrefix))
}
