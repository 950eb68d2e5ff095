package pox

import (
	"github.com/SafeMPC/pox-signer/internal/clarity"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"
)

const (
	DomainName    = "pox-4-signer"
	DomainVersion = "1.0.0"
)

// StructuredDataPrefix is the SIP-018 structured data prefix ("SIP018").
var StructuredDataPrefix = []byte{0x53, 0x49, 0x50, 0x30, 0x31, 0x38}

// Message 需要签名的 PoX 授权消息
type Message struct {
	PoxAddress  PoxAddress
	RewardCycle uint64
	Topic       Topic
	Period      uint64
	AuthID      uint64
	MaxAmount   uint64
}

// DomainTuple returns the domain separator tuple for chainID.
func DomainTuple(chainID uint32) clarity.TupleValue {
	return clarity.Tuple(map[string]clarity.Value{
		"name":     clarity.StringASCII(DomainName),
		"version":  clarity.StringASCII(DomainVersion),
		"chain-id": clarity.UInt(uint64(chainID)),
	})
}

// Tuple returns the payload tuple of the message.
func (m Message) Tuple() clarity.TupleValue {
	return clarity.Tuple(map[string]clarity.Value{
		"pox-addr": clarity.Tuple(map[string]clarity.Value{
			"version":   clarity.Buffer([]byte{byte(m.PoxAddress.Version)}),
			"hashbytes": clarity.Buffer(m.PoxAddress.HashBytes[:]),
		}),
		"reward-cycle": clarity.UInt(m.RewardCycle),
		"topic":        clarity.StringASCII(m.Topic.Name()),
		"period":       clarity.UInt(m.Period),
		"auth-id":      clarity.UInt(m.AuthID),
		"max-amount":   clarity.UInt(m.MaxAmount),
	})
}

// StructuredDataHash 对 Clarity 值做 consensus 序列化后取 sha256
func StructuredDataHash(v clarity.Value) (chainhash.Hash, error) {
	b, err := clarity.Serialize(v)
	if err != nil {
		return chainhash.Hash{}, errors.Wrap(err, "failed to serialize structured data")
	}
	return chainhash.HashH(b), nil
}

// BuildMessageHash 计算 sha256(prefix || domainHash || messageHash)，即签名的摘要
func BuildMessageHash(m Message, chainID uint32) ([32]byte, error) {
	if m.Topic.Family() == FamilyUnknown {
		return [32]byte{}, errors.Errorf("unknown topic %q", m.Topic)
	}

	domainHash, err := StructuredDataHash(DomainTuple(chainID))
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "failed to hash domain")
	}
	messageHash, err := StructuredDataHash(m.Tuple())
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "failed to hash message")
	}

	preimage := make([]byte, 0, len(StructuredDataPrefix)+2*chainhash.HashSize)
	preimage = append(preimage, StructuredDataPrefix...)
	preimage = append(preimage, domainHash[:]...)
	preimage = append(preimage, messageHash[:]...)

	return chainhash.HashH(preimage), nil
}
