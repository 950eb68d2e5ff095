package pox

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/pkg/errors"
)

const (
	// SignatureLength is the length of an RSV recoverable signature.
	SignatureLength = 65

	compactSigMagicOffset = 27
	compactSigCompPubKey  = 4
	compressedKeySuffix   = 0x01
)

var ErrInvalidPrivateKey = errors.New("invalid signer private key")

// Signer 对 32 字节摘要进行可恢复 ECDSA 签名
type Signer interface {
	Sign(digest [32]byte) ([]byte, error)
	PublicKey() []byte
}

// KeySigner holds the single secp256k1 signer key of the process.
type KeySigner struct {
	key        *btcec.PrivateKey
	compressed bool
}

// ParsePrivateKey 解析十六进制私钥：32 字节，或带 0x01 压缩标记的 33 字节
func ParsePrivateKey(hexKey string) (*KeySigner, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPrivateKey, "key is not hex encoded")
	}

	compressed := false
	switch len(raw) {
	case 32:
	case 33:
		if raw[32] != compressedKeySuffix {
			return nil, errors.Wrapf(ErrInvalidPrivateKey, "unexpected compression flag 0x%02x", raw[32])
		}
		compressed = true
		raw = raw[:32]
	default:
		return nil, errors.Wrapf(ErrInvalidPrivateKey, "expected 32 or 33 bytes, got %d", len(raw))
	}

	var scalar secp.ModNScalar
	if overflow := scalar.SetByteSlice(raw); overflow || scalar.IsZero() {
		return nil, errors.Wrap(ErrInvalidPrivateKey, "key is out of range")
	}

	key, _ := btcec.PrivKeyFromBytes(raw)
	return &KeySigner{
		key:        key,
		compressed: compressed,
	}, nil
}

// NewKeySigner wraps an existing key.
func NewKeySigner(key *btcec.PrivateKey, compressed bool) *KeySigner {
	return &KeySigner{key: key, compressed: compressed}
}

// Sign 返回 r || s || recoveryID 格式的 65 字节签名（RFC6979 确定性签名）
func (s *KeySigner) Sign(digest [32]byte) ([]byte, error) {
	compact := ecdsa.SignCompact(s.key, digest[:], s.compressed)
	if len(compact) != SignatureLength {
		return nil, errors.Errorf("unexpected compact signature length %d", len(compact))
	}

	// compact layout is header || r || s with header = 27 + recid (+4 when compressed)
	recoveryID := compact[0] - compactSigMagicOffset
	if s.compressed {
		recoveryID -= compactSigCompPubKey
	}

	sig := make([]byte, SignatureLength)
	copy(sig, compact[1:])
	sig[SignatureLength-1] = recoveryID
	return sig, nil
}

// PublicKey returns the serialized public key (compressed when the key carries the flag).
func (s *KeySigner) PublicKey() []byte {
	if s.compressed {
		return s.key.PubKey().SerializeCompressed()
	}
	return s.key.PubKey().SerializeUncompressed()
}

func (s *KeySigner) PublicKeyHex() string {
	return hex.EncodeToString(s.PublicKey())
}

// PrivateKeyHex returns the key in the format ParsePrivateKey accepts.
func (s *KeySigner) PrivateKeyHex() string {
	raw := s.key.Serialize()
	if s.compressed {
		raw = append(raw, compressedKeySuffix)
	}
	return hex.EncodeToString(raw)
}

func (s *KeySigner) String() string {
	return "KeySigner{pub: " + s.PublicKeyHex() + ", key: [REDACTED]}"
}

// RecoverPublicKey 从 r || s || recoveryID 签名中恢复公钥
func RecoverPublicKey(digest [32]byte, sig []byte) (*btcec.PublicKey, error) {
	if len(sig) != SignatureLength {
		return nil, errors.Errorf("signature must be %d bytes, got %d", SignatureLength, len(sig))
	}
	recoveryID := sig[SignatureLength-1]
	if recoveryID > 3 {
		return nil, errors.Errorf("invalid recovery id %d", recoveryID)
	}

	compact := make([]byte, SignatureLength)
	compact[0] = compactSigMagicOffset + compactSigCompPubKey + recoveryID
	copy(compact[1:], sig[:SignatureLength-1])

	pub, _, err := ecdsa.RecoverCompact(compact, digest[:])
	if err != nil {
		return nil, errors.Wrap(err, "failed to recover public key")
	}
	return pub, nil
}

// VerifySignature reports whether sig over digest was produced by the key of pubKey.
func VerifySignature(pubKey []byte, digest [32]byte, sig []byte) (bool, error) {
	expected, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		return false, errors.Wrap(err, "failed to parse public key")
	}

	recovered, err := RecoverPublicKey(digest, sig)
	if err != nil {
		return false, err
	}
	if !recovered.IsEqual(expected) {
		return false, nil
	}

	var r, sScalar secp.ModNScalar
	r.SetByteSlice(sig[:32])
	sScalar.SetByteSlice(sig[32:64])
	return ecdsa.NewSignature(&r, &sScalar).Verify(digest[:], expected), nil
}

// SameKey reports whether two serialized public keys encode the same point.
func SameKey(a, b []byte) bool {
	if bytes.Equal(a, b) {
		return true
	}
	pa, err := btcec.ParsePubKey(a)
	if err != nil {
		return false
	}
	pb, err := btcec.ParsePubKey(b)
	if err != nil {
		return false
	}
	return pa.IsEqual(pb)
}
