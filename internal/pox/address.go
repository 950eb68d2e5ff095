package pox

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ripemd160"
)

// AddressVersion is the pox-addr version (address hash mode) embedded in the signed message.
type AddressVersion byte

const (
	AddressVersionP2PKH AddressVersion = 0x00
	AddressVersionP2SH  AddressVersion = 0x01
)

const hashLength = 20

var (
	ErrAddressFormat  = errors.New("invalid base58check address")
	ErrAddressLength  = errors.New("invalid address length")
	ErrAddressVersion = errors.New("unsupported bitcoin address version")
)

// networks whose addresses are accepted.
var addressNetworks = []*chaincfg.Params{
	&chaincfg.MainNetParams,
	&chaincfg.TestNet3Params,
	&chaincfg.RegressionNetParams,
}

// PoxAddress 解码后的 PoX 地址（version + hashbytes）
type PoxAddress struct {
	Version   AddressVersion
	HashBytes [hashLength]byte
}

func (a PoxAddress) String() string {
	return hex.EncodeToString([]byte{byte(a.Version)}) + hex.EncodeToString(a.HashBytes[:])
}

// DecodeAddress 将 base58check 编码的 BTC 地址解码为 PoX 地址
func DecodeAddress(address string) (PoxAddress, error) {
	payload, version, err := base58.CheckDecode(address)
	if err != nil {
		return PoxAddress{}, errors.Wrapf(ErrAddressFormat, "%s: %v", address, err)
	}

	// CheckDecode strips the version byte: 1 + 20 bytes in total
	if len(payload) != hashLength {
		return PoxAddress{}, errors.Wrapf(ErrAddressLength, "expected %d bytes, got %d", hashLength+1, len(payload)+1)
	}

	poxVersion, ok := poxVersionFromBitcoin(version)
	if !ok {
		return PoxAddress{}, errors.Wrapf(ErrAddressVersion, "0x%02x", version)
	}

	addr := PoxAddress{Version: poxVersion}
	copy(addr.HashBytes[:], payload)
	return addr, nil
}

func poxVersionFromBitcoin(version byte) (AddressVersion, bool) {
	switch version {
	case chaincfg.MainNetParams.PubKeyHashAddrID, chaincfg.TestNet3Params.PubKeyHashAddrID:
		return AddressVersionP2PKH, true
	case chaincfg.MainNetParams.ScriptHashAddrID, chaincfg.TestNet3Params.ScriptHashAddrID:
		return AddressVersionP2SH, true
	default:
		return 0, false
	}
}

// IsValidAddress reports whether address is a structurally valid bitcoin address
// (base58 P2PKH/P2SH, segwit v0 or taproot) on mainnet, testnet or regtest.
func IsValidAddress(address string) bool {
	_, ok := decodeBitcoinAddress(address)
	return ok
}

// IsPoxAddress reports whether address is valid and fits the pox-addr layout (version + 20 byte hash).
// Segwit addresses of any witness version are valid bitcoin addresses but not pox addresses.
func IsPoxAddress(address string) bool {
	addr, ok := decodeBitcoinAddress(address)
	if !ok {
		return false
	}

	switch addr.(type) {
	case *btcutil.AddressPubKeyHash, *btcutil.AddressScriptHash:
		return true
	default:
		return false
	}
}

func decodeBitcoinAddress(address string) (btcutil.Address, bool) {
	if address == "" {
		return nil, false
	}

	for _, params := range addressNetworks {
		addr, err := btcutil.DecodeAddress(address, params)
		if err != nil || !addr.IsForNet(params) {
			continue
		}
		// DecodeAddress also accepts raw hex public keys
		if _, isPubKey := addr.(*btcutil.AddressPubKey); isPubKey {
			return nil, false
		}
		return addr, true
	}
	return nil, false
}

// EncodeAddress 将 version 字节和 20 字节哈希编码为 base58check 地址
func EncodeAddress(version byte, hash []byte) (string, error) {
	if len(hash) != hashLength {
		return "", errors.Wrapf(ErrAddressLength, "hash must be %d bytes, got %d", hashLength, len(hash))
	}
	return base58.CheckEncode(hash, version), nil
}

// AddressFromPubKey 根据公钥生成 P2PKH 地址：SHA256 -> RIPEMD160 -> base58check
func AddressFromPubKey(pubKey []byte, params *chaincfg.Params) (string, error) {
	if len(pubKey) == 0 {
		return "", errors.New("public key is required")
	}
	if params == nil {
		params = &chaincfg.MainNetParams
	}

	sha := sha256.Sum256(pubKey)
	hasher := ripemd160.New()
	if _, err := hasher.Write(sha[:]); err != nil {
		return "", errors.Wrap(err, "failed to hash public key")
	}

	return EncodeAddress(params.PubKeyHashAddrID, hasher.Sum(nil))
}
