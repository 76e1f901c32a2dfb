package address

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tedchain/inputparser/types"
	"github.com/tedchain/inputparser/utils"
)

const compressedFlag = 0x01

// PrivateKey is key material extracted from a dumped private key string.
type PrivateKey struct {
	Params     *types.NetworkParams
	Key        *ecdsa.PrivateKey
	Compressed bool
}

// DecodePrivateKey parses a dumped (wallet import format) private key.
func DecodePrivateKey(params *types.NetworkParams, s string) (*PrivateKey, error) {
	version, payload, err := utils.CheckDecode(s)
	if err != nil {
		return nil, &FormatError{Input: s, Reason: "invalid private key", Cause: err}
	}
	if version != params.DumpedPrivateKeyHeader {
		return nil, &FormatError{
			Input:  s,
			Reason: fmt.Sprintf("version %d is not the private key version of network %s", version, params),
			Cause:  ErrWrongNetwork,
		}
	}

	compressed := false
	switch {
	case len(payload) == 33 && payload[32] == compressedFlag:
		compressed = true
		payload = payload[:32]
	case len(payload) == 32:
	default:
		return nil, &FormatError{Input: s, Reason: fmt.Sprintf("wrong number of bytes for a private key: %d", len(payload))}
	}

	key, err := utils.PrivateKeyFromBytes(payload)
	if err != nil {
		return nil, &FormatError{Input: s, Reason: "invalid private key", Cause: err}
	}
	return &PrivateKey{Params: params, Key: key, Compressed: compressed}, nil
}

// NewPrivateKey wraps an existing secp256k1 key.
func NewPrivateKey(params *types.NetworkParams, key *ecdsa.PrivateKey, compressed bool) *PrivateKey {
	return &PrivateKey{Params: params, Key: key, Compressed: compressed}
}

// String returns the dumped private key encoding.
func (k *PrivateKey) String() string {
	payload := crypto.FromECDSA(k.Key)
	if k.Compressed {
		payload = append(payload, compressedFlag)
	}
	return utils.CheckEncode(k.Params.DumpedPrivateKeyHeader, payload)
}

// PubKey returns the serialized public key.
func (k *PrivateKey) PubKey() []byte {
	return utils.SerializePublicKey(&k.Key.PublicKey, k.Compressed)
}

// PubKeyHash returns HASH160 of the serialized public key.
func (k *PrivateKey) PubKeyHash() []byte {
	return utils.PublicKeyHash(k.Key, k.Compressed)
}

// Address returns the pay-to-pubkey-hash address of the key.
func (k *PrivateKey) Address() *Address {
	a, _ := FromPubKeyHash(k.Params, k.PubKeyHash())
	return a
}
