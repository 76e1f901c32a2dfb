// Package address implements base58check addresses and dumped private keys.
package address

import (
	"errors"
	"fmt"

	"github.com/tedchain/inputparser/types"
	"github.com/tedchain/inputparser/utils"
)

const hashLen = 20

// FormatError reports a malformed base58 payload: bad alphabet, checksum,
// length or version byte.
type FormatError struct {
	Input  string
	Reason string
	Cause  error
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Cause)
	}
	return e.Reason
}

func (e *FormatError) Unwrap() error { return e.Cause }

// ErrWrongNetwork is wrapped by FormatError when the version byte belongs to
// no address type of the expected network.
var ErrWrongNetwork = errors.New("version byte does not match network")

// Address is a pay-to-pubkey-hash or pay-to-script-hash address.
type Address struct {
	Params  *types.NetworkParams
	Version byte
	Hash    [hashLen]byte
}

// Decode parses s as an address of params.
func Decode(params *types.NetworkParams, s string) (*Address, error) {
	version, payload, err := utils.CheckDecode(s)
	if err != nil {
		return nil, &FormatError{Input: s, Reason: "invalid address", Cause: err}
	}
	if len(payload) != hashLen {
		return nil, &FormatError{Input: s, Reason: fmt.Sprintf("address payload must be %d bytes, got %d", hashLen, len(payload))}
	}
	if version != params.AddressHeader && version != params.P2SHHeader {
		return nil, &FormatError{
			Input:  s,
			Reason: fmt.Sprintf("version %d is not an address version of network %s", version, params),
			Cause:  ErrWrongNetwork,
		}
	}

	a := &Address{Params: params, Version: version}
	copy(a.Hash[:], payload)
	return a, nil
}

// DecodeAny parses s against each network in turn and returns the address
// for the first network whose version bytes match.
func DecodeAny(networks []*types.NetworkParams, s string) (*Address, error) {
	var lastErr error
	for _, params := range networks {
		a, err := Decode(params, s)
		if err == nil {
			return a, nil
		}
		if !errors.Is(err, ErrWrongNetwork) {
			return nil, err
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = &FormatError{Input: s, Reason: "no networks to match against"}
	}
	return nil, lastErr
}

// FromPubKeyHash builds a pay-to-pubkey-hash address.
func FromPubKeyHash(params *types.NetworkParams, hash []byte) (*Address, error) {
	return fromHash(params, params.AddressHeader, hash)
}

// FromScriptHash builds a pay-to-script-hash address.
func FromScriptHash(params *types.NetworkParams, hash []byte) (*Address, error) {
	return fromHash(params, params.P2SHHeader, hash)
}

func fromHash(params *types.NetworkParams, version byte, hash []byte) (*Address, error) {
	if len(hash) != hashLen {
		return nil, fmt.Errorf("hash must be %d bytes, got %d", hashLen, len(hash))
	}
	a := &Address{Params: params, Version: version}
	copy(a.Hash[:], hash)
	return a, nil
}

// IsP2SH reports whether the address pays to a script hash.
func (a *Address) IsP2SH() bool {
	return a.Version == a.Params.P2SHHeader
}

func (a *Address) String() string {
	return utils.CheckEncode(a.Version, a.Hash[:])
}

// Equal compares network, version and hash.
func (a *Address) Equal(b *Address) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Params == b.Params && a.Version == b.Version && a.Hash == b.Hash
}
