package address

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tedchain/inputparser/types"
)

// bitcoinParams reuses the Bitcoin version bytes so published vectors apply.
var bitcoinParams = &types.NetworkParams{
	Network:                "bitcoin",
	ID:                     "bitcoin",
	URIScheme:              "bitcoin",
	AddressHeader:          0,
	P2SHHeader:             5,
	DumpedPrivateKeyHeader: 128,
	DumpedPrivateKeyPrefix: "5",
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestDecode_KnownVector(t *testing.T) {
	a, err := Decode(bitcoinParams, "1PMycacnJaSqwwJqjawXBErnLsZ7RkXUAs")
	require.NoError(t, err)

	assert.Equal(t, "f54a5851e9372b87810a8e60cdd2e7cfd80b6e31", hex.EncodeToString(a.Hash[:]))
	assert.False(t, a.IsP2SH())
	assert.Equal(t, "1PMycacnJaSqwwJqjawXBErnLsZ7RkXUAs", a.String())
}

func TestDecode_RoundTrip(t *testing.T) {
	hash := mustHex(t, "00112233445566778899aabbccddeeff00112233")

	for _, params := range types.KnownNetworks() {
		p2pkh, err := FromPubKeyHash(params, hash)
		require.NoError(t, err)
		p2sh, err := FromScriptHash(params, hash)
		require.NoError(t, err)

		for _, a := range []*Address{p2pkh, p2sh} {
			decoded, err := Decode(params, a.String())
			require.NoError(t, err, params.Network)
			assert.True(t, a.Equal(decoded))
		}
	}
}

func TestDecode_MainnetAddressStartsWithP(t *testing.T) {
	a, err := FromPubKeyHash(types.MainNetParams, make([]byte, 20))
	require.NoError(t, err)
	s := a.String()
	assert.True(t, strings.HasPrefix(s, "P"), s)
	assert.Len(t, s, 34)
}

func TestDecode_WrongNetwork(t *testing.T) {
	a, err := FromPubKeyHash(types.TestNetParams, make([]byte, 20))
	require.NoError(t, err)

	_, err = Decode(types.MainNetParams, a.String())
	require.Error(t, err)

	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.True(t, errors.Is(err, ErrWrongNetwork))
}

func TestDecode_BadChecksum(t *testing.T) {
	a, err := FromPubKeyHash(types.MainNetParams, make([]byte, 20))
	require.NoError(t, err)
	s := a.String()

	last := s[len(s)-1]
	replacement := byte('2')
	if last == replacement {
		replacement = '3'
	}
	_, err = Decode(types.MainNetParams, s[:len(s)-1]+string(replacement))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrWrongNetwork))
}

func TestDecodeAny_DetectsNetwork(t *testing.T) {
	a, err := FromPubKeyHash(types.TestNetParams, make([]byte, 20))
	require.NoError(t, err)

	decoded, err := DecodeAny(types.KnownNetworks(), a.String())
	require.NoError(t, err)
	assert.Equal(t, types.TestNetParams, decoded.Params)

	_, err = DecodeAny([]*types.NetworkParams{bitcoinParams}, a.String())
	assert.True(t, errors.Is(err, ErrWrongNetwork))
}

func TestScript_RoundTrip(t *testing.T) {
	hash := mustHex(t, "f54a5851e9372b87810a8e60cdd2e7cfd80b6e31")

	p2pkh, err := FromPubKeyHash(types.MainNetParams, hash)
	require.NoError(t, err)
	script := p2pkh.ScriptPubKey()
	assert.Equal(t, "76a914f54a5851e9372b87810a8e60cdd2e7cfd80b6e3188ac", hex.EncodeToString(script))
	assert.True(t, p2pkh.Equal(FromScript(types.MainNetParams, script)))

	p2sh, err := FromScriptHash(types.MainNetParams, hash)
	require.NoError(t, err)
	script = p2sh.ScriptPubKey()
	assert.Equal(t, "a914f54a5851e9372b87810a8e60cdd2e7cfd80b6e3187", hex.EncodeToString(script))
	assert.True(t, p2sh.Equal(FromScript(types.MainNetParams, script)))

	assert.Nil(t, FromScript(types.MainNetParams, []byte{0x6a}))
}

func TestDecodePrivateKey_KnownVector(t *testing.T) {
	k, err := DecodePrivateKey(bitcoinParams, "5HueCGU8rMjxEXxiPuD5BDku4MkFqeZyd4dZ1jvhTVqvbTLvyTJ")
	require.NoError(t, err)

	assert.False(t, k.Compressed)
	assert.Equal(t,
		"0c28fca386c7a227600b2fe50b7cae11ec86d3bf1fbe471be89827e19d72aa1d",
		hex.EncodeToString(crypto.FromECDSA(k.Key)))
	assert.Equal(t, "5HueCGU8rMjxEXxiPuD5BDku4MkFqeZyd4dZ1jvhTVqvbTLvyTJ", k.String())
}

func TestPrivateKey_CompressedAddress(t *testing.T) {
	key, err := crypto.ToECDSA(mustHex(t, "18e14a7b6a307f426a94f8114701e7c8e774e7f9a47e2c2035db29a206321725"))
	require.NoError(t, err)

	k := NewPrivateKey(bitcoinParams, key, true)
	assert.Equal(t,
		"0250863ad64a87ae8a2fe83c1af1a8403cb53f53e486d8511dad8a04887e5b2352",
		hex.EncodeToString(k.PubKey()))
	assert.Equal(t, "1PMycacnJaSqwwJqjawXBErnLsZ7RkXUAs", k.Address().String())

	decoded, err := DecodePrivateKey(bitcoinParams, k.String())
	require.NoError(t, err)
	assert.True(t, decoded.Compressed)
}

func TestDecodePrivateKey_MainnetPrefix(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	s := NewPrivateKey(types.MainNetParams, key, false).String()
	assert.Len(t, s, 51)
	assert.True(t, strings.HasPrefix(s, types.MainNetParams.DumpedPrivateKeyPrefix), s)

	decoded, err := DecodePrivateKey(types.MainNetParams, s)
	require.NoError(t, err)
	assert.Equal(t, crypto.FromECDSA(key), crypto.FromECDSA(decoded.Key))
}

func TestDecodePrivateKey_Errors(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	_, err = DecodePrivateKey(types.MainNetParams, NewPrivateKey(types.TestNetParams, key, false).String())
	assert.True(t, errors.Is(err, ErrWrongNetwork))

	a, err := FromPubKeyHash(types.MainNetParams, make([]byte, 20))
	require.NoError(t, err)
	_, err = DecodePrivateKey(types.MainNetParams, a.String())
	var fe *FormatError
	assert.True(t, errors.As(err, &fe))

	_, err = DecodePrivateKey(types.MainNetParams, "0OIl")
	assert.True(t, errors.As(err, &fe))
}
