package utils

import (
	"bytes"
	"compress/gzip"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase43_RoundTrip(t *testing.T) {
	inputs := [][]byte{
		{},
		{0x00},
		{0x00, 0x00, 0x01},
		[]byte("payment request"),
		bytes.Repeat([]byte{0xff}, 64),
	}
	for _, in := range inputs {
		encoded := EncodeBase43(in)
		decoded, err := DecodeBase43(encoded)
		require.NoError(t, err, encoded)
		assert.Equal(t, len(in), len(decoded), encoded)
		assert.True(t, bytes.Equal(in, decoded), encoded)
	}
}

func TestBase43_LeadingZeros(t *testing.T) {
	assert.Equal(t, "00", EncodeBase43([]byte{0, 0}))
	assert.Equal(t, "1", EncodeBase43([]byte{1}))
	assert.Equal(t, "10", EncodeBase43([]byte{43}))
}

func TestBase43_Invalid(t *testing.T) {
	for _, s := range []string{"abc", "A B", "#"} {
		_, err := DecodeBase43(s)
		assert.True(t, errors.Is(err, ErrInvalidBase43), s)
	}
}

func TestQR_CompressRoundTrip(t *testing.T) {
	compressible := bytes.Repeat([]byte("tedcoin "), 50)
	encoded, err := EncodeCompressBinary(compressible)
	require.NoError(t, err)
	assert.Equal(t, byte('Z'), encoded[0])

	decoded, err := DecodeDecompressBinary(encoded)
	require.NoError(t, err)
	assert.Equal(t, compressible, decoded)

	small := []byte{1, 2, 3}
	encoded, err = EncodeCompressBinary(small)
	require.NoError(t, err)
	assert.Equal(t, byte('-'), encoded[0])

	decoded, err = DecodeDecompressBinary(encoded)
	require.NoError(t, err)
	assert.Equal(t, small, decoded)
}

func TestQR_DecodeErrors(t *testing.T) {
	_, err := DecodeDecompressBinary("")
	assert.Error(t, err)

	_, err = DecodeDecompressBinary("Z" + EncodeBase43([]byte("not gzip")))
	assert.Error(t, err)

	_, err = DecodeDecompressBinary("-abc")
	assert.ErrorIs(t, err, ErrInvalidBase43)
}

func TestQR_DecompressLimit(t *testing.T) {
	atLimit := make([]byte, MaxDecompressedSize)
	encoded := "Z" + EncodeBase43(gzipBytes(t, atLimit))
	decoded, err := DecodeDecompressBinary(encoded)
	require.NoError(t, err)
	assert.Len(t, decoded, MaxDecompressedSize)

	overLimit := make([]byte, MaxDecompressedSize+1)
	_, err = DecodeDecompressBinary("Z" + EncodeBase43(gzipBytes(t, overLimit)))
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}

func gzipBytes(t *testing.T, b []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(b)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestQR_Binary(t *testing.T) {
	in := []byte{0, 1, 2, 3}
	out, err := DecodeBinary(EncodeBinary(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestCheckEncode_RoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte{0x11}, 20)
	s := CheckEncode(55, payload)
	assert.Equal(t, byte('P'), s[0])

	version, decoded, err := CheckDecode(s)
	require.NoError(t, err)
	assert.Equal(t, byte(55), version)
	assert.Equal(t, payload, decoded)
}

func TestCheckDecode_Errors(t *testing.T) {
	s := CheckEncode(0, bytes.Repeat([]byte{0x22}, 20))
	flipped := []byte(s)
	if flipped[5] == 'a' {
		flipped[5] = 'b'
	} else {
		flipped[5] = 'a'
	}

	_, _, err := CheckDecode(string(flipped))
	assert.ErrorIs(t, err, ErrChecksumMismatch)

	_, _, err = CheckDecode("1")
	assert.ErrorIs(t, err, ErrTooShort)

	_, _, err = CheckDecode("0OIl")
	assert.Error(t, err)
}
