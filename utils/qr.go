package utils

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
)

const (
	qrFlagCompressed   = 'Z'
	qrFlagUncompressed = '-'
)

// MaxDecompressedSize bounds the body of a compressed QR payload.
const MaxDecompressedSize = 1000000

var ErrPayloadTooLarge = fmt.Errorf("decompressed payload exceeds %d bytes", MaxDecompressedSize)

// DecodeBinary reverses the QR compaction of a binary payload.
func DecodeBinary(content string) ([]byte, error) {
	return DecodeBase43(content)
}

// EncodeBinary compacts a binary payload for a QR code.
func EncodeBinary(b []byte) string {
	return EncodeBase43(b)
}

// DecodeDecompressBinary decodes a flagged QR payload. A leading 'Z' marks a
// gzip-compressed body; any other flag character marks a raw body.
func DecodeDecompressBinary(content string) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("empty QR payload")
	}

	raw, err := DecodeBase43(content[1:])
	if err != nil {
		return nil, err
	}
	if content[0] != qrFlagCompressed {
		return raw, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to open compressed payload: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, MaxDecompressedSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress payload: %w", err)
	}
	if len(out) > MaxDecompressedSize {
		return nil, ErrPayloadTooLarge
	}
	return out, nil
}

// EncodeCompressBinary produces the flagged form read by DecodeDecompressBinary,
// compressing only when that makes the payload shorter.
func EncodeCompressBinary(b []byte) (string, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(b); err != nil {
		return "", fmt.Errorf("failed to compress payload: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to compress payload: %w", err)
	}

	if buf.Len() < len(b) {
		return string(qrFlagCompressed) + EncodeBase43(buf.Bytes()), nil
	}
	return string(qrFlagUncompressed) + EncodeBase43(b), nil
}
