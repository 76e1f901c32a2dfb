package utils

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// Base58Alphabet is the Bitcoin base58 alphabet.
const Base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

const checksumLen = 4

var (
	ErrChecksumMismatch = errors.New("checksum does not validate")
	ErrTooShort         = errors.New("input too short")
)

// CheckEncode base58-encodes version || payload || checksum.
func CheckEncode(version byte, payload []byte) string {
	b := make([]byte, 0, 1+len(payload)+checksumLen)
	b = append(b, version)
	b = append(b, payload...)
	b = append(b, DoubleSHA256(b)[:checksumLen]...)
	return base58.Encode(b)
}

// CheckDecode reverses CheckEncode, verifying the checksum.
func CheckDecode(s string) (version byte, payload []byte, err error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return 0, nil, fmt.Errorf("illegal base58 input: %w", err)
	}
	if len(raw) < 1+checksumLen {
		return 0, nil, ErrTooShort
	}
	body, sum := raw[:len(raw)-checksumLen], raw[len(raw)-checksumLen:]
	if !bytes.Equal(DoubleSHA256(body)[:checksumLen], sum) {
		return 0, nil, ErrChecksumMismatch
	}
	return body[0], body[1:], nil
}
