package utils

import (
	"errors"
	"fmt"
	"math/big"
)

// Base43Alphabet is the QR alphanumeric-mode alphabet minus the space.
const Base43Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ$*+-./:"

var ErrInvalidBase43 = errors.New("illegal base43 input")

var (
	base43Radix   = big.NewInt(int64(len(Base43Alphabet)))
	base43Indexes [256]int8
)

func init() {
	for i := range base43Indexes {
		base43Indexes[i] = -1
	}
	for i := 0; i < len(Base43Alphabet); i++ {
		base43Indexes[Base43Alphabet[i]] = int8(i)
	}
}

// EncodeBase43 encodes b, keeping one leading '0' per leading zero byte.
func EncodeBase43(b []byte) string {
	zeros := 0
	for zeros < len(b) && b[zeros] == 0 {
		zeros++
	}

	n := new(big.Int).SetBytes(b[zeros:])
	mod := new(big.Int)
	var digits []byte
	for n.Sign() > 0 {
		n.DivMod(n, base43Radix, mod)
		digits = append(digits, Base43Alphabet[mod.Int64()])
	}

	out := make([]byte, 0, zeros+len(digits))
	for i := 0; i < zeros; i++ {
		out = append(out, Base43Alphabet[0])
	}
	for i := len(digits) - 1; i >= 0; i-- {
		out = append(out, digits[i])
	}
	return string(out)
}

// DecodeBase43 reverses EncodeBase43.
func DecodeBase43(s string) ([]byte, error) {
	zeros := 0
	for zeros < len(s) && s[zeros] == Base43Alphabet[0] {
		zeros++
	}

	n := new(big.Int)
	for i := zeros; i < len(s); i++ {
		d := base43Indexes[s[i]]
		if d < 0 {
			return nil, fmt.Errorf("%w: character %q at position %d", ErrInvalidBase43, s[i], i)
		}
		n.Mul(n, base43Radix)
		n.Add(n, big.NewInt(int64(d)))
	}

	rest := n.Bytes()
	out := make([]byte, zeros, zeros+len(rest))
	return append(out, rest...), nil
}
