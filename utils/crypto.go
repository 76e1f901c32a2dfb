package utils

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/ripemd160"
)

// DoubleSHA256 returns SHA-256(SHA-256(b)).
func DoubleSHA256(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

// Hash160 returns RIPEMD-160(SHA-256(b)), the hash used for public key and
// script hashes in addresses.
func Hash160(b []byte) []byte {
	sha := sha256.Sum256(b)
	h := ripemd160.New()
	h.Write(sha[:])
	return h.Sum(nil)
}

// PrivateKeyFromBytes parses a 32-byte secp256k1 scalar.
func PrivateKeyFromBytes(d []byte) (*ecdsa.PrivateKey, error) {
	if len(d) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(d))
	}
	key, err := crypto.ToECDSA(d)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}

// SerializePublicKey encodes a secp256k1 public key in SEC1 form.
func SerializePublicKey(pub *ecdsa.PublicKey, compressed bool) []byte {
	if compressed {
		return crypto.CompressPubkey(pub)
	}
	return crypto.FromECDSAPub(pub)
}

// PublicKeyHash derives the HASH160 of a private key's public key.
func PublicKeyHash(key *ecdsa.PrivateKey, compressed bool) []byte {
	return Hash160(SerializePublicKey(&key.PublicKey, compressed))
}
