// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package verifier implements the signature verification service consulted by
// the gateway: the message is hashed with SHA-256 and the signature checked
// with ECDSA over secp256k1.
package verifier

import (
	"fmt"
	"math/big"

	"github.com/ava-labs/avalanchego/utils/hashing"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/ava-labs/gatewayvm/crypto"
)

// SchemeSecp256k1 is the only supported scheme.
const SchemeSecp256k1 = "secp256k1"

var (
	secp256k1N     = ethcrypto.S256().Params().N
	secp256k1HalfN = new(big.Int).Rsh(secp256k1N, 1)
)

// Verifier checks a signature over a message for a public key. A malformed
// request returns an error wrapping ErrMalformedInput; a well formed request
// that does not verify returns false and no error.
type Verifier interface {
	Verify(message, signature, publicKey []byte) (bool, error)
}

var _ Verifier = &Service{}

// Service is the stateless in-process verifier.
type Service struct{}

func New() *Service {
	return &Service{}
}

func (*Service) Verify(message, signature, publicKey []byte) (bool, error) {
	pk, err := crypto.ParsePublicKey(publicKey)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedPublicKey, err)
	}
	if len(signature) != crypto.SignatureLen {
		return false, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedSignature, crypto.SignatureLen, len(signature))
	}
	hash := hashing.ComputeHash256(message)
	return ethcrypto.VerifySignature(crypto.CompressPublicKey(pk), hash, normalizeS(signature)), nil
}

// ListSchemes returns the supported verification schemes.
func (*Service) ListSchemes() []string {
	return []string{SchemeSecp256k1}
}

// normalizeS maps a high-S signature to its low-S twin so either form of the
// same signature verifies.
func normalizeS(sig []byte) []byte {
	s := new(big.Int).SetBytes(sig[32:])
	if s.Cmp(secp256k1HalfN) <= 0 {
		return sig
	}
	s.Sub(secp256k1N, s)
	out := make([]byte, crypto.SignatureLen)
	copy(out, sig[:32])
	s.FillBytes(out[32:])
	return out
}
