// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package crypto

import (
	"crypto/ecdsa"

	"github.com/ava-labs/avalanchego/utils/hashing"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

const (
	vOffset      = 64
	legacySigAdj = 27
)

// SignDigest produces the 64-byte signature the verification service accepts
// for [message]: the message is hashed with SHA-256 before signing.
func SignDigest(message []byte, priv *ecdsa.PrivateKey) ([]byte, error) {
	sig, err := ethcrypto.Sign(hashing.ComputeHash256(message), priv)
	if err != nil {
		return nil, err
	}
	return sig[:SignatureLen], nil
}

// Sign produces a recoverable signature over [dh] with the legacy V offset.
func Sign(dh []byte, priv *ecdsa.PrivateKey) ([]byte, error) {
	sig, err := ethcrypto.Sign(dh, priv)
	if err != nil {
		return nil, err
	}
	sig[vOffset] += legacySigAdj
	return sig, nil
}

// DeriveSender recovers the public key that produced [sig] over [dh].
func DeriveSender(dh []byte, sig []byte) (*ecdsa.PublicKey, error) {
	if len(sig) != ethcrypto.SignatureLength {
		return nil, ErrInvalidSignature
	}
	// Avoid modifying the signature in place in case it is used elsewhere
	sigcpy := make([]byte, ethcrypto.SignatureLength)
	copy(sigcpy, sig)

	// Support signers that don't apply offset (ex: ledger)
	if sigcpy[vOffset] >= legacySigAdj {
		sigcpy[vOffset] -= legacySigAdj
	}
	return ethcrypto.SigToPub(dh, sigcpy)
}
