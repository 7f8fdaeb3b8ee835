// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package crypto implements the secp256k1 key and signature helpers shared by
// the gateway, the verification service and the host transaction format.
package crypto

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

const (
	// CompressedPublicKeyLen is the size of a SEC1 compressed point.
	CompressedPublicKeyLen = 33
	// UncompressedPublicKeyLen is the size of a SEC1 uncompressed point.
	UncompressedPublicKeyLen = 65
	// SignatureLen is the size of a [R || S] signature.
	SignatureLen = 64
)

var (
	ErrInvalidPublicKey = errors.New("invalid public key")
	ErrInvalidSignature = errors.New("invalid signature")
)

// ParsePublicKey decodes a compressed or uncompressed secp256k1 point.
func ParsePublicKey(b []byte) (*ecdsa.PublicKey, error) {
	var (
		pk  *ecdsa.PublicKey
		err error
	)
	switch len(b) {
	case CompressedPublicKeyLen:
		pk, err = ethcrypto.DecompressPubkey(b)
	case UncompressedPublicKeyLen:
		pk, err = ethcrypto.UnmarshalPubkey(b)
	default:
		return nil, fmt.Errorf("%w: unexpected length %d", ErrInvalidPublicKey, len(b))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return pk, nil
}

// ValidatePublicKey reports whether b decodes as a secp256k1 point.
func ValidatePublicKey(b []byte) error {
	_, err := ParsePublicKey(b)
	return err
}

func CompressPublicKey(pk *ecdsa.PublicKey) []byte {
	return ethcrypto.CompressPubkey(pk)
}
