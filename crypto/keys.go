// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package crypto

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

func GenerateKey() (*ecdsa.PrivateKey, error) {
	return ethcrypto.GenerateKey()
}

// LoadKey reads a hex encoded private key file.
func LoadKey(path string) (*ecdsa.PrivateKey, error) {
	return ethcrypto.LoadECDSA(path)
}

// SaveKey writes [priv] hex encoded with restrictive permissions.
func SaveKey(path string, priv *ecdsa.PrivateKey) error {
	return ethcrypto.SaveECDSA(path, priv)
}

func Address(pk *ecdsa.PublicKey) common.Address {
	return ethcrypto.PubkeyToAddress(*pk)
}
