// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/ava-labs/gatewayvm/crypto"
)

const (
	GatewayCodeID  uint64 = 1
	VerifierCodeID uint64 = 2
	TokenCodeID    uint64 = 3
	FactoryCodeID  uint64 = 4

	// FactoryName is the name the token factory registers under on the
	// gateway.
	FactoryName = "token_factory"

	defaultMagic = 1
)

var (
	ErrMissingOwner = errors.New("genesis owner is missing")
	ErrInvalidMagic = errors.New("genesis magic must be non-zero")
)

type Genesis struct {
	// Magic separates transactions issued for different chains.
	Magic uint64 `serialize:"true" json:"magic"`

	// Owner and OwnerPublicKey seed the gateway's authorization state.
	Owner          common.Address `serialize:"true" json:"owner"`
	OwnerPublicKey hexutil.Bytes  `serialize:"true" json:"ownerPublicKey"`
}

func DefaultGenesis() *Genesis {
	return &Genesis{Magic: defaultMagic}
}

func (g *Genesis) Verify() error {
	if g.Magic == 0 {
		return ErrInvalidMagic
	}
	if g.Owner == (common.Address{}) {
		return ErrMissingOwner
	}
	if err := crypto.ValidatePublicKey(g.OwnerPublicKey); err != nil {
		return fmt.Errorf("owner public key: %w", err)
	}
	return nil
}

func ParseGenesis(b []byte) (*Genesis, error) {
	g := DefaultGenesis()
	if err := json.Unmarshal(b, g); err != nil {
		return nil, err
	}
	if err := g.Verify(); err != nil {
		return nil, err
	}
	return g, nil
}
