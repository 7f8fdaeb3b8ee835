// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gateway

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/ava-labs/gatewayvm/codec"
	"github.com/ava-labs/gatewayvm/crypto"
	"github.com/ava-labs/gatewayvm/registry"
)

var (
	configKey = []byte("config")

	// RegistryPrefix scopes the gateway's deferred registration table.
	RegistryPrefix = []byte("contract_addresses")
)

// Config is the authorization state of a gateway.
type Config struct {
	// Owner may call the direct entry points.
	Owner common.Address `serialize:"true" json:"owner"`
	// PublicKey must have signed every batch relayed through execute_signed.
	// It is stored exactly as submitted.
	PublicKey hexutil.Bytes `serialize:"true" json:"public_key"`
	// Verifier is the address of the signature verification service.
	Verifier common.Address `serialize:"true" json:"verifier"`
	// Nonce is the number of signed batches accepted since the last owner
	// update.
	Nonce uint64 `serialize:"true" json:"nonce"`
	// Mutable is cleared by Freeze and never set again.
	Mutable bool `serialize:"true" json:"mutable"`
}

func NewConfig(owner common.Address, publicKey []byte, verifier common.Address) (*Config, error) {
	c := &Config{Verifier: verifier, Mutable: true}
	if err := c.setOwner(owner, publicKey); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) setOwner(owner common.Address, publicKey []byte) error {
	if err := crypto.ValidatePublicKey(publicKey); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	c.Owner = owner
	c.PublicKey = append([]byte{}, publicKey...)
	c.Nonce = 0
	return nil
}

func (c *Config) Copy() *Config {
	cc := *c
	cc.PublicKey = append([]byte{}, c.PublicKey...)
	return &cc
}

func (c *Config) Frozen() bool {
	return !c.Mutable
}

// IsOwner allows the stored owner and the gateway itself, so batches relayed
// by the gateway may manage it.
func (c *Config) IsOwner(caller common.Address, self common.Address) bool {
	return caller == self || caller == c.Owner
}

// UpdateOwner replaces the owner and key and restarts the nonce at zero.
//
// Restarting the nonce means signatures issued to an earlier owner for low
// nonces become valid again if that owner and key are ever reinstated.
func (c *Config) UpdateOwner(caller, self, owner common.Address, publicKey []byte) error {
	if !c.IsOwner(caller, self) {
		return ErrUnauthorized
	}
	if c.Frozen() {
		return ErrFrozen
	}
	return c.setOwner(owner, publicKey)
}

func (c *Config) Freeze(caller, self common.Address) error {
	if !c.IsOwner(caller, self) {
		return ErrUnauthorized
	}
	if c.Frozen() {
		return ErrAlreadyFrozen
	}
	c.Mutable = false
	return nil
}

func (c *Config) IncrementNonce() error {
	if c.Nonce == ^uint64(0) {
		return ErrNonceOverflow
	}
	c.Nonce++
	return nil
}

func GetConfig(db database.KeyValueReader) (*Config, error) {
	v, err := db.Get(configKey)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotConfigured
	}
	if err != nil {
		return nil, err
	}
	var c Config
	if _, err := codec.Unmarshal(v, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func PutConfig(db database.KeyValueWriter, c *Config) error {
	b, err := codec.Marshal(c)
	if err != nil {
		return err
	}
	return db.Put(configKey, b)
}

// Registry opens the gateway's registration table in [db].
func Registry(db database.Database) *registry.Table {
	return registry.New(db, RegistryPrefix)
}
