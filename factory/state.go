// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factory

import (
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ethereum/go-ethereum/common"

	"github.com/ava-labs/gatewayvm/codec"
	"github.com/ava-labs/gatewayvm/registry"
)

var (
	configKey = []byte("owner")

	// RegistryPrefix scopes the factory's token table.
	RegistryPrefix = []byte("token_addresses")
)

type Config struct {
	Owner       common.Address `serialize:"true" json:"owner"`
	TokenCodeID uint64         `serialize:"true" json:"token_code_id"`
}

func GetConfig(db database.KeyValueReader) (*Config, error) {
	v, err := db.Get(configKey)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotInitialized
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

func Registry(db database.Database) *registry.Table {
	return registry.New(db, RegistryPrefix)
}
