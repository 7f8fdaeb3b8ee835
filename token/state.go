// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import (
	"encoding/binary"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ethereum/go-ethereum/common"

	"github.com/ava-labs/gatewayvm/codec"
)

var (
	infoKey       = []byte("token_info")
	balancePrefix = []byte("balance")
)

// Info describes the token and its mint authority.
type Info struct {
	Name        string         `serialize:"true" json:"name"`
	Symbol      string         `serialize:"true" json:"symbol"`
	Decimals    uint8          `serialize:"true" json:"decimals"`
	TotalSupply uint64         `serialize:"true" json:"total_supply"`
	Minter      common.Address `serialize:"true" json:"minter"`
	// Cap is the largest total supply minting may reach. Zero means no cap.
	Cap uint64 `serialize:"true" json:"cap"`
}

func getInfo(db database.KeyValueReader) (*Info, error) {
	v, err := db.Get(infoKey)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotInitialized
	}
	if err != nil {
		return nil, err
	}
	var i Info
	if _, err := codec.Unmarshal(v, &i); err != nil {
		return nil, err
	}
	return &i, nil
}

func putInfo(db database.KeyValueWriter, i *Info) error {
	b, err := codec.Marshal(i)
	if err != nil {
		return err
	}
	return db.Put(infoKey, b)
}

func balances(db database.Database) database.Database {
	return prefixdb.New(balancePrefix, db)
}

func getBalance(db database.KeyValueReader, addr common.Address) (uint64, error) {
	v, err := db.Get(addr[:])
	switch {
	case errors.Is(err, database.ErrNotFound):
		return 0, nil
	case err != nil:
		return 0, err
	default:
		return binary.BigEndian.Uint64(v), nil
	}
}

func putBalance(db database.KeyValueWriter, addr common.Address, amount uint64) error {
	if amount == 0 {
		return db.Delete(addr[:])
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, amount)
	return db.Put(addr[:], b)
}

func credit(db database.Database, addr common.Address, amount uint64) error {
	bal, err := getBalance(db, addr)
	if err != nil {
		return err
	}
	if bal+amount < bal {
		return ErrOverflow
	}
	return putBalance(db, addr, bal+amount)
}

func debit(db database.Database, addr common.Address, amount uint64) error {
	bal, err := getBalance(db, addr)
	if err != nil {
		return err
	}
	if bal < amount {
		return ErrInsufficientFund
	}
	return putBalance(db, addr, bal-amount)
}
