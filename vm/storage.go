// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"encoding/binary"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"

	"github.com/ava-labs/gatewayvm/codec"
	"github.com/ava-labs/gatewayvm/host"
)

// 0x0/ (sender sequences)
//   -> [address] => next sequence
// 0x1/ (accepted txs)
//   -> [txID] => tx bytes
// 0x2 (well known addresses)

const (
	sequencePrefix = 0x0
	txPrefix       = 0x1
	addressesKey   = 0x2
)

var vmPrefix = []byte("gatewayvm")

// Addresses are the contracts created when the chain first boots.
type Addresses struct {
	Verifier common.Address `serialize:"true" json:"verifier"`
	Gateway  common.Address `serialize:"true" json:"gateway"`
	Factory  common.Address `serialize:"true" json:"factory"`
}

func stateDB(db database.Database) database.Database {
	return prefixdb.New(vmPrefix, db)
}

func SequenceKey(addr common.Address) []byte {
	return append([]byte{sequencePrefix, host.ByteDelimiter}, addr[:]...)
}

func TxKey(txID ids.ID) []byte {
	return append([]byte{txPrefix, host.ByteDelimiter}, txID[:]...)
}

// GetSequence returns the sequence the next transaction from [addr] must use.
func GetSequence(db database.KeyValueReader, addr common.Address) (uint64, error) {
	v, err := db.Get(SequenceKey(addr))
	switch {
	case errors.Is(err, database.ErrNotFound):
		return 0, nil
	case err != nil:
		return 0, err
	default:
		return binary.BigEndian.Uint64(v), nil
	}
}

func PutSequence(db database.KeyValueWriter, addr common.Address, seq uint64) error {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return db.Put(SequenceKey(addr), b)
}

func SetTransaction(db database.KeyValueWriter, tx *Transaction) error {
	return db.Put(TxKey(tx.ID()), tx.Bytes())
}

func HasTransaction(db database.KeyValueReader, txID ids.ID) (bool, error) {
	return db.Has(TxKey(txID))
}

func GetAddresses(db database.KeyValueReader) (*Addresses, bool, error) {
	k := []byte{addressesKey}
	has, err := db.Has(k)
	if err != nil {
		return nil, false, err
	}
	if !has {
		return nil, false, nil
	}
	v, err := db.Get(k)
	if err != nil {
		return nil, false, err
	}
	var a Addresses
	if _, err := codec.Unmarshal(v, &a); err != nil {
		return nil, false, err
	}
	return &a, true, nil
}

func PutAddresses(db database.KeyValueWriter, a *Addresses) error {
	b, err := codec.Marshal(a)
	if err != nil {
		return err
	}
	return db.Put([]byte{addressesKey}, b)
}
