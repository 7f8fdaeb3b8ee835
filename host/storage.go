// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"encoding/binary"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ethereum/go-ethereum/common"

	"github.com/ava-labs/gatewayvm/codec"
)

// 0x0/ (instances)
//   -> [address] => instance
// 0x1/ (contract storage)
//   -> [address] => prefixed contract keys
// 0x2/ (instance sequence)

const (
	instancePrefix = 0x0
	storagePrefix  = 0x1
	sequencePrefix = 0x2

	ByteDelimiter byte = '/'
)

// Instance is the record kept for every instantiated contract.
type Instance struct {
	CodeID  uint64         `serialize:"true" json:"codeId"`
	Creator common.Address `serialize:"true" json:"creator"`
	Label   string         `serialize:"true" json:"label"`
}

func InstanceKey(addr common.Address) []byte {
	return append([]byte{instancePrefix, ByteDelimiter}, addr[:]...)
}

func StoragePrefix(addr common.Address) []byte {
	return append([]byte{storagePrefix, ByteDelimiter}, addr[:]...)
}

func SequenceKey() []byte {
	return []byte{sequencePrefix}
}

func ContractDB(db database.Database, addr common.Address) database.Database {
	return prefixdb.New(StoragePrefix(addr), db)
}

func GetInstance(db database.KeyValueReader, addr common.Address) (*Instance, bool, error) {
	k := InstanceKey(addr)
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
	var i Instance
	if _, err := codec.Unmarshal(v, &i); err != nil {
		return nil, false, err
	}
	return &i, true, nil
}

func PutInstance(db database.KeyValueWriter, addr common.Address, i *Instance) error {
	b, err := codec.Marshal(i)
	if err != nil {
		return err
	}
	return db.Put(InstanceKey(addr), b)
}

// NextSequence returns the current instance sequence and increments it.
func NextSequence(db database.Database) (uint64, error) {
	k := SequenceKey()
	v, err := db.Get(k)
	var seq uint64
	switch {
	case errors.Is(err, database.ErrNotFound):
	case err != nil:
		return 0, err
	default:
		seq = binary.BigEndian.Uint64(v)
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq+1)
	return seq, db.Put(k, b)
}
