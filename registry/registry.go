// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry implements the deferred address registration table.
//
// A component that instantiates a child cannot learn the child's address in
// the same step, so it first reserves the child's name (Pending) and the child
// later confirms it by calling back with its own address as the caller
// (Confirmed). Entries only move forward: Unknown -> Pending -> Confirmed.
package registry

import (
	"bytes"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ethereum/go-ethereum/common"
)

// MaxNameSize is the longest name that may be reserved.
const MaxNameSize = 256

type Status byte

const (
	Unknown Status = iota
	Pending
	Confirmed
)

func (s Status) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Pending:
		return "pending"
	case Confirmed:
		return "confirmed"
	default:
		return fmt.Sprintf("status(%d)", byte(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "unknown":
		*s = Unknown
	case "pending":
		*s = Pending
	case "confirmed":
		*s = Confirmed
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, b)
	}
	return nil
}

// sentinel marks a reserved but unconfirmed entry.
var sentinel = common.Address{}

// Entry is a single row of the table.
type Entry struct {
	Name    string         `json:"name"`
	Address common.Address `json:"address"`
	Status  Status         `json:"status"`
}

// Table is a name -> address table stored under its own prefix.
type Table struct {
	db database.Database
}

func New(db database.Database, prefix []byte) *Table {
	return &Table{db: prefixdb.New(prefix, db)}
}

func checkName(name string) error {
	if len(name) == 0 {
		return ErrInvalidName
	}
	if len(name) > MaxNameSize {
		return fmt.Errorf("%w: %d bytes", ErrNameTooBig, len(name))
	}
	return nil
}

func (t *Table) get(name string) (common.Address, Status, error) {
	k := []byte(name)
	has, err := t.db.Has(k)
	if err != nil {
		return common.Address{}, Unknown, err
	}
	if !has {
		return common.Address{}, Unknown, nil
	}
	v, err := t.db.Get(k)
	if err != nil {
		return common.Address{}, Unknown, err
	}
	return decode(v)
}

func decode(v []byte) (common.Address, Status, error) {
	if len(v) != common.AddressLength {
		return common.Address{}, Unknown, fmt.Errorf("%w: %d byte entry", ErrCorruption, len(v))
	}
	if bytes.Equal(v, sentinel[:]) {
		return common.Address{}, Pending, nil
	}
	return common.BytesToAddress(v), Confirmed, nil
}

// Status reports the lifecycle state of [name].
func (t *Table) Status(name string) (Status, error) {
	if err := checkName(name); err != nil {
		return Unknown, err
	}
	_, s, err := t.get(name)
	return s, err
}

// Begin reserves [name]. It fails unless the name is Unknown.
func (t *Table) Begin(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	_, s, err := t.get(name)
	if err != nil {
		return err
	}
	if s != Unknown {
		return fmt.Errorf("%w: %q is %s", ErrAlreadyExists, name, s)
	}
	return t.db.Put([]byte(name), sentinel[:])
}

// Confirm fills in a Pending reservation with [caller]. The caller must be the
// identity supplied by the host for the current message, never a value read
// from the message payload.
func (t *Table) Confirm(name string, caller common.Address) error {
	if err := checkName(name); err != nil {
		return err
	}
	if caller == sentinel {
		return ErrInvalidCaller
	}
	_, s, err := t.get(name)
	if err != nil {
		return err
	}
	switch s {
	case Pending:
	case Confirmed:
		return fmt.Errorf("%w: %q", ErrAlreadyRegistered, name)
	default:
		return fmt.Errorf("%w: %q has no reservation", ErrNotPending, name)
	}
	return t.db.Put([]byte(name), caller[:])
}

// Lookup returns the confirmed address of [name]. A Pending name yields the
// zero address and no error; an Unknown name yields ErrNotFound.
func (t *Table) Lookup(name string) (common.Address, error) {
	if err := checkName(name); err != nil {
		return common.Address{}, err
	}
	addr, s, err := t.get(name)
	if err != nil {
		return common.Address{}, err
	}
	if s == Unknown {
		return common.Address{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return addr, nil
}

// Entries lists every reserved name in byte order.
func (t *Table) Entries() ([]*Entry, error) {
	it := t.db.NewIterator()
	defer it.Release()

	entries := []*Entry{}
	for it.Next() {
		addr, s, err := decode(it.Value())
		if err != nil {
			return nil, err
		}
		entries = append(entries, &Entry{
			Name:    string(it.Key()),
			Address: addr,
			Status:  s,
		})
	}
	return entries, it.Error()
}
