// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/versiondb"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	log "github.com/inconshreveable/log15"
)

// MaxDepth bounds how deep returned messages may nest.
const MaxDepth = 16

// Router owns the code registry and dispatches messages to contract
// instances. Each call to Instantiate or Execute is applied atomically: either
// every write made by every contract in the message tree is committed, or
// none is.
type Router struct {
	db    database.Database
	codes *codeTable
}

type codeTable struct {
	l     sync.RWMutex
	codes map[uint64]Contract
}

func NewRouter(db database.Database) *Router {
	return &Router{
		db:    db,
		codes: &codeTable{codes: make(map[uint64]Contract)},
	}
}

// At returns a router over [db] that shares the code registry of [r]. It is
// used to group several invocations into one outer batch.
func (r *Router) At(db database.Database) *Router {
	return &Router{db: db, codes: r.codes}
}

func (r *Router) RegisterCode(id uint64, c Contract) error {
	if id == 0 {
		return ErrInvalidCodeID
	}
	r.codes.l.Lock()
	defer r.codes.l.Unlock()

	if _, ok := r.codes.codes[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateCode, id)
	}
	r.codes.codes[id] = c
	return nil
}

func (r *Router) code(id uint64) (Contract, error) {
	r.codes.l.RLock()
	defer r.codes.l.RUnlock()

	c, ok := r.codes.codes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrCodeNotFound, id)
	}
	return c, nil
}

// InstanceAddress derives the address of the [seq]th instance.
func InstanceAddress(creator common.Address, codeID uint64, seq uint64) common.Address {
	b := make([]byte, common.AddressLength+16)
	copy(b, creator[:])
	binary.BigEndian.PutUint64(b[common.AddressLength:], codeID)
	binary.BigEndian.PutUint64(b[common.AddressLength+8:], seq)
	return common.BytesToAddress(ethcrypto.Keccak256(b)[12:])
}

// Instantiate creates a new instance of [codeID] on behalf of [sender].
func (r *Router) Instantiate(
	sender common.Address,
	codeID uint64,
	label string,
	payload []byte,
) (common.Address, *Result, error) {
	msg := Msg{Typ: Instantiate, CodeID: codeID, Label: label, Payload: payload}
	res, err := r.apply(sender, msg)
	if err != nil {
		return common.Address{}, nil, err
	}
	return res.Instantiated[0], res, nil
}

// Execute sends [payload] to [contract] on behalf of [sender].
func (r *Router) Execute(sender common.Address, contract common.Address, payload []byte) (*Result, error) {
	return r.apply(sender, Msg{Typ: Execute, Contract: contract, Payload: payload})
}

// Query runs a read-only query against committed state.
func (r *Router) Query(contract common.Address, payload []byte) ([]byte, error) {
	return query(r, r.db, contract, payload)
}

// Instance returns the record kept for [addr].
func (r *Router) Instance(addr common.Address) (*Instance, bool, error) {
	return GetInstance(r.db, addr)
}

func (r *Router) apply(sender common.Address, msg Msg) (*Result, error) {
	vdb := versiondb.New(r.db)
	inv := &invocation{r: r, db: vdb, result: &Result{}}
	if err := inv.dispatch(sender, msg, 0); err != nil {
		vdb.Abort()
		log.Debug("invocation aborted", "type", msg.Typ, "sender", sender, "err", err)
		return nil, err
	}
	if err := vdb.Commit(); err != nil {
		return nil, err
	}
	log.Debug("invocation committed", "type", msg.Typ, "sender", sender, "events", len(inv.result.Events))
	return inv.result, nil
}

func query(r *Router, db database.Database, contract common.Address, payload []byte) ([]byte, error) {
	i, exists, err := GetInstance(db, contract)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrContractNotFound, contract)
	}
	c, err := r.code(i.CodeID)
	if err != nil {
		return nil, err
	}
	return c.Query(&QueryContext{
		Contract: contract,
		DB:       ContractDB(db, contract),
		Querier:  &querier{r: r, db: db},
	}, payload)
}

type querier struct {
	r  *Router
	db database.Database
}

func (q *querier) Query(contract common.Address, payload []byte) ([]byte, error) {
	return query(q.r, q.db, contract, payload)
}

// invocation is a single top-level message and everything it triggers.
type invocation struct {
	r      *Router
	db     *versiondb.Database
	result *Result
}

func (inv *invocation) dispatch(sender common.Address, msg Msg, depth int) error {
	if depth > MaxDepth {
		return ErrDepthExceeded
	}
	if err := msg.Verify(); err != nil {
		return err
	}

	var (
		contract common.Address
		resp     *Response
		err      error
	)
	switch msg.Typ {
	case Execute:
		contract = msg.Contract
		resp, err = inv.execute(sender, contract, msg.Payload)
	case Instantiate:
		contract, resp, err = inv.instantiate(sender, msg.CodeID, msg.Label, msg.Payload)
	default:
		return ErrInvalidMsgType
	}
	if err != nil {
		return err
	}
	if resp == nil {
		resp = &Response{}
	}
	inv.result.Events = append(inv.result.Events, Event{Contract: contract, Attributes: resp.Attributes})
	if depth == 0 {
		inv.result.Data = resp.Data
	}

	// The handling contract is the sender of everything it returns.
	for _, next := range resp.Messages {
		if err := inv.dispatch(contract, next, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (inv *invocation) execute(sender common.Address, contract common.Address, payload []byte) (*Response, error) {
	i, exists, err := GetInstance(inv.db, contract)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrContractNotFound, contract)
	}
	c, err := inv.r.code(i.CodeID)
	if err != nil {
		return nil, err
	}
	return c.Execute(inv.context(sender, contract), payload)
}

func (inv *invocation) instantiate(
	sender common.Address,
	codeID uint64,
	label string,
	payload []byte,
) (common.Address, *Response, error) {
	c, err := inv.r.code(codeID)
	if err != nil {
		return common.Address{}, nil, err
	}
	seq, err := NextSequence(inv.db)
	if err != nil {
		return common.Address{}, nil, err
	}
	addr := InstanceAddress(sender, codeID, seq)
	if err := PutInstance(inv.db, addr, &Instance{CodeID: codeID, Creator: sender, Label: label}); err != nil {
		return common.Address{}, nil, err
	}
	inv.result.Instantiated = append(inv.result.Instantiated, addr)

	resp, err := c.Instantiate(inv.context(sender, addr), payload)
	if err != nil {
		return common.Address{}, nil, err
	}
	return addr, resp, nil
}

func (inv *invocation) context(sender common.Address, contract common.Address) *Context {
	return &Context{
		Env:     Env{Sender: sender, Contract: contract},
		DB:      ContractDB(inv.db, contract),
		Querier: &querier{r: inv.r, db: inv.db},
	}
}
