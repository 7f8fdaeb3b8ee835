// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package host implements the execution environment contracts run in.
//
// The host is the only party that sets [Env.Sender]. A contract that is being
// instantiated runs with [Env.Contract] set to its freshly derived address and
// every message it returns is dispatched with that address as the sender, so a
// callback issued from a child's initialization carries the child's address as
// an identity no other party can claim. Contracts that accept such callbacks
// (deferred registration) rely on this and nothing else.
package host

import (
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ethereum/go-ethereum/common"
)

// Env describes who invoked a contract.
type Env struct {
	// Sender is the address of the account or contract that sent the message.
	Sender common.Address `json:"sender"`
	// Contract is the address of the contract handling the message.
	Contract common.Address `json:"contract"`
}

// Context is handed to state mutating entry points.
type Context struct {
	Env Env
	// DB is scoped to the contract. Writes only land if the whole invocation
	// succeeds.
	DB      database.Database
	Querier Querier
}

// QueryContext is handed to read-only entry points.
type QueryContext struct {
	Contract common.Address
	DB       database.Database
	Querier  Querier
}

// Querier performs a synchronous read against another contract.
type Querier interface {
	Query(contract common.Address, payload []byte) ([]byte, error)
}

// Contract is the code behind every instance. Implementations keep no state
// of their own; everything lives in the database they are handed.
type Contract interface {
	Instantiate(ctx *Context, payload []byte) (*Response, error)
	Execute(ctx *Context, payload []byte) (*Response, error)
	Query(ctx *QueryContext, payload []byte) ([]byte, error)
}

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func Attr(key string, value interface{}) Attribute {
	return Attribute{Key: key, Value: fmt.Sprint(value)}
}

// Response is returned by a successful handler. Messages are dispatched in
// order after the handler returns, with the handling contract as sender.
type Response struct {
	Messages   []Msg       `json:"messages"`
	Attributes []Attribute `json:"attributes"`
	Data       []byte      `json:"data,omitempty"`
}

type Event struct {
	Contract   common.Address `json:"contract"`
	Attributes []Attribute    `json:"attributes"`
}

// Result collects everything a committed invocation produced.
type Result struct {
	Events       []Event          `json:"events"`
	Instantiated []common.Address `json:"instantiated"`
	Data         []byte           `json:"data,omitempty"`
}
