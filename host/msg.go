// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ava-labs/gatewayvm/codec"
)

const (
	Execute     = "execute"
	Instantiate = "instantiate"

	MaxLabelSize = 128
)

var zeroAddress = common.Address{}

// Msg is an action a contract (or an account) asks the host to perform.
type Msg struct {
	Typ string `serialize:"true" json:"type"`

	// Contract is the target of an execute message.
	Contract common.Address `serialize:"true" json:"contract"`

	// CodeID and Label describe an instantiate message.
	CodeID uint64 `serialize:"true" json:"codeId"`
	Label  string `serialize:"true" json:"label"`

	// Payload is the JSON message handed to the target contract.
	Payload json.RawMessage `serialize:"true" json:"payload"`
}

func NewExecuteMsg(contract common.Address, payload interface{}) (Msg, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Msg{}, err
	}
	return Msg{Typ: Execute, Contract: contract, Payload: b}, nil
}

func NewInstantiateMsg(codeID uint64, label string, payload interface{}) (Msg, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Msg{}, err
	}
	return Msg{Typ: Instantiate, CodeID: codeID, Label: label, Payload: b}, nil
}

func (m *Msg) Verify() error {
	switch m.Typ {
	case Execute:
		if m.Contract == zeroAddress {
			return ErrInvalidContract
		}
	case Instantiate:
		if m.CodeID == 0 {
			return ErrInvalidCodeID
		}
		if len(m.Label) > MaxLabelSize {
			return ErrLabelTooBig
		}
	default:
		return ErrInvalidMsgType
	}
	return nil
}

// Bytes returns the canonical encoding of the message.
func (m *Msg) Bytes() ([]byte, error) {
	return codec.Marshal(m)
}

// InitHook is a message an instantiated contract sends once it is set up.
// The host delivers it with the new contract as sender.
type InitHook struct {
	ContractAddr common.Address  `json:"contract_addr"`
	Msg          json.RawMessage `json:"msg"`
}

func NewInitHook(contract common.Address, payload interface{}) (*InitHook, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &InitHook{ContractAddr: contract, Msg: b}, nil
}

func (h *InitHook) ExecuteMsg() Msg {
	return Msg{Typ: Execute, Contract: h.ContractAddr, Payload: h.Msg}
}
