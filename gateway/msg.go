// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/ava-labs/gatewayvm/host"
)

type InitMsg struct {
	Owner     common.Address `json:"owner"`
	PublicKey hexutil.Bytes  `json:"public_key"`
	Verifier  common.Address `json:"verifier"`
}

// HandleMsg is decoded from externally tagged JSON, e.g.
//   {"execute_signed": {"msgs": [...], "sig": "0x..", "register": ["name"]}}
// Exactly one field may be set.
type HandleMsg struct {
	Execute       *ExecuteMsg       `json:"execute,omitempty"`
	ExecuteSigned *ExecuteSignedMsg `json:"execute_signed,omitempty"`
	Register      *RegisterMsg      `json:"register,omitempty"`
	UpdateOwner   *UpdateOwnerMsg   `json:"update_owner,omitempty"`
	Freeze        *FreezeMsg        `json:"freeze,omitempty"`
}

// ExecuteMsg relays [Msgs] on the owner's direct authority.
type ExecuteMsg struct {
	Msgs []host.Msg `json:"msgs"`
	// Register reserves a name for every child the batch instantiates.
	Register []string `json:"register,omitempty"`
}

// ExecuteSignedMsg relays [Msgs] for anyone holding the owner's signature
// over their digest at the current nonce.
type ExecuteSignedMsg struct {
	Msgs     []host.Msg    `json:"msgs"`
	Sig      hexutil.Bytes `json:"sig"`
	Register []string      `json:"register,omitempty"`
}

// RegisterMsg is sent back by an instantiated child.
type RegisterMsg struct {
	Name string `json:"name"`
}

type UpdateOwnerMsg struct {
	Owner     common.Address `json:"owner"`
	PublicKey hexutil.Bytes  `json:"public_key"`
}

type FreezeMsg struct{}

// Action returns the single variant set on [m].
func (m *HandleMsg) Action() (interface{}, error) {
	var (
		action interface{}
		set    int
	)
	if m.Execute != nil {
		action, set = m.Execute, set+1
	}
	if m.ExecuteSigned != nil {
		action, set = m.ExecuteSigned, set+1
	}
	if m.Register != nil {
		action, set = m.Register, set+1
	}
	if m.UpdateOwner != nil {
		action, set = m.UpdateOwner, set+1
	}
	if m.Freeze != nil {
		action, set = m.Freeze, set+1
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: %d variants set", ErrInvalidMsg, set)
	}
	return action, nil
}

func decodeHandleMsg(b []byte) (interface{}, error) {
	var m HandleMsg
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMsg, err)
	}
	return m.Action()
}

type QueryMsg struct {
	Config          *struct{}             `json:"config,omitempty"`
	ContractAddress *ContractAddressQuery `json:"contract_address,omitempty"`
	CanExecute      *CanExecuteQuery      `json:"can_execute,omitempty"`
	Digest          *DigestQuery          `json:"digest,omitempty"`
}

type ContractAddressQuery struct {
	Name string `json:"name"`
}

type CanExecuteQuery struct {
	Msgs []host.Msg    `json:"msgs"`
	Sig  hexutil.Bytes `json:"sig"`
}

type DigestQuery struct {
	Msgs []host.Msg `json:"msgs"`
}

type ContractAddressResponse struct {
	ContractAddr common.Address `json:"contract_addr"`
}

type CanExecuteResponse struct {
	CanExecute bool `json:"can_execute"`
}

type DigestResponse struct {
	Nonce  uint64        `json:"nonce"`
	Digest hexutil.Bytes `json:"digest"`
}
