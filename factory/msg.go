// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factory

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/ava-labs/gatewayvm/host"
)

type InitMsg struct {
	TokenCodeID uint64         `json:"token_code_id"`
	InitHook    *host.InitHook `json:"init_hook,omitempty"`
}

type HandleMsg struct {
	DeployToken *DeployTokenMsg `json:"deploy_token,omitempty"`
	Register    *RegisterMsg    `json:"register,omitempty"`
}

type DeployTokenMsg struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
	Cap      uint64 `json:"cap"`
}

// RegisterMsg is the init hook every deployed token sends back.
type RegisterMsg struct {
	Symbol string `json:"symbol"`
}

type QueryMsg struct {
	Config       *struct{}          `json:"config,omitempty"`
	TokenAddress *TokenAddressQuery `json:"token_address,omitempty"`
}

type TokenAddressQuery struct {
	Symbol string `json:"symbol"`
}

type TokenAddressResponse struct {
	TokenAddr common.Address `json:"token_addr"`
}
