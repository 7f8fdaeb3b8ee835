// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/ava-labs/gatewayvm/host"
)

const (
	MinNameLen   = 3
	MaxNameLen   = 50
	MinSymbolLen = 3
	MaxSymbolLen = 12
	MaxDecimals  = 18
)

type Balance struct {
	Address common.Address `json:"address"`
	Amount  uint64         `json:"amount"`
}

type MinterData struct {
	Minter common.Address `json:"minter"`
	Cap    uint64         `json:"cap,omitempty"`
}

type InitMsg struct {
	Name            string         `json:"name"`
	Symbol          string         `json:"symbol"`
	Decimals        uint8          `json:"decimals"`
	InitialBalances []Balance      `json:"initial_balances,omitempty"`
	Mint            *MinterData    `json:"mint"`
	InitHook        *host.InitHook `json:"init_hook,omitempty"`
}

func (m *InitMsg) Validate() error {
	if len(m.Name) < MinNameLen || len(m.Name) > MaxNameLen {
		return ErrInvalidName
	}
	if len(m.Symbol) < MinSymbolLen || len(m.Symbol) > MaxSymbolLen {
		return ErrInvalidSymbol
	}
	for _, r := range m.Symbol {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && r != '-' {
			return ErrInvalidSymbol
		}
	}
	if m.Decimals > MaxDecimals {
		return ErrInvalidDecimals
	}
	if m.Mint == nil {
		return ErrMinterRequired
	}
	return nil
}

type HandleMsg struct {
	Transfer *TransferMsg `json:"transfer,omitempty"`
	Burn     *BurnMsg     `json:"burn,omitempty"`
	Mint     *MintMsg     `json:"mint,omitempty"`
}

type TransferMsg struct {
	Recipient common.Address `json:"recipient"`
	Amount    uint64         `json:"amount"`
}

type BurnMsg struct {
	Amount uint64 `json:"amount"`
}

type MintMsg struct {
	Recipient common.Address `json:"recipient"`
	Amount    uint64         `json:"amount"`
}

type QueryMsg struct {
	TokenInfo *struct{}     `json:"token_info,omitempty"`
	Balance   *BalanceQuery `json:"balance,omitempty"`
}

type BalanceQuery struct {
	Address common.Address `json:"address"`
}

type BalanceResponse struct {
	Balance uint64 `json:"balance"`
}
