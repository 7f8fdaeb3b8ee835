// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package token implements a capped, mintable balance ledger. Tokens deployed
// by the factory announce themselves through their init hook.
package token

import (
	"encoding/json"
	"fmt"

	"github.com/ava-labs/gatewayvm/host"
)

var _ host.Contract = &Contract{}

type Contract struct{}

func NewContract() *Contract {
	return &Contract{}
}

func (*Contract) Instantiate(ctx *host.Context, payload []byte) (*host.Response, error) {
	var msg InitMsg
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMsg, err)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	bdb := balances(ctx.DB)
	var supply uint64
	for _, b := range msg.InitialBalances {
		if supply+b.Amount < supply {
			return nil, ErrOverflow
		}
		supply += b.Amount
		if err := credit(bdb, b.Address, b.Amount); err != nil {
			return nil, err
		}
	}
	if msg.Mint.Cap > 0 && supply > msg.Mint.Cap {
		return nil, fmt.Errorf("%w: initial supply %d", ErrCapExceeded, supply)
	}
	if err := putInfo(ctx.DB, &Info{
		Name:        msg.Name,
		Symbol:      msg.Symbol,
		Decimals:    msg.Decimals,
		TotalSupply: supply,
		Minter:      msg.Mint.Minter,
		Cap:         msg.Mint.Cap,
	}); err != nil {
		return nil, err
	}

	resp := &host.Response{Attributes: []host.Attribute{
		host.Attr("action", "init"),
		host.Attr("symbol", msg.Symbol),
	}}
	if msg.InitHook != nil {
		resp.Messages = append(resp.Messages, msg.InitHook.ExecuteMsg())
	}
	return resp, nil
}

func (c *Contract) Execute(ctx *host.Context, payload []byte) (*host.Response, error) {
	var msg HandleMsg
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMsg, err)
	}
	switch {
	case msg.Transfer != nil && msg.Burn == nil && msg.Mint == nil:
		return c.transfer(ctx, msg.Transfer)
	case msg.Burn != nil && msg.Transfer == nil && msg.Mint == nil:
		return c.burn(ctx, msg.Burn)
	case msg.Mint != nil && msg.Transfer == nil && msg.Burn == nil:
		return c.mint(ctx, msg.Mint)
	default:
		return nil, ErrInvalidMsg
	}
}

func (*Contract) transfer(ctx *host.Context, m *TransferMsg) (*host.Response, error) {
	if m.Amount == 0 {
		return nil, ErrInvalidAmount
	}
	bdb := balances(ctx.DB)
	if err := debit(bdb, ctx.Env.Sender, m.Amount); err != nil {
		return nil, err
	}
	if err := credit(bdb, m.Recipient, m.Amount); err != nil {
		return nil, err
	}
	return &host.Response{Attributes: []host.Attribute{
		host.Attr("action", "transfer"),
		host.Attr("from", ctx.Env.Sender.Hex()),
		host.Attr("to", m.Recipient.Hex()),
		host.Attr("amount", m.Amount),
	}}, nil
}

func (*Contract) burn(ctx *host.Context, m *BurnMsg) (*host.Response, error) {
	if m.Amount == 0 {
		return nil, ErrInvalidAmount
	}
	info, err := getInfo(ctx.DB)
	if err != nil {
		return nil, err
	}
	if err := debit(balances(ctx.DB), ctx.Env.Sender, m.Amount); err != nil {
		return nil, err
	}
	info.TotalSupply -= m.Amount
	if err := putInfo(ctx.DB, info); err != nil {
		return nil, err
	}
	return &host.Response{Attributes: []host.Attribute{
		host.Attr("action", "burn"),
		host.Attr("from", ctx.Env.Sender.Hex()),
		host.Attr("amount", m.Amount),
	}}, nil
}

func (*Contract) mint(ctx *host.Context, m *MintMsg) (*host.Response, error) {
	if m.Amount == 0 {
		return nil, ErrInvalidAmount
	}
	info, err := getInfo(ctx.DB)
	if err != nil {
		return nil, err
	}
	if ctx.Env.Sender != info.Minter {
		return nil, ErrUnauthorized
	}
	supply := info.TotalSupply + m.Amount
	if supply < info.TotalSupply {
		return nil, ErrOverflow
	}
	if info.Cap > 0 && supply > info.Cap {
		return nil, fmt.Errorf("%w: %d > %d", ErrCapExceeded, supply, info.Cap)
	}
	if err := credit(balances(ctx.DB), m.Recipient, m.Amount); err != nil {
		return nil, err
	}
	info.TotalSupply = supply
	if err := putInfo(ctx.DB, info); err != nil {
		return nil, err
	}
	return &host.Response{Attributes: []host.Attribute{
		host.Attr("action", "mint"),
		host.Attr("to", m.Recipient.Hex()),
		host.Attr("amount", m.Amount),
	}}, nil
}

func (*Contract) Query(ctx *host.QueryContext, payload []byte) ([]byte, error) {
	var msg QueryMsg
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	switch {
	case msg.TokenInfo != nil && msg.Balance == nil:
		info, err := getInfo(ctx.DB)
		if err != nil {
			return nil, err
		}
		return json.Marshal(info)
	case msg.Balance != nil && msg.TokenInfo == nil:
		bal, err := getBalance(balances(ctx.DB), msg.Balance.Address)
		if err != nil {
			return nil, err
		}
		return json.Marshal(&BalanceResponse{Balance: bal})
	default:
		return nil, ErrInvalidQuery
	}
}
