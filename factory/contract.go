// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package factory implements the token factory. It deploys token contracts
// for its owner and records each token's address once the token reports back
// from its init hook.
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/ava-labs/gatewayvm/host"
	"github.com/ava-labs/gatewayvm/token"
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
	if msg.TokenCodeID == 0 {
		return nil, ErrInvalidCodeID
	}
	if err := PutConfig(ctx.DB, &Config{Owner: ctx.Env.Sender, TokenCodeID: msg.TokenCodeID}); err != nil {
		return nil, err
	}
	resp := &host.Response{Attributes: []host.Attribute{
		host.Attr("action", "ownership"),
		host.Attr("previous_owner", "0"),
		host.Attr("new_owner", ctx.Env.Sender.Hex()),
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
	case msg.DeployToken != nil && msg.Register == nil:
		return c.deployToken(ctx, msg.DeployToken)
	case msg.Register != nil && msg.DeployToken == nil:
		return c.register(ctx, msg.Register)
	default:
		return nil, ErrInvalidMsg
	}
}

func (*Contract) deployToken(ctx *host.Context, m *DeployTokenMsg) (*host.Response, error) {
	cfg, err := GetConfig(ctx.DB)
	if err != nil {
		return nil, err
	}
	if ctx.Env.Sender != cfg.Owner {
		return nil, ErrUnauthorized
	}
	if err := Registry(ctx.DB).Begin(m.Symbol); err != nil {
		return nil, err
	}

	hook, err := host.NewInitHook(ctx.Env.Contract, &HandleMsg{Register: &RegisterMsg{Symbol: m.Symbol}})
	if err != nil {
		return nil, err
	}
	inst, err := host.NewInstantiateMsg(cfg.TokenCodeID, m.Name, &token.InitMsg{
		Name:     m.Name,
		Symbol:   m.Symbol,
		Decimals: m.Decimals,
		Mint:     &token.MinterData{Minter: ctx.Env.Sender, Cap: m.Cap},
		InitHook: hook,
	})
	if err != nil {
		return nil, err
	}
	return &host.Response{
		Messages: []host.Msg{inst},
		Attributes: []host.Attribute{
			host.Attr("action", "deploy_token"),
			host.Attr("symbol", m.Symbol),
		},
	}, nil
}

func (*Contract) register(ctx *host.Context, m *RegisterMsg) (*host.Response, error) {
	if err := Registry(ctx.DB).Confirm(m.Symbol, ctx.Env.Sender); err != nil {
		return nil, err
	}
	return &host.Response{Attributes: []host.Attribute{
		host.Attr("action", "deploy_register"),
		host.Attr("symbol", m.Symbol),
		host.Attr("token_addr", ctx.Env.Sender.Hex()),
	}}, nil
}

func (*Contract) Query(ctx *host.QueryContext, payload []byte) ([]byte, error) {
	var msg QueryMsg
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	switch {
	case msg.Config != nil && msg.TokenAddress == nil:
		cfg, err := GetConfig(ctx.DB)
		if err != nil {
			return nil, err
		}
		return json.Marshal(cfg)
	case msg.TokenAddress != nil && msg.Config == nil:
		addr, err := Registry(ctx.DB).Lookup(msg.TokenAddress.Symbol)
		if err != nil {
			return nil, err
		}
		return json.Marshal(&TokenAddressResponse{TokenAddr: addr})
	default:
		return nil, ErrInvalidQuery
	}
}
