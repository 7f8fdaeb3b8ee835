// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package gateway implements the relay contract that re-dispatches batches of
// host messages under its own address once they are authorized, either
// directly by the owner or by the owner's signature carried by any relayer.
package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/gatewayvm/host"
	"github.com/ava-labs/gatewayvm/registry"
	"github.com/ava-labs/gatewayvm/verifier"
)

// VerifierFactory returns the verifier reachable at [addr].
type VerifierFactory func(q host.Querier, addr common.Address) verifier.Verifier

func RemoteVerifier(q host.Querier, addr common.Address) verifier.Verifier {
	return verifier.NewRemote(q, addr)
}

var _ host.Contract = &Contract{}

type Contract struct {
	newVerifier VerifierFactory
}

// NewContract returns a gateway that consults the verifier contract named in
// its config.
func NewContract() *Contract {
	return NewContractWithVerifier(RemoteVerifier)
}

func NewContractWithVerifier(f VerifierFactory) *Contract {
	return &Contract{newVerifier: f}
}

func (c *Contract) Instantiate(ctx *host.Context, payload []byte) (*host.Response, error) {
	var msg InitMsg
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMsg, err)
	}
	cfg, err := NewConfig(msg.Owner, msg.PublicKey, msg.Verifier)
	if err != nil {
		return nil, err
	}
	if err := PutConfig(ctx.DB, cfg); err != nil {
		return nil, err
	}
	return &host.Response{Attributes: []host.Attribute{
		host.Attr("action", "init"),
		host.Attr("owner", cfg.Owner.Hex()),
	}}, nil
}

func (c *Contract) Execute(ctx *host.Context, payload []byte) (*host.Response, error) {
	action, err := decodeHandleMsg(payload)
	if err != nil {
		return nil, err
	}
	switch m := action.(type) {
	case *ExecuteMsg:
		return c.executeDirect(ctx, m)
	case *ExecuteSignedMsg:
		return c.executeSigned(ctx, m)
	case *RegisterMsg:
		return c.register(ctx, m)
	case *UpdateOwnerMsg:
		return c.updateOwner(ctx, m)
	case *FreezeMsg:
		return c.freeze(ctx)
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidMsg, action)
	}
}

func (c *Contract) executeDirect(ctx *host.Context, m *ExecuteMsg) (*host.Response, error) {
	cfg, err := GetConfig(ctx.DB)
	if err != nil {
		return nil, err
	}
	if !cfg.IsOwner(ctx.Env.Sender, ctx.Env.Contract) {
		return nil, ErrUnauthorized
	}
	attrs := []host.Attribute{host.Attr("action", "execute")}
	names, err := reserve(ctx, m.Register)
	if err != nil {
		return nil, err
	}
	return &host.Response{Messages: m.Msgs, Attributes: append(attrs, names...)}, nil
}

func (c *Contract) executeSigned(ctx *host.Context, m *ExecuteSignedMsg) (*host.Response, error) {
	cfg, err := GetConfig(ctx.DB)
	if err != nil {
		return nil, err
	}
	if cfg.Frozen() {
		return nil, ErrFrozen
	}
	ok, err := c.verify(ctx.Querier, cfg, m.Msgs, m.Sig)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Debug("rejected signed batch", "gateway", ctx.Env.Contract, "relayer", ctx.Env.Sender, "nonce", cfg.Nonce)
		return nil, ErrUnauthorized
	}

	next := cfg.Copy()
	if err := next.IncrementNonce(); err != nil {
		return nil, err
	}
	names, err := reserve(ctx, m.Register)
	if err != nil {
		return nil, err
	}
	if err := PutConfig(ctx.DB, next); err != nil {
		return nil, err
	}
	attrs := []host.Attribute{
		host.Attr("action", "execute_signed"),
		host.Attr("nonce", cfg.Nonce),
	}
	return &host.Response{Messages: m.Msgs, Attributes: append(attrs, names...)}, nil
}

// reserve begins registration of every name a relayed batch will create.
// Nothing is written unless every name is free.
func reserve(ctx *host.Context, names []string) ([]host.Attribute, error) {
	table := Registry(ctx.DB)
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: %q listed twice", registry.ErrAlreadyExists, name)
		}
		seen[name] = struct{}{}
		s, err := table.Status(name)
		if err != nil {
			return nil, err
		}
		if s != registry.Unknown {
			return nil, fmt.Errorf("%w: %q is %s", registry.ErrAlreadyExists, name, s)
		}
	}
	attrs := make([]host.Attribute, 0, len(names))
	for _, name := range names {
		if err := table.Begin(name); err != nil {
			return nil, err
		}
		attrs = append(attrs, host.Attr("name", name))
	}
	return attrs, nil
}

func (c *Contract) register(ctx *host.Context, m *RegisterMsg) (*host.Response, error) {
	if err := Registry(ctx.DB).Confirm(m.Name, ctx.Env.Sender); err != nil {
		return nil, err
	}
	return &host.Response{Attributes: []host.Attribute{
		host.Attr("action", "register"),
		host.Attr("name", m.Name),
		host.Attr("address", ctx.Env.Sender.Hex()),
	}}, nil
}

func (c *Contract) updateOwner(ctx *host.Context, m *UpdateOwnerMsg) (*host.Response, error) {
	cfg, err := GetConfig(ctx.DB)
	if err != nil {
		return nil, err
	}
	next := cfg.Copy()
	if err := next.UpdateOwner(ctx.Env.Sender, ctx.Env.Contract, m.Owner, m.PublicKey); err != nil {
		return nil, err
	}
	if err := PutConfig(ctx.DB, next); err != nil {
		return nil, err
	}
	return &host.Response{Attributes: []host.Attribute{
		host.Attr("action", "update_owner"),
		host.Attr("owner", next.Owner.Hex()),
	}}, nil
}

func (c *Contract) freeze(ctx *host.Context) (*host.Response, error) {
	cfg, err := GetConfig(ctx.DB)
	if err != nil {
		return nil, err
	}
	next := cfg.Copy()
	if err := next.Freeze(ctx.Env.Sender, ctx.Env.Contract); err != nil {
		return nil, err
	}
	if err := PutConfig(ctx.DB, next); err != nil {
		return nil, err
	}
	return &host.Response{Attributes: []host.Attribute{host.Attr("action", "freeze")}}, nil
}

// verify checks [sig] over the digest of [msgs] at the current nonce against
// the stored key. A structural failure reported by the verifier is returned
// as an error, never as false.
func (c *Contract) verify(q host.Querier, cfg *Config, msgs []host.Msg, sig []byte) (bool, error) {
	digest, err := Digest(cfg.Nonce, msgs)
	if err != nil {
		return false, err
	}
	return c.newVerifier(q, cfg.Verifier).Verify(digest, sig, cfg.PublicKey)
}

func (c *Contract) Query(ctx *host.QueryContext, payload []byte) ([]byte, error) {
	var msg QueryMsg
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	var (
		resp interface{}
		err  error
	)
	switch {
	case msg.Config != nil && msg.ContractAddress == nil && msg.CanExecute == nil && msg.Digest == nil:
		resp, err = GetConfig(ctx.DB)
	case msg.ContractAddress != nil && msg.Config == nil && msg.CanExecute == nil && msg.Digest == nil:
		resp, err = c.queryAddress(ctx, msg.ContractAddress)
	case msg.CanExecute != nil && msg.Config == nil && msg.ContractAddress == nil && msg.Digest == nil:
		resp, err = c.queryCanExecute(ctx, msg.CanExecute)
	case msg.Digest != nil && msg.Config == nil && msg.ContractAddress == nil && msg.CanExecute == nil:
		resp, err = c.queryDigest(ctx, msg.Digest)
	default:
		return nil, ErrInvalidQuery
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(resp)
}

func (c *Contract) queryAddress(ctx *host.QueryContext, q *ContractAddressQuery) (*ContractAddressResponse, error) {
	addr, err := Registry(ctx.DB).Lookup(q.Name)
	if err != nil {
		return nil, err
	}
	return &ContractAddressResponse{ContractAddr: addr}, nil
}

// queryCanExecute only checks the signature; it does not consider freezing.
func (c *Contract) queryCanExecute(ctx *host.QueryContext, q *CanExecuteQuery) (*CanExecuteResponse, error) {
	cfg, err := GetConfig(ctx.DB)
	if err != nil {
		return nil, err
	}
	ok, err := c.verify(ctx.Querier, cfg, q.Msgs, q.Sig)
	if err != nil {
		return nil, err
	}
	return &CanExecuteResponse{CanExecute: ok}, nil
}

func (c *Contract) queryDigest(ctx *host.QueryContext, q *DigestQuery) (*DigestResponse, error) {
	cfg, err := GetConfig(ctx.DB)
	if err != nil {
		return nil, err
	}
	d, err := Digest(cfg.Nonce, q.Msgs)
	if err != nil {
		return nil, err
	}
	return &DigestResponse{Nonce: cfg.Nonce, Digest: d}, nil
}
