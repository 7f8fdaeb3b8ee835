// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/gatewayvm/gateway"
	"github.com/ava-labs/gatewayvm/host"
	"github.com/ava-labs/gatewayvm/registry"
	"github.com/ava-labs/gatewayvm/verifier"
)

type PublicService struct {
	vm *VM
}

func (svc *PublicService) trace(method string, ctx ...interface{}) {
	if svc.vm.config.LogRequests {
		log.Debug(method, ctx...)
	}
}

type PingReply struct {
	Success bool `serialize:"true" json:"success"`
}

func (svc *PublicService) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	log.Info("ping")
	reply.Success = true
	return nil
}

type GenesisReply struct {
	Genesis *Genesis `serialize:"true" json:"genesis"`
}

func (svc *PublicService) Genesis(_ *http.Request, _ *struct{}, reply *GenesisReply) (err error) {
	reply.Genesis = svc.vm.Genesis()
	return nil
}

type AddressesReply struct {
	Addresses *Addresses `serialize:"true" json:"addresses"`
}

func (svc *PublicService) Addresses(_ *http.Request, _ *struct{}, reply *AddressesReply) error {
	reply.Addresses = svc.vm.Addresses()
	return nil
}

type ConfigReply struct {
	Config *gateway.Config `json:"config"`
}

func (svc *PublicService) Config(_ *http.Request, _ *struct{}, reply *ConfigReply) error {
	svc.trace("config")
	reply.Config = new(gateway.Config)
	return svc.vm.Query(svc.vm.addrs.Gateway, &gateway.QueryMsg{Config: &struct{}{}}, reply.Config)
}

type ContractAddressArgs struct {
	Name string `serialize:"true" json:"name"`
}

type ContractAddressReply struct {
	Address common.Address  `serialize:"true" json:"address"`
	Status  registry.Status `serialize:"true" json:"status"`
}

func (svc *PublicService) ContractAddress(_ *http.Request, args *ContractAddressArgs, reply *ContractAddressReply) (err error) {
	svc.trace("contractAddress", "name", args.Name)
	reply.Address, reply.Status, err = svc.vm.Lookup(GatewayRegistry, args.Name)
	return err
}

type TokenAddressArgs struct {
	Symbol string `serialize:"true" json:"symbol"`
}

type TokenAddressReply struct {
	Address common.Address  `serialize:"true" json:"address"`
	Status  registry.Status `serialize:"true" json:"status"`
}

func (svc *PublicService) TokenAddress(_ *http.Request, args *TokenAddressArgs, reply *TokenAddressReply) (err error) {
	svc.trace("tokenAddress", "symbol", args.Symbol)
	reply.Address, reply.Status, err = svc.vm.Lookup(FactoryRegistry, args.Symbol)
	return err
}

type CanExecuteArgs struct {
	Msgs      []host.Msg    `json:"msgs"`
	Signature hexutil.Bytes `json:"signature"`
}

type CanExecuteReply struct {
	CanExecute bool `serialize:"true" json:"canExecute"`
}

func (svc *PublicService) CanExecute(_ *http.Request, args *CanExecuteArgs, reply *CanExecuteReply) error {
	svc.trace("canExecute", "msgs", len(args.Msgs))
	var resp gateway.CanExecuteResponse
	if err := svc.vm.Query(
		svc.vm.addrs.Gateway,
		&gateway.QueryMsg{CanExecute: &gateway.CanExecuteQuery{Msgs: args.Msgs, Sig: args.Signature}},
		&resp,
	); err != nil {
		return err
	}
	reply.CanExecute = resp.CanExecute
	return nil
}

type DigestArgs struct {
	Msgs []host.Msg `json:"msgs"`
}

type DigestReply struct {
	Nonce  uint64        `serialize:"true" json:"nonce"`
	Digest hexutil.Bytes `serialize:"true" json:"digest"`
}

func (svc *PublicService) Digest(_ *http.Request, args *DigestArgs, reply *DigestReply) error {
	svc.trace("digest", "msgs", len(args.Msgs))
	var resp gateway.DigestResponse
	if err := svc.vm.Query(svc.vm.addrs.Gateway, &gateway.QueryMsg{Digest: &gateway.DigestQuery{Msgs: args.Msgs}}, &resp); err != nil {
		return err
	}
	reply.Nonce = resp.Nonce
	reply.Digest = resp.Digest
	return nil
}

type SchemesReply struct {
	Schemes []string `serialize:"true" json:"schemes"`
}

func (svc *PublicService) Schemes(_ *http.Request, _ *struct{}, reply *SchemesReply) error {
	var resp verifier.ListSchemesResponse
	if err := svc.vm.Query(svc.vm.addrs.Verifier, &verifier.QueryMsg{ListVerificationSchemes: &struct{}{}}, &resp); err != nil {
		return err
	}
	reply.Schemes = resp.Schemes
	return nil
}

type SequenceArgs struct {
	Address common.Address `serialize:"true" json:"address"`
}

type SequenceReply struct {
	Sequence uint64 `serialize:"true" json:"sequence"`
}

func (svc *PublicService) Sequence(_ *http.Request, args *SequenceArgs, reply *SequenceReply) error {
	seq, err := svc.vm.Sequence(args.Address)
	if err != nil {
		return err
	}
	reply.Sequence = seq
	return nil
}

type IssueTxArgs struct {
	Utx       *UnsignedTransaction `json:"unsignedTx"`
	Signature hexutil.Bytes        `json:"signature"`
}

type IssueTxReply struct {
	TxID         ids.ID           `json:"txId"`
	Sender       common.Address   `json:"sender"`
	Events       []host.Event     `json:"events"`
	Instantiated []common.Address `json:"instantiated"`
}

func (svc *PublicService) IssueTx(_ *http.Request, args *IssueTxArgs, reply *IssueTxReply) error {
	if len(args.Signature) == 0 {
		return ErrMissingSignature
	}
	tx := NewTx(args.Utx, args.Signature)
	res, err := svc.vm.Submit(tx)
	if err != nil {
		log.Warn("failed to issue tx", "err", err)
		return err
	}
	reply.TxID = tx.ID()
	reply.Sender = tx.Sender()
	reply.Events = res.Events
	reply.Instantiated = res.Instantiated
	return nil
}

type HasTxArgs struct {
	TxID ids.ID `serialize:"true" json:"txId"`
}

type HasTxReply struct {
	Accepted bool `serialize:"true" json:"accepted"`
}

func (svc *PublicService) HasTx(_ *http.Request, args *HasTxArgs, reply *HasTxReply) error {
	has, err := svc.vm.HasTx(args.TxID)
	if err != nil {
		return err
	}
	reply.Accepted = has
	return nil
}

type RegistrationsArgs struct {
	// Registry is either "gateway" or "factory".
	Registry string `serialize:"true" json:"registry"`
}

type RegistrationsReply struct {
	Entries []*registry.Entry `json:"entries"`
}

func (svc *PublicService) Registrations(_ *http.Request, args *RegistrationsArgs, reply *RegistrationsReply) error {
	entries, err := svc.vm.Registrations(args.Registry)
	if err != nil {
		return err
	}
	reply.Entries = entries
	return nil
}

type VersionReply struct {
	Version string `json:"version"`
}

func (svc *PublicService) Version(_ *http.Request, _ *struct{}, reply *VersionReply) error {
	reply.Version = svc.vm.Version()
	return nil
}
