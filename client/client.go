// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package client implements "gatewayvm" client SDK.
package client

import (
	"context"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/rpc"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"

	"github.com/ava-labs/gatewayvm/gateway"
	"github.com/ava-labs/gatewayvm/host"
	"github.com/ava-labs/gatewayvm/registry"
	"github.com/ava-labs/gatewayvm/vm"
)

// Client defines gatewayvm client operations.
type Client interface {
	// Pings the VM.
	Ping() (bool, error)
	// Returns the VM genesis.
	Genesis() (*vm.Genesis, error)
	// Returns the contracts created at boot.
	Addresses() (*vm.Addresses, error)
	// Returns the VM version.
	Version() (string, error)

	// Returns the gateway's authorization state.
	Config() (*gateway.Config, error)
	// Returns the address registered under [name] on the gateway.
	ContractAddress(name string) (common.Address, registry.Status, error)
	// Returns the address of the token deployed for [symbol].
	TokenAddress(symbol string) (common.Address, registry.Status, error)
	// Reports whether [sig] authorizes [msgs] at the current nonce.
	CanExecute(msgs []host.Msg, sig []byte) (bool, error)
	// Returns the digest the owner must sign to authorize [msgs].
	Digest(msgs []host.Msg) (nonce uint64, digest []byte, err error)
	// Returns the schemes the verification service supports.
	Schemes() ([]string, error)
	// Lists a deferred registration table ("gateway" or "factory").
	Registrations(registry string) ([]*registry.Entry, error)

	// Returns the sequence the next transaction from [addr] must carry.
	Sequence(addr common.Address) (uint64, error)
	// Issues a signed transaction.
	IssueTx(utx *vm.UnsignedTransaction, sig []byte) (*vm.IssueTxReply, error)
	// Checks the status of the transaction, and returns "true" if accepted.
	HasTx(id ids.ID) (bool, error)
	// Polls the transactions until its status is accepted.
	PollTx(ctx context.Context, txID ids.ID) (accepted bool, err error)
}

// New creates a new client object.
func New(uri string, reqTimeout time.Duration) Client {
	req := rpc.NewEndpointRequester(
		uri,
		vm.PublicEndpoint,
		vm.Name,
		reqTimeout,
	)
	return &client{req: req}
}

type client struct {
	req rpc.EndpointRequester
}

func (cli *client) Ping() (bool, error) {
	resp := new(vm.PingReply)
	err := cli.req.SendRequest(
		"ping",
		nil,
		resp,
	)
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}

func (cli *client) Genesis() (*vm.Genesis, error) {
	resp := new(vm.GenesisReply)
	err := cli.req.SendRequest(
		"genesis",
		nil,
		resp,
	)
	return resp.Genesis, err
}

func (cli *client) Addresses() (*vm.Addresses, error) {
	resp := new(vm.AddressesReply)
	err := cli.req.SendRequest(
		"addresses",
		nil,
		resp,
	)
	return resp.Addresses, err
}

func (cli *client) Version() (string, error) {
	resp := new(vm.VersionReply)
	err := cli.req.SendRequest(
		"version",
		nil,
		resp,
	)
	return resp.Version, err
}

func (cli *client) Config() (*gateway.Config, error) {
	resp := new(vm.ConfigReply)
	err := cli.req.SendRequest(
		"config",
		nil,
		resp,
	)
	return resp.Config, err
}

func (cli *client) ContractAddress(name string) (common.Address, registry.Status, error) {
	resp := new(vm.ContractAddressReply)
	if err := cli.req.SendRequest(
		"contractAddress",
		&vm.ContractAddressArgs{Name: name},
		resp,
	); err != nil {
		return common.Address{}, registry.Unknown, err
	}
	return resp.Address, resp.Status, nil
}

func (cli *client) TokenAddress(symbol string) (common.Address, registry.Status, error) {
	resp := new(vm.TokenAddressReply)
	if err := cli.req.SendRequest(
		"tokenAddress",
		&vm.TokenAddressArgs{Symbol: symbol},
		resp,
	); err != nil {
		return common.Address{}, registry.Unknown, err
	}
	return resp.Address, resp.Status, nil
}

func (cli *client) CanExecute(msgs []host.Msg, sig []byte) (bool, error) {
	resp := new(vm.CanExecuteReply)
	if err := cli.req.SendRequest(
		"canExecute",
		&vm.CanExecuteArgs{Msgs: msgs, Signature: sig},
		resp,
	); err != nil {
		return false, err
	}
	return resp.CanExecute, nil
}

func (cli *client) Digest(msgs []host.Msg) (uint64, []byte, error) {
	resp := new(vm.DigestReply)
	if err := cli.req.SendRequest(
		"digest",
		&vm.DigestArgs{Msgs: msgs},
		resp,
	); err != nil {
		return 0, nil, err
	}
	return resp.Nonce, resp.Digest, nil
}

func (cli *client) Schemes() ([]string, error) {
	resp := new(vm.SchemesReply)
	err := cli.req.SendRequest(
		"schemes",
		nil,
		resp,
	)
	return resp.Schemes, err
}

func (cli *client) Registrations(which string) ([]*registry.Entry, error) {
	resp := new(vm.RegistrationsReply)
	if err := cli.req.SendRequest(
		"registrations",
		&vm.RegistrationsArgs{Registry: which},
		resp,
	); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

func (cli *client) Sequence(addr common.Address) (uint64, error) {
	resp := new(vm.SequenceReply)
	if err := cli.req.SendRequest(
		"sequence",
		&vm.SequenceArgs{Address: addr},
		resp,
	); err != nil {
		return 0, err
	}
	return resp.Sequence, nil
}

func (cli *client) IssueTx(utx *vm.UnsignedTransaction, sig []byte) (*vm.IssueTxReply, error) {
	resp := new(vm.IssueTxReply)
	if err := cli.req.SendRequest(
		"issueTx",
		&vm.IssueTxArgs{Utx: utx, Signature: sig},
		resp,
	); err != nil {
		return nil, err
	}
	return resp, nil
}

func (cli *client) HasTx(txID ids.ID) (bool, error) {
	resp := new(vm.HasTxReply)
	if err := cli.req.SendRequest(
		"hasTx",
		&vm.HasTxArgs{TxID: txID},
		resp,
	); err != nil {
		return false, err
	}
	return resp.Accepted, nil
}

func (cli *client) PollTx(ctx context.Context, txID ids.ID) (accepted bool, err error) {
done:
	for ctx.Err() == nil {
		select {
		case <-time.After(time.Second):
		case <-ctx.Done():
			break done
		}

		accepted, err := cli.HasTx(txID)
		if err != nil {
			color.Red("polling transaction failed %v", err)
			continue
		}
		if accepted {
			return true, nil
		}
	}
	return false, ctx.Err()
}
