// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"

	"github.com/ava-labs/gatewayvm/crypto"
	"github.com/ava-labs/gatewayvm/gateway"
	"github.com/ava-labs/gatewayvm/host"
	"github.com/ava-labs/gatewayvm/vm"
)

// Signs and issues the transaction.
func SignIssueTx(
	ctx context.Context,
	cli Client,
	contract common.Address,
	payload interface{},
	priv *ecdsa.PrivateKey,
	opts ...OpOption,
) (*vm.IssueTxReply, error) {
	ret := &Op{}
	ret.applyOpts(opts)

	g, err := cli.Genesis()
	if err != nil {
		return nil, err
	}
	sender := crypto.Address(&priv.PublicKey)
	seq, err := cli.Sequence(sender)
	if err != nil {
		return nil, err
	}

	utx, err := vm.NewUnsignedTx(g.Magic, seq, contract, payload)
	if err != nil {
		return nil, err
	}
	tx, err := vm.SignTx(utx, priv)
	if err != nil {
		return nil, err
	}
	if err := tx.Init(g); err != nil {
		return nil, err
	}

	color.Yellow("issuing tx %s (sender=%s, seq=%d, contract=%s)", tx.ID(), sender, seq, contract)
	reply, err := cli.IssueTx(utx, tx.Signature)
	if err != nil {
		return nil, err
	}

	if ret.pollTx {
		color.Green("issued transaction %s (now polling)", reply.TxID)
		accepted, err := cli.PollTx(ctx, reply.TxID)
		if err != nil {
			return nil, err
		}
		if !accepted {
			color.Yellow("transaction %s not accepted", reply.TxID)
		} else {
			color.Green("transaction %s accepted", reply.TxID)
		}
	}

	if ret.events {
		for _, ev := range reply.Events {
			color.Blue("event from %s", ev.Contract)
			for _, a := range ev.Attributes {
				color.Blue("  %s=%s", a.Key, a.Value)
			}
		}
		for _, addr := range reply.Instantiated {
			color.Blue("instantiated %s", addr)
		}
	}
	return reply, nil
}

// BatchDigest returns the gateway's current nonce and the digest of [msgs] at
// that nonce. The digest is computed locally and must match the one the
// endpoint reports.
func BatchDigest(cli Client, msgs []host.Msg) (uint64, []byte, error) {
	nonce, remote, err := cli.Digest(msgs)
	if err != nil {
		return 0, nil, err
	}
	digest, err := gateway.Digest(nonce, msgs)
	if err != nil {
		return 0, nil, err
	}
	if !bytes.Equal(digest, remote) {
		return 0, nil, fmt.Errorf("%w: nonce %d", ErrDigestMismatch, nonce)
	}
	return nonce, digest, nil
}

// SignBatch signs the digest of [msgs] at the gateway's current nonce with
// the owner key [priv]. Only the nonce is taken from the endpoint.
func SignBatch(cli Client, msgs []host.Msg, priv *ecdsa.PrivateKey) (nonce uint64, sig []byte, err error) {
	nonce, digest, err := BatchDigest(cli, msgs)
	if err != nil {
		return 0, nil, err
	}
	sig, err = crypto.SignDigest(digest, priv)
	if err != nil {
		return 0, nil, err
	}
	ok, err := cli.CanExecute(msgs, sig)
	if err != nil {
		return 0, nil, err
	}
	if !ok {
		return 0, nil, ErrCannotExecute
	}
	return nonce, sig, nil
}

type Op struct {
	pollTx bool
	events bool
}

type OpOption func(*Op)

func (op *Op) applyOpts(opts []OpOption) {
	for _, opt := range opts {
		opt(op)
	}
}

func WithPollTx() OpOption {
	return func(op *Op) { op.pollTx = true }
}

// Prints the events the transaction emitted.
func WithEvents() OpOption {
	return func(op *Op) { op.events = true }
}
