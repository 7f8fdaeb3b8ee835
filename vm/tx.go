// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"crypto/ecdsa"
	"encoding/json"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/ava-labs/gatewayvm/codec"
	"github.com/ava-labs/gatewayvm/crypto"
)

// UnsignedTransaction asks the host to execute [Payload] on [Contract].
type UnsignedTransaction struct {
	Magic    uint64         `serialize:"true" json:"magic"`
	Seq      uint64         `serialize:"true" json:"seq"`
	Contract common.Address `serialize:"true" json:"contract"`
	Payload  hexutil.Bytes  `serialize:"true" json:"payload"`
}

func NewUnsignedTx(magic uint64, seq uint64, contract common.Address, payload interface{}) (*UnsignedTransaction, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &UnsignedTransaction{Magic: magic, Seq: seq, Contract: contract, Payload: b}, nil
}

// DigestHash is the value the sender signs.
func (utx *UnsignedTransaction) DigestHash() ([]byte, error) {
	b, err := codec.Marshal(utx)
	if err != nil {
		return nil, err
	}
	return ethcrypto.Keccak256(b), nil
}

type Transaction struct {
	UnsignedTransaction *UnsignedTransaction `serialize:"true" json:"unsignedTransaction"`
	Signature           []byte               `serialize:"true" json:"signature"`

	digestHash []byte
	bytes      []byte
	id         ids.ID
	sender     common.Address
}

func NewTx(utx *UnsignedTransaction, sig []byte) *Transaction {
	return &Transaction{
		UnsignedTransaction: utx,
		Signature:           sig,
	}
}

// SignTx signs [utx] with [priv].
func SignTx(utx *UnsignedTransaction, priv *ecdsa.PrivateKey) (*Transaction, error) {
	dh, err := utx.DigestHash()
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(dh, priv)
	if err != nil {
		return nil, err
	}
	return NewTx(utx, sig), nil
}

func (t *Transaction) Init(g *Genesis) error {
	if t.UnsignedTransaction == nil {
		return ErrInvalidEmptyTx
	}
	if t.UnsignedTransaction.Magic != g.Magic {
		return ErrWrongMagic
	}
	dh, err := t.UnsignedTransaction.DigestHash()
	if err != nil {
		return err
	}
	t.digestHash = dh

	pk, err := crypto.DeriveSender(dh, t.Signature)
	if err != nil {
		return err
	}
	t.sender = crypto.Address(pk)

	stx, err := codec.Marshal(t)
	if err != nil {
		return err
	}
	t.bytes = stx

	id, err := ids.ToID(hashing.ComputeHash256(t.bytes))
	if err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Transaction) Bytes() []byte { return t.bytes }

func (t *Transaction) DigestHash() []byte { return t.digestHash }

func (t *Transaction) ID() ids.ID { return t.id }

func (t *Transaction) Sender() common.Address { return t.sender }
