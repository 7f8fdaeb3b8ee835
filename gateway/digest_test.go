// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gateway

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/ava-labs/gatewayvm/host"
)

func TestDigest(t *testing.T) {
	t.Parallel()

	a, err := host.NewExecuteMsg(common.HexToAddress("0x0a"), map[string]int{"a": 1})
	if err != nil {
		t.Fatal(err)
	}
	b, err := host.NewInstantiateMsg(3, "b", map[string]int{"b": 2})
	if err != nil {
		t.Fatal(err)
	}
	digest := func(nonce uint64, msgs ...host.Msg) []byte {
		d, err := Digest(nonce, msgs)
		if err != nil {
			t.Fatal(err)
		}
		return d
	}

	if !bytes.Equal(digest(0), ethcrypto.Keccak256(make([]byte, 8))) {
		t.Fatal("empty batch digest mismatch")
	}
	if !bytes.Equal(digest(7, a, b), digest(7, a, b)) {
		t.Fatal("digest not deterministic")
	}

	tt := []struct {
		x, y []byte
	}{
		{x: digest(0, a, b), y: digest(1, a, b)},
		{x: digest(0, a, b), y: digest(0, b, a)},
		{x: digest(0, a), y: digest(0, a, a)},
	}
	for i, tv := range tt {
		if bytes.Equal(tv.x, tv.y) {
			t.Fatalf("#%d: digests collide", i)
		}
	}
}

func TestConfigTransitions(t *testing.T) {
	t.Parallel()

	key := make([]byte, 33)
	key[0] = 0x02
	key[32] = 0x01
	self := common.HexToAddress("0x01")
	owner := common.HexToAddress("0x02")
	c := &Config{Owner: owner, PublicKey: key, Mutable: true, Nonce: 5}

	cc := c.Copy()
	cc.PublicKey[0] = 0xff
	cc.Nonce++
	if c.PublicKey[0] != 0x02 || c.Nonce != 5 {
		t.Fatal("copy aliases original")
	}

	tt := []struct {
		caller common.Address
		owner  bool
	}{
		{caller: self, owner: true},
		{caller: owner, owner: true},
		{caller: common.HexToAddress("0x03"), owner: false},
		{caller: common.Address{}, owner: false},
	}
	for i, tv := range tt {
		if got := c.IsOwner(tv.caller, self); got != tv.owner {
			t.Fatalf("#%d: IsOwner %t, expected %t", i, got, tv.owner)
		}
	}

	c.Nonce = ^uint64(0)
	if err := c.IncrementNonce(); err != ErrNonceOverflow {
		t.Fatalf("expected ErrNonceOverflow, got %v", err)
	}
}
