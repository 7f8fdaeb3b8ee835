// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/gatewayvm/host"
)

const tokenCode = 3

var (
	minter = common.HexToAddress("0x0100")
	alice  = common.HexToAddress("0x0a11ce")
	bob    = common.HexToAddress("0x0b0b")
)

func deploy(t *testing.T, msg *InitMsg) (*host.Router, common.Address, error) {
	t.Helper()
	r := host.NewRouter(memdb.New())
	require.NoError(t, r.RegisterCode(tokenCode, NewContract()))
	b, err := json.Marshal(msg)
	require.NoError(t, err)
	addr, _, err := r.Instantiate(minter, tokenCode, msg.Name, b)
	return r, addr, err
}

func execute(r *host.Router, sender common.Address, token common.Address, msg *HandleMsg) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_, err = r.Execute(sender, token, b)
	return err
}

func balance(t *testing.T, r *host.Router, token common.Address, addr common.Address) uint64 {
	t.Helper()
	b, err := json.Marshal(&QueryMsg{Balance: &BalanceQuery{Address: addr}})
	require.NoError(t, err)
	raw, err := r.Query(token, b)
	require.NoError(t, err)
	var resp BalanceResponse
	require.NoError(t, json.Unmarshal(raw, &resp))
	return resp.Balance
}

func info(t *testing.T, r *host.Router, token common.Address) *Info {
	t.Helper()
	raw, err := r.Query(token, []byte(`{"token_info":{}}`))
	require.NoError(t, err)
	var i Info
	require.NoError(t, json.Unmarshal(raw, &i))
	return &i
}

func TestInitValidation(t *testing.T) {
	t.Parallel()

	valid := func() *InitMsg {
		return &InitMsg{Name: "axelar", Symbol: "XLR", Decimals: 8, Mint: &MinterData{Minter: minter, Cap: 100}}
	}
	tt := []struct {
		mutate func(m *InitMsg)
		err    error
	}{
		{mutate: func(m *InitMsg) {}},
		{mutate: func(m *InitMsg) { m.Name = "ax" }, err: ErrInvalidName},
		{mutate: func(m *InitMsg) { m.Symbol = "X1R" }, err: ErrInvalidSymbol},
		{mutate: func(m *InitMsg) { m.Symbol = "TOOLONGSYMBOL" }, err: ErrInvalidSymbol},
		{mutate: func(m *InitMsg) { m.Decimals = 19 }, err: ErrInvalidDecimals},
		{mutate: func(m *InitMsg) { m.Mint = nil }, err: ErrMinterRequired},
		{mutate: func(m *InitMsg) { m.InitialBalances = []Balance{{Address: alice, Amount: 101}} }, err: ErrCapExceeded},
	}
	for i, tv := range tt {
		m := valid()
		tv.mutate(m)
		_, _, err := deploy(t, m)
		if !errors.Is(err, tv.err) {
			t.Fatalf("#%d: error mismatch %v, expected %v", i, err, tv.err)
		}
	}
}

func TestInitHook(t *testing.T) {
	t.Parallel()

	r := host.NewRouter(memdb.New())
	require.NoError(t, r.RegisterCode(tokenCode, NewContract()))

	// A second token acts as the hook target so the callback is observable:
	// the new token mints to itself on the first token, which only works if
	// the hook is delivered with the new token as sender.
	b, err := json.Marshal(&InitMsg{Name: "first", Symbol: "FST", Mint: &MinterData{Minter: minter}})
	require.NoError(t, err)
	first, _, err := r.Instantiate(minter, tokenCode, "first", b)
	require.NoError(t, err)

	hook, err := host.NewInitHook(first, &HandleMsg{Transfer: &TransferMsg{Recipient: alice, Amount: 1}})
	require.NoError(t, err)
	b, err = json.Marshal(&InitMsg{Name: "second", Symbol: "SND", Mint: &MinterData{Minter: minter}, InitHook: hook})
	require.NoError(t, err)

	// The second token holds nothing on the first, so the hook fails and the
	// whole instantiation is discarded.
	_, _, err = r.Instantiate(minter, tokenCode, "second", b)
	require.ErrorIs(t, err, ErrInsufficientFund)
}

func TestLedger(t *testing.T) {
	t.Parallel()

	r, token, err := deploy(t, &InitMsg{
		Name:            "axelar",
		Symbol:          "XLR",
		Decimals:        8,
		InitialBalances: []Balance{{Address: alice, Amount: 10}},
		Mint:            &MinterData{Minter: minter, Cap: 100},
	})
	require.NoError(t, err)
	require.Equal(t, uint64(10), info(t, r, token).TotalSupply)

	tt := []struct {
		sender common.Address
		msg    *HandleMsg
		err    error
	}{
		{sender: alice, msg: &HandleMsg{Mint: &MintMsg{Recipient: alice, Amount: 1}}, err: ErrUnauthorized},
		{sender: minter, msg: &HandleMsg{Mint: &MintMsg{Recipient: bob, Amount: 90}}},
		{sender: minter, msg: &HandleMsg{Mint: &MintMsg{Recipient: bob, Amount: 1}}, err: ErrCapExceeded},
		{sender: alice, msg: &HandleMsg{Transfer: &TransferMsg{Recipient: bob, Amount: 11}}, err: ErrInsufficientFund},
		{sender: alice, msg: &HandleMsg{Transfer: &TransferMsg{Recipient: bob, Amount: 4}}},
		{sender: bob, msg: &HandleMsg{Burn: &BurnMsg{Amount: 14}}},
		{sender: bob, msg: &HandleMsg{Burn: &BurnMsg{Amount: 0}}, err: ErrInvalidAmount},
		{sender: minter, msg: &HandleMsg{Mint: &MintMsg{Recipient: bob, Amount: 14}}},
		{sender: bob, msg: &HandleMsg{}, err: ErrInvalidMsg},
	}
	for i, tv := range tt {
		if err := execute(r, tv.sender, token, tv.msg); !errors.Is(err, tv.err) {
			t.Fatalf("#%d: error mismatch %v, expected %v", i, err, tv.err)
		}
	}

	require.Equal(t, uint64(6), balance(t, r, token, alice))
	require.Equal(t, uint64(94), balance(t, r, token, bob))
	i := info(t, r, token)
	require.Equal(t, uint64(100), i.TotalSupply)
	require.Equal(t, "XLR", i.Symbol)
	require.Equal(t, minter, i.Minter)
}
