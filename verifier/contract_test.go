// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package verifier

import (
	"errors"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ethereum/go-ethereum/common"

	"github.com/ava-labs/gatewayvm/host"
)

const codeID = 2

func deploy(t *testing.T) (*host.Router, common.Address) {
	t.Helper()
	r := host.NewRouter(memdb.New())
	if err := r.RegisterCode(codeID, NewContract()); err != nil {
		t.Fatal(err)
	}
	addr, _, err := r.Instantiate(common.HexToAddress("0x01"), codeID, "verifier", []byte("{}"))
	if err != nil {
		t.Fatal(err)
	}
	return r, addr
}

func TestRemoteVerify(t *testing.T) {
	t.Parallel()

	r, addr := deploy(t)
	remote := NewRemote(r, addr)

	msg := mustHex(t, vectorMessage)
	sig := mustHex(t, vectorSignature)
	pk := mustHex(t, vectorPublicKey)

	ok, err := remote.Verify(msg, sig, pk)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("vector should verify")
	}
	ok, err = remote.Verify([]byte("other"), sig, pk)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("altered message should not verify")
	}
	if _, err := remote.Verify(msg, sig, nil); !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}

	schemes, err := remote.ListSchemes()
	if err != nil {
		t.Fatal(err)
	}
	if len(schemes) != 1 || schemes[0] != SchemeSecp256k1 {
		t.Fatalf("unexpected schemes %v", schemes)
	}
}

func TestContractRejects(t *testing.T) {
	t.Parallel()

	r, addr := deploy(t)
	if _, err := r.Execute(common.HexToAddress("0x02"), addr, []byte("{}")); !errors.Is(err, ErrNoHandlers) {
		t.Fatalf("expected ErrNoHandlers, got %v", err)
	}

	tt := []string{
		`{}`,
		`not json`,
		`{"verify_cosmos_signature":{"message":"0x","signature":"0x","public_key":"0x"},"list_verification_schemes":{}}`,
	}
	for i, payload := range tt {
		if _, err := r.Query(addr, []byte(payload)); !errors.Is(err, ErrInvalidQuery) {
			t.Fatalf("#%d: expected ErrInvalidQuery, got %v", i, err)
		}
	}
}
