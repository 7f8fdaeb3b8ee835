// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package verifier

import (
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/ava-labs/gatewayvm/crypto"
)

const (
	vectorMessage   = "5c868fedb8026979ebd26f1ba07c27eedf4ff6d10443505a96ecaf21ba8c4f0937b3cd23ffdc3dd429d4cd1905fb8dbcceeff1350020e18b58d2ba70887baa3a9b783ad30d3fbf210331cdd7df8d77defa398cdacdfc2e359c7ba4cae46bb74401deb417f8b912a1aa966aeeba9c39c7dd22479ae2b30719dca2f2206c5eb4b7"
	vectorSignature = "207082eb2c3dfa0b454e0906051270ba4074ac93760ba9e7110cd9471475111151eb0dbbc9920e72146fb564f99d039802bf6ef2561446eb126ef364d21ee9c4"
	vectorPublicKey = "04051c1ee2190ecfb174bfe4f90763f2b4ff7517b70a2aec1876ebcfd644c4633fb03f3cfbd94b1f376e34592d9d41ccaf640bb751b00a1fadeb0c01157769eb73"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestVerifyVector(t *testing.T) {
	t.Parallel()

	msg := mustHex(t, vectorMessage)
	sig := mustHex(t, vectorSignature)
	pk := mustHex(t, vectorPublicKey)

	altered := make([]byte, len(msg))
	copy(altered, msg)
	altered[0] ^= 0x01

	tt := []struct {
		msg      []byte
		sig      []byte
		pk       []byte
		verifies bool
		err      error
	}{
		{msg: msg, sig: sig, pk: pk, verifies: true},
		{msg: altered, sig: sig, pk: pk, verifies: false},
		{msg: msg, sig: sig, pk: []byte{}, err: ErrMalformedPublicKey},
		{msg: msg, sig: sig, pk: pk[:40], err: ErrMalformedPublicKey},
		{msg: msg, sig: sig[:63], pk: pk, err: ErrMalformedSignature},
		{msg: msg, sig: append(sig, 0x1b), pk: pk, err: ErrMalformedSignature},
	}
	svc := New()
	for i, tv := range tt {
		ok, err := svc.Verify(tv.msg, tv.sig, tv.pk)
		if !errors.Is(err, tv.err) {
			t.Fatalf("#%d: error mismatch %v, expected %v", i, err, tv.err)
		}
		if tv.err != nil && !errors.Is(err, ErrMalformedInput) {
			t.Fatalf("#%d: %v does not wrap ErrMalformedInput", i, err)
		}
		if ok != tv.verifies {
			t.Fatalf("#%d: verifies %t, expected %t", i, ok, tv.verifies)
		}
	}
}

func TestVerifyGeneratedKeys(t *testing.T) {
	t.Parallel()

	priv, err := crypto.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	other, err := crypto.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("relay me")
	sig, err := crypto.SignDigest(msg, priv)
	if err != nil {
		t.Fatal(err)
	}

	// Flip S to its high twin; it must verify the same as the low form.
	s := new(big.Int).SetBytes(sig[32:])
	s.Sub(secp256k1N, s)
	highS := make([]byte, crypto.SignatureLen)
	copy(highS, sig[:32])
	s.FillBytes(highS[32:])

	tt := []struct {
		sig      []byte
		pk       []byte
		verifies bool
	}{
		{sig: sig, pk: crypto.CompressPublicKey(&priv.PublicKey), verifies: true},
		{sig: sig, pk: ethcrypto.FromECDSAPub(&priv.PublicKey), verifies: true},
		{sig: highS, pk: crypto.CompressPublicKey(&priv.PublicKey), verifies: true},
		{sig: sig, pk: crypto.CompressPublicKey(&other.PublicKey), verifies: false},
		{sig: make([]byte, crypto.SignatureLen), pk: crypto.CompressPublicKey(&priv.PublicKey), verifies: false},
	}
	svc := New()
	for i, tv := range tt {
		ok, err := svc.Verify(msg, tv.sig, tv.pk)
		if err != nil {
			t.Fatalf("#%d: unexpected error %v", i, err)
		}
		if ok != tv.verifies {
			t.Fatalf("#%d: verifies %t, expected %t", i, ok, tv.verifies)
		}
	}
}

func TestListSchemes(t *testing.T) {
	t.Parallel()

	schemes := New().ListSchemes()
	if len(schemes) != 1 || schemes[0] != SchemeSecp256k1 {
		t.Fatalf("unexpected schemes %v", schemes)
	}
}
