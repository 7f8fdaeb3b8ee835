// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package verifier

import "github.com/ethereum/go-ethereum/common/hexutil"

type InitMsg struct{}

// QueryMsg is a tagged union; exactly one field is set.
type QueryMsg struct {
	VerifyCosmosSignature   *VerifyRequest `json:"verify_cosmos_signature,omitempty"`
	ListVerificationSchemes *struct{}      `json:"list_verification_schemes,omitempty"`
}

type VerifyRequest struct {
	// Message is hashed with SHA-256 before verification.
	Message hexutil.Bytes `json:"message"`
	// Signature is a 64 byte [R || S] signature.
	Signature hexutil.Bytes `json:"signature"`
	// PublicKey is a 33 byte compressed or 65 byte uncompressed point.
	PublicKey hexutil.Bytes `json:"public_key"`
}

type VerifyResponse struct {
	Verifies bool `json:"verifies"`
}

type ListSchemesResponse struct {
	Schemes []string `json:"verification_schemes"`
}
