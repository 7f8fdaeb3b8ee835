// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package verifier

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ava-labs/gatewayvm/host"
)

var _ host.Contract = &Contract{}

// Contract exposes a Service to other contracts through host queries.
type Contract struct {
	svc *Service
}

func NewContract() *Contract {
	return &Contract{svc: New()}
}

func (c *Contract) Instantiate(*host.Context, []byte) (*host.Response, error) {
	return &host.Response{Attributes: []host.Attribute{host.Attr("action", "init")}}, nil
}

func (c *Contract) Execute(*host.Context, []byte) (*host.Response, error) {
	return nil, ErrNoHandlers
}

func (c *Contract) Query(_ *host.QueryContext, payload []byte) ([]byte, error) {
	var msg QueryMsg
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	switch {
	case msg.VerifyCosmosSignature != nil && msg.ListVerificationSchemes == nil:
		r := msg.VerifyCosmosSignature
		ok, err := c.svc.Verify(r.Message, r.Signature, r.PublicKey)
		if err != nil {
			return nil, err
		}
		return json.Marshal(&VerifyResponse{Verifies: ok})
	case msg.ListVerificationSchemes != nil && msg.VerifyCosmosSignature == nil:
		return json.Marshal(&ListSchemesResponse{Schemes: c.svc.ListSchemes()})
	default:
		return nil, ErrInvalidQuery
	}
}

var _ Verifier = &Remote{}

// Remote reaches a verifier contract through a host querier.
type Remote struct {
	q    host.Querier
	addr common.Address
}

func NewRemote(q host.Querier, addr common.Address) *Remote {
	return &Remote{q: q, addr: addr}
}

func (r *Remote) Verify(message, signature, publicKey []byte) (bool, error) {
	var resp VerifyResponse
	if err := r.query(&QueryMsg{VerifyCosmosSignature: &VerifyRequest{
		Message:   message,
		Signature: signature,
		PublicKey: publicKey,
	}}, &resp); err != nil {
		return false, err
	}
	return resp.Verifies, nil
}

func (r *Remote) ListSchemes() ([]string, error) {
	var resp ListSchemesResponse
	if err := r.query(&QueryMsg{ListVerificationSchemes: &struct{}{}}, &resp); err != nil {
		return nil, err
	}
	return resp.Schemes, nil
}

func (r *Remote) query(msg *QueryMsg, reply interface{}) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	raw, err := r.q.Query(r.addr, b)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, reply)
}
