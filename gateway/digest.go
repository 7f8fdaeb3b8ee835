// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gateway

import (
	"encoding/binary"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/ava-labs/gatewayvm/host"
)

// Digest is the value the owner signs to authorize [msgs] at [nonce]:
//   Keccak256(codec(msgs[0]) || ... || codec(msgs[n-1]) || be64(nonce))
func Digest(nonce uint64, msgs []host.Msg) ([]byte, error) {
	buf := []byte{}
	for i := range msgs {
		b, err := msgs[i].Bytes()
		if err != nil {
			return nil, err
		}
		buf = append(buf, b...)
	}
	n := make([]byte, 8)
	binary.BigEndian.PutUint64(n, nonce)
	return ethcrypto.Keccak256(buf, n), nil
}
