// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/ava-labs/gatewayvm/client"
	"github.com/ava-labs/gatewayvm/crypto"
	"github.com/ava-labs/gatewayvm/gateway"
	"github.com/ava-labs/gatewayvm/host"
	"github.com/ava-labs/gatewayvm/vm"
)

var errEmptyBatch = errors.New("batch is empty")

// readBatch loads a JSON array of host messages, e.g.
//   [{"type": "execute", "contract": "0x..", "payload": {...}}]
func readBatch(path string) ([]host.Msg, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	msgs := []host.Msg{}
	if err := json.Unmarshal(b, &msgs); err != nil {
		return nil, fmt.Errorf("%w: failed to parse batch", err)
	}
	if len(msgs) == 0 {
		return nil, fmt.Errorf("%w: %s", errEmptyBatch, path)
	}
	for i := range msgs {
		if err := msgs[i].Verify(); err != nil {
			return nil, fmt.Errorf("%w: message %d", err, i)
		}
	}
	return msgs, nil
}

func getBatchOp(args []string) ([]host.Msg, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expected exactly 1 argument, got %d", len(args))
	}
	return readBatch(args[0])
}

// issueGatewayMsg signs [msg] with the local key and sends it to the
// gateway created at boot.
func issueGatewayMsg(cli client.Client, msg *gateway.HandleMsg) (*vm.IssueTxReply, error) {
	priv, err := crypto.LoadKey(privateKeyFile)
	if err != nil {
		return nil, err
	}
	addrs, err := cli.Addresses()
	if err != nil {
		return nil, err
	}
	opts := []client.OpOption{client.WithEvents()}
	return client.SignIssueTx(context.Background(), cli, addrs.Gateway, msg, priv, opts...)
}

func parseSig(s string) ([]byte, error) {
	sig, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse signature", err)
	}
	return sig, nil
}
