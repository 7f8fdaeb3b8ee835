// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ava-labs/gatewayvm/client"
	"github.com/ava-labs/gatewayvm/crypto"
)

var digestCmd = &cobra.Command{
	Use:   "digest [options] <batch file>",
	Short: "Prints the digest the owner signs to authorize a batch",
	Long: `
Prints the digest of a batch at the gateway's current nonce.

$ gateway-cli digest batch.json
<<COMMENT
nonce: 0
digest: 0x...
COMMENT

`,
	RunE: digestFunc,
}

func digestFunc(cmd *cobra.Command, args []string) error {
	msgs, err := getBatchOp(args)
	if err != nil {
		return err
	}
	cli := client.New(uri, requestTimeout)
	nonce, digest, err := client.BatchDigest(cli, msgs)
	if err != nil {
		return err
	}
	color.Blue("nonce: %d", nonce)
	color.Blue("digest: %s", hexutil.Encode(digest))
	return nil
}

var signCmd = &cobra.Command{
	Use:   "sign [options] <batch file>",
	Short: "Signs a batch with the owner key",
	Long: `
Signs the digest of a batch at the gateway's current nonce. Any account
can then relay the batch with "execute-signed". The signature is only
valid until the gateway accepts another signed batch.

$ gateway-cli sign batch.json --private-key-file=.owner-pk

`,
	RunE: signFunc,
}

func signFunc(cmd *cobra.Command, args []string) error {
	msgs, err := getBatchOp(args)
	if err != nil {
		return err
	}
	priv, err := crypto.LoadKey(privateKeyFile)
	if err != nil {
		return err
	}
	cli := client.New(uri, requestTimeout)
	nonce, sig, err := client.SignBatch(cli, msgs, priv)
	if err != nil {
		return err
	}
	color.Green("signed batch at nonce %d", nonce)
	fmt.Println(hexutil.Encode(sig))
	return nil
}

var canExecuteCmd = &cobra.Command{
	Use:   "can-execute [options] <batch file> <signature>",
	Short: "Checks a signature against a batch",
	RunE:  canExecuteFunc,
}

func canExecuteFunc(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("expected exactly 2 arguments, got %d", len(args))
	}
	msgs, err := readBatch(args[0])
	if err != nil {
		return err
	}
	sig, err := parseSig(args[1])
	if err != nil {
		return err
	}
	cli := client.New(uri, requestTimeout)
	ok, err := cli.CanExecute(msgs, sig)
	if err != nil {
		return err
	}
	if !ok {
		color.Red("signature does not authorize the batch")
		return errors.New("cannot execute")
	}
	color.Green("signature authorizes the batch")
	return nil
}
