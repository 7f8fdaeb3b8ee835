// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ava-labs/gatewayvm/client"
	"github.com/ava-labs/gatewayvm/crypto"
	"github.com/ava-labs/gatewayvm/gateway"
)

var updateOwnerCmd = &cobra.Command{
	Use:   "update-owner [options] <owner> <public key>",
	Short: "Hands the gateway to a new owner",
	Long: `
Replaces the owner and public key of the gateway and resets its nonce.
Signatures made by a previous holder of the same key become valid again
once their nonce is reached.

$ gateway-cli update-owner 0x... 0x02...

`,
	RunE: updateOwnerFunc,
}

func updateOwnerFunc(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("expected exactly 2 arguments, got %d", len(args))
	}
	if !common.IsHexAddress(args[0]) {
		return fmt.Errorf("invalid owner address %q", args[0])
	}
	owner := common.HexToAddress(args[0])
	pk, err := hexutil.Decode(args[1])
	if err != nil {
		return err
	}
	if err := crypto.ValidatePublicKey(pk); err != nil {
		return err
	}

	cli := client.New(uri, requestTimeout)
	if _, err := issueGatewayMsg(cli, &gateway.HandleMsg{
		UpdateOwner: &gateway.UpdateOwnerMsg{Owner: owner, PublicKey: pk},
	}); err != nil {
		return err
	}
	color.Green("gateway now owned by %s", owner)
	return nil
}

var freezeCmd = &cobra.Command{
	Use:   "freeze [options]",
	Short: "Permanently freezes the gateway",
	Long: `
Freezes the gateway. Ownership can no longer change and signed batches
are rejected. The owner keeps direct execution.

$ gateway-cli freeze

`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cli := client.New(uri, requestTimeout)
		if _, err := issueGatewayMsg(cli, &gateway.HandleMsg{Freeze: &gateway.FreezeMsg{}}); err != nil {
			return err
		}
		color.Red("gateway frozen")
		return nil
	},
}
