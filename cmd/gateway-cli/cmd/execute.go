// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ava-labs/gatewayvm/client"
	"github.com/ava-labs/gatewayvm/gateway"
)

var register []string

func init() {
	for _, c := range []*cobra.Command{executeCmd, executeSignedCmd} {
		c.PersistentFlags().StringSliceVar(
			&register,
			"register",
			nil,
			"names to reserve for the contracts the batch instantiates",
		)
	}
}

var executeCmd = &cobra.Command{
	Use:   "execute [options] <batch file>",
	Short: "Relays a batch on the owner's direct authority",
	Long: `
Relays a batch through the gateway. The transaction must be signed by
the gateway owner.

$ gateway-cli execute batch.json --register=my_token

`,
	RunE: executeFunc,
}

func executeFunc(cmd *cobra.Command, args []string) error {
	msgs, err := getBatchOp(args)
	if err != nil {
		return err
	}
	cli := client.New(uri, requestTimeout)
	_, err = issueGatewayMsg(cli, &gateway.HandleMsg{
		Execute: &gateway.ExecuteMsg{Msgs: msgs, Register: register},
	})
	return err
}

var executeSignedCmd = &cobra.Command{
	Use:   "execute-signed [options] <batch file> <signature>",
	Short: "Relays a batch authorized by the owner's signature",
	Long: `
Relays a batch signed with "gateway-cli sign". Any account may submit it;
the local key only pays for the host transaction.

$ gateway-cli execute-signed batch.json 0x...

`,
	RunE: executeSignedFunc,
}

func executeSignedFunc(cmd *cobra.Command, args []string) error {
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
	reply, err := issueGatewayMsg(cli, &gateway.HandleMsg{
		ExecuteSigned: &gateway.ExecuteSignedMsg{Msgs: msgs, Sig: sig, Register: register},
	})
	if err != nil {
		return err
	}
	color.Green("relayed %d messages in %s", len(msgs), reply.TxID)
	return nil
}
