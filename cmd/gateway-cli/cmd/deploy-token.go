// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ava-labs/gatewayvm/client"
	"github.com/ava-labs/gatewayvm/crypto"
	"github.com/ava-labs/gatewayvm/factory"
	"github.com/ava-labs/gatewayvm/gateway"
	"github.com/ava-labs/gatewayvm/host"
)

var (
	tokenCap uint64
	signed   bool
)

func init() {
	deployTokenCmd.PersistentFlags().Uint64Var(
		&tokenCap,
		"cap",
		0,
		"maximum supply (0 for uncapped)",
	)
	deployTokenCmd.PersistentFlags().BoolVar(
		&signed,
		"signed",
		false,
		"relay as a signed batch instead of a direct execution",
	)
}

var deployTokenCmd = &cobra.Command{
	Use:   "deploy-token [options] <name> <symbol> <decimals>",
	Short: "Deploys a token through the gateway-owned factory",
	Long: `
Deploys a token from the factory created at genesis. The factory is owned
by the gateway, so the request is relayed by the gateway and the new token
registers itself with the factory once instantiated.

$ gateway-cli deploy-token "Gateway Token" GATE 6 --cap=1000000
$ gateway-cli token GATE

`,
	RunE: deployTokenFunc,
}

func deployTokenFunc(cmd *cobra.Command, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("expected exactly 3 arguments, got %d", len(args))
	}
	decimals, err := strconv.ParseUint(args[2], 10, 8)
	if err != nil {
		return err
	}

	cli := client.New(uri, requestTimeout)
	addrs, err := cli.Addresses()
	if err != nil {
		return err
	}
	msg, err := host.NewExecuteMsg(addrs.Factory, &factory.HandleMsg{
		DeployToken: &factory.DeployTokenMsg{
			Name:     args[0],
			Symbol:   args[1],
			Decimals: uint8(decimals),
			Cap:      tokenCap,
		},
	})
	if err != nil {
		return err
	}
	msgs := []host.Msg{msg}

	var hm *gateway.HandleMsg
	if signed {
		priv, err := crypto.LoadKey(privateKeyFile)
		if err != nil {
			return err
		}
		nonce, sig, err := client.SignBatch(cli, msgs, priv)
		if err != nil {
			return err
		}
		color.Yellow("signed deployment at nonce %d", nonce)
		hm = &gateway.HandleMsg{ExecuteSigned: &gateway.ExecuteSignedMsg{Msgs: msgs, Sig: sig}}
	} else {
		hm = &gateway.HandleMsg{Execute: &gateway.ExecuteMsg{Msgs: msgs}}
	}
	if _, err := issueGatewayMsg(cli, hm); err != nil {
		return err
	}

	addr, status, err := cli.TokenAddress(args[1])
	if err != nil {
		return err
	}
	printRegistration(args[1], addr, status)
	return nil
}
