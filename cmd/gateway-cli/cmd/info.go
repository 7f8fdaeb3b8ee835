// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ava-labs/gatewayvm/client"
	"github.com/ava-labs/gatewayvm/registry"
	"github.com/ava-labs/gatewayvm/vm"
)

var configCmd = &cobra.Command{
	Use:   "config [options]",
	Short: "Prints the gateway authorization state",
	Long: `
Prints the owner, public key, nonce, verifier and mutability
of the gateway created at genesis.

$ gateway-cli config

`,
	RunE: configFunc,
}

func configFunc(cmd *cobra.Command, args []string) error {
	cli := client.New(uri, requestTimeout)
	addrs, err := cli.Addresses()
	if err != nil {
		return err
	}
	cfg, err := cli.Config()
	if err != nil {
		return err
	}
	color.Blue("gateway:   %s", addrs.Gateway)
	color.Blue("factory:   %s", addrs.Factory)
	color.Blue("verifier:  %s", cfg.Verifier)
	color.Blue("owner:     %s", cfg.Owner)
	color.Blue("publicKey: %s", cfg.PublicKey)
	color.Blue("nonce:     %d", cfg.Nonce)
	if cfg.Frozen() {
		color.Red("frozen")
	} else {
		color.Green("mutable")
	}
	return nil
}

var addressCmd = &cobra.Command{
	Use:   "address [options] <name>",
	Short: "Resolves a name registered on the gateway",
	Long: `
Resolves a name reserved by "execute --register" or "execute-signed --register".
Without arguments, lists every registration.

$ gateway-cli address token_factory

`,
	RunE: addressFunc,
}

func addressFunc(cmd *cobra.Command, args []string) error {
	cli := client.New(uri, requestTimeout)
	switch len(args) {
	case 0:
		return listRegistrations(cli, vm.GatewayRegistry)
	case 1:
		addr, status, err := cli.ContractAddress(args[0])
		if err != nil {
			return err
		}
		printRegistration(args[0], addr, status)
		return nil
	default:
		return fmt.Errorf("expected at most 1 argument, got %d", len(args))
	}
}

var tokenCmd = &cobra.Command{
	Use:   "token [options] <symbol>",
	Short: "Resolves a token deployed by the factory",
	Long: `
Resolves the address of the token deployed for a symbol.
Without arguments, lists every deployment.

$ gateway-cli token GATE

`,
	RunE: tokenFunc,
}

func tokenFunc(cmd *cobra.Command, args []string) error {
	cli := client.New(uri, requestTimeout)
	switch len(args) {
	case 0:
		return listRegistrations(cli, vm.FactoryRegistry)
	case 1:
		addr, status, err := cli.TokenAddress(args[0])
		if err != nil {
			return err
		}
		printRegistration(args[0], addr, status)
		return nil
	default:
		return fmt.Errorf("expected at most 1 argument, got %d", len(args))
	}
}

var schemesCmd = &cobra.Command{
	Use:   "schemes [options]",
	Short: "Lists the schemes the verification service supports",
	RunE: func(cmd *cobra.Command, args []string) error {
		cli := client.New(uri, requestTimeout)
		schemes, err := cli.Schemes()
		if err != nil {
			return err
		}
		color.Blue("schemes: %s", strings.Join(schemes, ", "))
		return nil
	},
}

func listRegistrations(cli client.Client, which string) error {
	entries, err := cli.Registrations(which)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		color.Yellow("no %s registrations", which)
		return nil
	}
	for _, e := range entries {
		printRegistration(e.Name, e.Address, e.Status)
	}
	return nil
}

func printRegistration(name string, addr common.Address, status registry.Status) {
	switch status {
	case registry.Confirmed:
		color.Green("%s => %s", name, addr)
	case registry.Pending:
		color.Yellow("%s => pending", name)
	default:
		color.Red("%s => unknown", name)
	}
}
