// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	log "github.com/inconshreveable/log15"
	"github.com/spf13/cobra"

	"github.com/ava-labs/gatewayvm/cmd/gatewayvm/version"
)

func init() {
	log.Root().SetHandler(log.LvlFilterHandler(log.LvlInfo, log.StreamHandler(os.Stderr, log.LogfmtFormat())))
}

var rootCmd = &cobra.Command{
	Use:        "gatewayvm",
	Short:      "GatewayVM node",
	SuggestFor: []string{"gatewayvm"},
	RunE:       runFunc,
}

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.Flags().AddFlagSet(buildFlagSet())
}

func init() {
	rootCmd.AddCommand(
		version.NewCommand(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gatewayvm failed %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
