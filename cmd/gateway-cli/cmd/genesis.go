// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ava-labs/gatewayvm/crypto"
	"github.com/ava-labs/gatewayvm/vm"
)

var (
	genesisFile string

	magic uint64
)

func init() {
	genesisCmd.PersistentFlags().StringVar(
		&genesisFile,
		"genesis-file",
		filepath.Join(workDir, "genesis.json"),
		"genesis file path",
	)
}

var genesisCmd = &cobra.Command{
	Use:   "genesis [magic] [options]",
	Short: "Creates a new genesis in the default location",
	Long: `
Creates a genesis whose gateway is owned by the local key.

$ gateway-cli genesis 1 --genesis-file=genesis.json

`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("invalid args")
		}

		m, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return err
		}
		magic = m
		if magic == 0 {
			return vm.ErrInvalidMagic
		}

		return nil
	},
	RunE: genesisFunc,
}

func genesisFunc(cmd *cobra.Command, args []string) error {
	priv, err := crypto.LoadKey(privateKeyFile)
	if err != nil {
		return err
	}

	genesis := vm.DefaultGenesis()
	genesis.Magic = magic
	genesis.Owner = crypto.Address(&priv.PublicKey)
	genesis.OwnerPublicKey = crypto.CompressPublicKey(&priv.PublicKey)
	if err := genesis.Verify(); err != nil {
		return err
	}

	b, err := json.Marshal(genesis)
	if err != nil {
		return err
	}
	if err := os.WriteFile(genesisFile, b, fsModeWrite); err != nil {
		return err
	}
	color.Green("created genesis owned by %s and saved to %s", genesis.Owner, genesisFile)
	return nil
}
