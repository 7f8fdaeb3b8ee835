// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ava-labs/gatewayvm/vm"
)

const (
	envPrefix = "GATEWAYVM"

	configFileKey  = "config-file"
	genesisFileKey = "genesis-file"
)

func buildFlagSet() *pflag.FlagSet {
	var defaults vm.Config
	defaults.SetDefaults()

	fs := pflag.NewFlagSet(vm.Name, pflag.ContinueOnError)
	fs.String(configFileKey, "", "JSON or YAML config file")
	fs.String(genesisFileKey, "genesis.json", "genesis file created by gateway-cli")
	fs.String("http-address", defaults.HTTPAddress, "address the public service listens on")
	fs.String("endpoint", defaults.Endpoint, "path the public service is mounted on")
	fs.Duration("read-timeout", defaults.ReadTimeout, "timeout for reading request headers")
	fs.Duration("shutdown-timeout", defaults.ShutdownTimeout, "timeout for draining requests on shutdown")
	fs.String("log-level", defaults.LogLevel, "log level (debug, info, warn, error)")
	fs.Bool("log-requests", defaults.LogRequests, "log every public service call")
	return fs
}

// loadConfig merges, in increasing priority, the defaults, the config file,
// GATEWAYVM_* environment variables and the command line.
func loadConfig(fs *pflag.FlagSet) (*viper.Viper, vm.Config, error) {
	var config vm.Config
	config.SetDefaults()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, config, err
	}

	if f := v.GetString(configFileKey); f != "" {
		v.SetConfigFile(f)
		if err := v.ReadInConfig(); err != nil {
			return nil, config, fmt.Errorf("%w: failed to read %s", err, f)
		}
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, config, err
	}
	if config.Endpoint == "" || !strings.HasPrefix(config.Endpoint, "/") {
		return nil, config, fmt.Errorf("invalid endpoint %q", config.Endpoint)
	}
	return v, config, nil
}
