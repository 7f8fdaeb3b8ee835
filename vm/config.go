// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"time"
)

type Config struct {
	// HTTPAddress is where the public service listens.
	HTTPAddress string `json:"httpAddress" mapstructure:"http-address"`
	// Endpoint is the path the public service is mounted on.
	Endpoint string `json:"endpoint" mapstructure:"endpoint"`

	ReadTimeout     time.Duration `json:"readTimeout" mapstructure:"read-timeout"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout" mapstructure:"shutdown-timeout"`

	LogLevel string `json:"logLevel" mapstructure:"log-level"`
	// LogRequests logs every public service call at debug level.
	LogRequests bool `json:"logRequests" mapstructure:"log-requests"`
}

func (c *Config) SetDefaults() {
	c.HTTPAddress = "127.0.0.1:9660"
	c.Endpoint = PublicEndpoint
	c.ReadTimeout = 10 * time.Second
	c.ShutdownTimeout = 5 * time.Second
	c.LogLevel = "info"
	c.LogRequests = false
}
