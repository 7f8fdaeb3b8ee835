// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package codec implements the canonical binary encoding shared by contract
// state records and the signed action digest.
package codec

import (
	"github.com/ava-labs/avalanchego/codec"
	"github.com/ava-labs/avalanchego/codec/linearcodec"
	"github.com/ava-labs/avalanchego/utils/wrappers"
)

// codecVersion is the current default codec version. Changing the encoding
// of any action type invalidates every signature issued against it.
const codecVersion = 0

var (
	codecManager codec.Manager
	c            linearcodec.Codec
)

func init() {
	c = linearcodec.NewDefault()
	codecManager = codec.NewDefaultManager()
	errs := wrappers.Errs{}
	errs.Add(codecManager.RegisterCodec(codecVersion, c))
	if errs.Errored() {
		panic(errs.Err)
	}
}

// Manager returns the initialized codec manager.
func Manager() codec.Manager {
	return codecManager
}

func Marshal(source interface{}) ([]byte, error) {
	return codecManager.Marshal(codecVersion, source)
}

func Unmarshal(source []byte, destination interface{}) (uint16, error) {
	return codecManager.Unmarshal(source, destination)
}

// RegisterType registers a concrete type that may appear behind an interface
// field of an encoded struct.
func RegisterType(t interface{}) error {
	return c.RegisterType(t)
}
