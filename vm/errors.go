// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"errors"
)

var (
	ErrNotInitialized   = errors.New("vm is not initialized")
	ErrInvalidEmptyTx   = errors.New("invalid empty transaction")
	ErrWrongMagic       = errors.New("wrong magic")
	ErrInvalidSequence  = errors.New("invalid sequence")
	ErrUnknownRegistry  = errors.New("unknown registry")
	ErrCorruption       = errors.New("corruption detected")
	ErrMissingSignature = errors.New("missing signature")
)
