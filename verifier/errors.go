// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package verifier

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is a request-level failure. It is never reported as
	// a signature that does not verify.
	ErrMalformedInput     = errors.New("malformed verification input")
	ErrMalformedPublicKey = fmt.Errorf("%w: public key", ErrMalformedInput)
	ErrMalformedSignature = fmt.Errorf("%w: signature", ErrMalformedInput)

	ErrNoHandlers   = errors.New("no handlers exist")
	ErrInvalidQuery = errors.New("invalid query")
)
