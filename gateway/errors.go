// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gateway

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrFrozen        = errors.New("gateway is frozen")
	ErrAlreadyFrozen = fmt.Errorf("%w: already frozen", ErrFrozen)
	ErrInvalidKey    = errors.New("invalid public key")
	ErrInvalidMsg    = errors.New("invalid message")
	ErrInvalidQuery  = errors.New("invalid query")
	ErrNonceOverflow = errors.New("nonce overflow")
	ErrNotConfigured = errors.New("gateway is not configured")
)
