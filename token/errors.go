// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import "errors"

var (
	ErrInvalidMsg       = errors.New("invalid message")
	ErrInvalidQuery     = errors.New("invalid query")
	ErrInvalidName      = errors.New("name must be 3 to 50 bytes")
	ErrInvalidSymbol    = errors.New("symbol must be 3 to 12 letters or '-'")
	ErrInvalidDecimals  = errors.New("decimals must not exceed 18")
	ErrMinterRequired   = errors.New("minter must be provided")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrCapExceeded      = errors.New("supply cap exceeded")
	ErrInsufficientFund = errors.New("insufficient funds")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrOverflow         = errors.New("amount overflow")
	ErrNotInitialized   = errors.New("token is not initialized")
)
