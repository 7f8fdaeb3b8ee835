// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factory

import "errors"

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidMsg     = errors.New("invalid message")
	ErrInvalidQuery   = errors.New("invalid query")
	ErrInvalidCodeID  = errors.New("invalid token code id")
	ErrNotInitialized = errors.New("factory is not initialized")
)
