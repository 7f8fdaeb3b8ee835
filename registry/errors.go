// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotPending    = errors.New("registration not pending")
	ErrNotFound      = errors.New("registration not found")

	// ErrAlreadyRegistered is returned when a confirmed entry is confirmed
	// again.
	ErrAlreadyRegistered = fmt.Errorf("%w: already registered", ErrNotPending)

	ErrInvalidName   = errors.New("name cannot be empty")
	ErrNameTooBig    = errors.New("name too big")
	ErrInvalidCaller = errors.New("caller cannot be the zero address")
	ErrCorruption    = errors.New("corrupt registration entry")
	ErrInvalidStatus = errors.New("invalid registration status")
)
