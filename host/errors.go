// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import "errors"

var (
	// Routing
	ErrCodeNotFound     = errors.New("code not found")
	ErrDuplicateCode    = errors.New("code already registered")
	ErrContractNotFound = errors.New("contract not found")
	ErrDepthExceeded    = errors.New("message depth exceeded")

	// Message Correctness
	ErrInvalidMsgType  = errors.New("invalid message type")
	ErrInvalidContract = errors.New("invalid contract address")
	ErrInvalidCodeID   = errors.New("invalid code id")
	ErrLabelTooBig     = errors.New("label too big")
)
