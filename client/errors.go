// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import "errors"

var (
	ErrCannotExecute  = errors.New("signature does not authorize batch")
	ErrDigestMismatch = errors.New("endpoint digest does not match batch")
)
