// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package version

import (
	"testing"

	"github.com/ava-labs/avalanchego/version"
	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	assert.Equal(t, "v0.1.0", Version.String())
	assert.Equal(t, 1, Version.Compare(version.NewDefaultVersion(0, 0, 9)))
}
