// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ava-labs/gatewayvm/host"
)

func TestReadBatch(t *testing.T) {
	t.Parallel()

	contract := common.HexToAddress("0x0000000000000000000000000000000000000001")
	tt := []struct {
		batch string
		msgs  int
		err   error
	}{
		{
			batch: `[{"type":"execute","contract":"` + contract.Hex() + `","payload":{"freeze":{}}}]`,
			msgs:  1,
		},
		{
			batch: `[
				{"type":"instantiate","codeId":3,"label":"token","payload":{}},
				{"type":"execute","contract":"` + contract.Hex() + `","payload":{}}
			]`,
			msgs: 2,
		},
		{
			batch: `[{"type":"execute","payload":{}}]`,
			err:   host.ErrInvalidContract,
		},
		{
			batch: `[{"type":"migrate","payload":{}}]`,
			err:   host.ErrInvalidMsgType,
		},
		{
			batch: `[]`,
			err:   errEmptyBatch,
		},
	}
	dir := t.TempDir()
	for i, tv := range tt {
		p := filepath.Join(dir, fmt.Sprintf("batch-%d.json", i))
		if err := os.WriteFile(p, []byte(tv.batch), fsModeWrite); err != nil {
			t.Fatal(err)
		}
		msgs, err := readBatch(p)
		if !errors.Is(err, tv.err) {
			t.Fatalf("#%d: error mismatch %v, expected %v", i, err, tv.err)
		}
		if tv.err == nil && len(msgs) != tv.msgs {
			t.Fatalf("#%d: expected %d messages, got %d", i, tv.msgs, len(msgs))
		}
	}
}

func TestGetBatchOpArgs(t *testing.T) {
	t.Parallel()

	if _, err := getBatchOp(nil); err == nil {
		t.Fatal("expected error with no arguments")
	}
	if _, err := getBatchOp([]string{"a", "b"}); err == nil {
		t.Fatal("expected error with two arguments")
	}
}
