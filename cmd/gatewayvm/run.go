// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ava-labs/avalanchego/database/memdb"
	log "github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/gatewayvm/vm"
)

func runFunc(cmd *cobra.Command, args []string) error {
	v, config, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	lvl, err := log.LvlFromString(config.LogLevel)
	if err != nil {
		return err
	}
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(os.Stderr, log.LogfmtFormat())))

	genesisBytes, err := os.ReadFile(v.GetString(genesisFileKey))
	if err != nil {
		return err
	}

	// TODO: back the VM with avalanchego's leveldb so state survives restarts
	chain := vm.New(config)
	if err := chain.Initialize(memdb.New(), genesisBytes); err != nil {
		return err
	}
	handlers, err := chain.CreateHandlers()
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	for endpoint, h := range handlers {
		mux.Handle(endpoint, h.Handler)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx, config, mux, chain)
}

func serve(ctx context.Context, config vm.Config, h http.Handler, chain *vm.VM) error {
	server := &http.Server{
		Addr:              config.HTTPAddress,
		Handler:           h,
		ReadHeaderTimeout: config.ReadTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("serving", "address", config.HTTPAddress, "endpoint", config.Endpoint)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("shutdown failed", "err", err)
		}
		return chain.Shutdown()
	})
	return g.Wait()
}
