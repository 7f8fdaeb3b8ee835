// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vm hosts the gateway, its verification service and the token
// factory, and serves them over JSON-RPC.
package vm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/versiondb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/snow/engine/common"
	avajson "github.com/ava-labs/avalanchego/utils/json"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/rpc/v2"
	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/gatewayvm/factory"
	"github.com/ava-labs/gatewayvm/gateway"
	"github.com/ava-labs/gatewayvm/host"
	"github.com/ava-labs/gatewayvm/registry"
	"github.com/ava-labs/gatewayvm/token"
	"github.com/ava-labs/gatewayvm/verifier"
	"github.com/ava-labs/gatewayvm/version"
)

const (
	Name           = "gatewayvm"
	PublicEndpoint = "/public"
)

type VM struct {
	config  Config
	genesis *Genesis

	db     database.Database
	state  database.Database
	router *host.Router
	addrs  *Addresses

	// [l] serializes state transitions; queries only read committed state.
	l sync.RWMutex
}

func New(config Config) *VM {
	return &VM{config: config}
}

// Initialize registers every contract code and, on first boot, instantiates
// the verifier, the gateway and a token factory owned by the gateway.
func (vm *VM) Initialize(db database.Database, genesisBytes []byte) error {
	g, err := ParseGenesis(genesisBytes)
	if err != nil {
		return err
	}
	vm.genesis = g
	vm.db = db
	vm.state = stateDB(db)
	vm.router = host.NewRouter(db)

	for id, c := range map[uint64]host.Contract{
		GatewayCodeID:  gateway.NewContract(),
		VerifierCodeID: verifier.NewContract(),
		TokenCodeID:    token.NewContract(),
		FactoryCodeID:  factory.NewContract(),
	} {
		if err := vm.router.RegisterCode(id, c); err != nil {
			return err
		}
	}

	addrs, exists, err := GetAddresses(vm.state)
	if err != nil {
		return err
	}
	if exists {
		vm.addrs = addrs
		log.Info("loaded state", "gateway", addrs.Gateway, "verifier", addrs.Verifier, "factory", addrs.Factory)
		return nil
	}

	vdb := versiondb.New(db)
	addrs, err = vm.boot(vm.router.At(vdb))
	if err != nil {
		vdb.Abort()
		return fmt.Errorf("%w: unable to boot", err)
	}
	if err := PutAddresses(stateDB(vdb), addrs); err != nil {
		vdb.Abort()
		return err
	}
	if err := vdb.Commit(); err != nil {
		return err
	}
	vm.addrs = addrs
	log.Info("initialized genesis", "owner", g.Owner, "gateway", addrs.Gateway, "verifier", addrs.Verifier, "factory", addrs.Factory)
	return nil
}

func (vm *VM) boot(r *host.Router) (*Addresses, error) {
	g := vm.genesis
	verifierAddr, _, err := r.Instantiate(g.Owner, VerifierCodeID, "verifier", []byte("{}"))
	if err != nil {
		return nil, err
	}
	initMsg, err := json.Marshal(&gateway.InitMsg{
		Owner:     g.Owner,
		PublicKey: g.OwnerPublicKey,
		Verifier:  verifierAddr,
	})
	if err != nil {
		return nil, err
	}
	gatewayAddr, _, err := r.Instantiate(g.Owner, GatewayCodeID, "gateway", initMsg)
	if err != nil {
		return nil, err
	}

	// The factory is instantiated through the gateway, so the gateway owns it,
	// and reports back to the gateway's registry from its init hook.
	hook, err := host.NewInitHook(gatewayAddr, &gateway.HandleMsg{Register: &gateway.RegisterMsg{Name: FactoryName}})
	if err != nil {
		return nil, err
	}
	spawn, err := host.NewInstantiateMsg(FactoryCodeID, FactoryName, &factory.InitMsg{
		TokenCodeID: TokenCodeID,
		InitHook:    hook,
	})
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(&gateway.HandleMsg{Execute: &gateway.ExecuteMsg{
		Msgs:     []host.Msg{spawn},
		Register: []string{FactoryName},
	}})
	if err != nil {
		return nil, err
	}
	res, err := r.Execute(g.Owner, gatewayAddr, payload)
	if err != nil {
		return nil, err
	}
	return &Addresses{
		Verifier: verifierAddr,
		Gateway:  gatewayAddr,
		Factory:  res.Instantiated[0],
	}, nil
}

func (vm *VM) Genesis() *Genesis {
	return vm.genesis
}

func (vm *VM) Addresses() *Addresses {
	return vm.addrs
}

func (vm *VM) Version() string { return version.Version.String() }

// Submit executes [tx] and commits its effects together with the sender's
// sequence. Nothing is written if execution fails.
func (vm *VM) Submit(tx *Transaction) (*host.Result, error) {
	if err := tx.Init(vm.genesis); err != nil {
		return nil, err
	}

	vm.l.Lock()
	defer vm.l.Unlock()

	sender := tx.Sender()
	utx := tx.UnsignedTransaction
	seq, err := GetSequence(vm.state, sender)
	if err != nil {
		return nil, err
	}
	if utx.Seq != seq {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrInvalidSequence, seq, utx.Seq)
	}

	vdb := versiondb.New(vm.db)
	res, err := vm.router.At(vdb).Execute(sender, utx.Contract, utx.Payload)
	if err != nil {
		vdb.Abort()
		log.Debug("transaction failed", "txID", tx.ID(), "sender", sender, "contract", utx.Contract, "err", err)
		return nil, err
	}
	state := stateDB(vdb)
	if err := PutSequence(state, sender, seq+1); err != nil {
		vdb.Abort()
		return nil, err
	}
	if err := SetTransaction(state, tx); err != nil {
		vdb.Abort()
		return nil, err
	}
	if err := vdb.Commit(); err != nil {
		return nil, err
	}
	log.Info("transaction accepted", "txID", tx.ID(), "sender", sender, "contract", utx.Contract, "events", len(res.Events))
	return res, nil
}

// Query sends [msg] to [contract] and decodes the answer into [reply].
func (vm *VM) Query(contract ethcommon.Address, msg interface{}, reply interface{}) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	vm.l.RLock()
	raw, err := vm.router.Query(contract, b)
	vm.l.RUnlock()
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, reply)
}

func (vm *VM) Sequence(addr ethcommon.Address) (uint64, error) {
	vm.l.RLock()
	defer vm.l.RUnlock()
	return GetSequence(vm.state, addr)
}

func (vm *VM) HasTx(txID ids.ID) (bool, error) {
	vm.l.RLock()
	defer vm.l.RUnlock()
	return HasTransaction(vm.state, txID)
}

const (
	GatewayRegistry = "gateway"
	FactoryRegistry = "factory"
)

// Registrations lists the deferred registration table of the gateway or the
// token factory.
func (vm *VM) Registrations(which string) ([]*registry.Entry, error) {
	vm.l.RLock()
	defer vm.l.RUnlock()

	table, err := vm.registry(which)
	if err != nil {
		return nil, err
	}
	return table.Entries()
}

// Lookup resolves [name] in the gateway or token factory table. Unknown names
// fail with registry.ErrNotFound; pending ones resolve to the zero address.
func (vm *VM) Lookup(which string, name string) (ethcommon.Address, registry.Status, error) {
	vm.l.RLock()
	defer vm.l.RUnlock()

	table, err := vm.registry(which)
	if err != nil {
		return ethcommon.Address{}, registry.Unknown, err
	}
	s, err := table.Status(name)
	if err != nil {
		return ethcommon.Address{}, registry.Unknown, err
	}
	if s == registry.Unknown {
		return ethcommon.Address{}, s, fmt.Errorf("%w: %q", registry.ErrNotFound, name)
	}
	addr, err := table.Lookup(name)
	if err != nil {
		return ethcommon.Address{}, registry.Unknown, err
	}
	return addr, s, nil
}

func (vm *VM) registry(which string) (*registry.Table, error) {
	switch which {
	case GatewayRegistry:
		return gateway.Registry(host.ContractDB(vm.db, vm.addrs.Gateway)), nil
	case FactoryRegistry:
		return factory.Registry(host.ContractDB(vm.db, vm.addrs.Factory)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegistry, which)
	}
}

// CreateHandlers returns the public service handlers keyed by endpoint.
func (vm *VM) CreateHandlers() (map[string]*common.HTTPHandler, error) {
	server := rpc.NewServer()
	server.RegisterCodec(avajson.NewCodec(), "application/json")
	server.RegisterCodec(avajson.NewCodec(), "application/json;charset=UTF-8")
	if err := server.RegisterService(&PublicService{vm: vm}, Name); err != nil {
		return nil, err
	}
	return map[string]*common.HTTPHandler{
		vm.config.Endpoint: {
			LockOptions: common.NoLock,
			Handler:     server,
		},
	}, nil
}

func (vm *VM) Shutdown() error {
	if vm.db == nil {
		return nil
	}
	return vm.db.Close()
}
