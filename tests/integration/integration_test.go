// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// integration implements the integration tests.
package integration_test

import (
	"context"
	"crypto/ecdsa"
	"encoding/hex"
	"encoding/json"
	"flag"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	ecommon "github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/fatih/color"
	log "github.com/inconshreveable/log15"
	ginkgo "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/ava-labs/gatewayvm/client"
	"github.com/ava-labs/gatewayvm/crypto"
	"github.com/ava-labs/gatewayvm/factory"
	"github.com/ava-labs/gatewayvm/gateway"
	"github.com/ava-labs/gatewayvm/host"
	"github.com/ava-labs/gatewayvm/registry"
	"github.com/ava-labs/gatewayvm/token"
	"github.com/ava-labs/gatewayvm/vm"
)

func TestIntegration(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "gatewayvm integration test suites")
}

var (
	requestTimeout time.Duration
	vms            int
)

func init() {
	flag.DurationVar(
		&requestTimeout,
		"request-timeout",
		10*time.Second,
		"timeout for transaction issuance",
	)
	flag.IntVar(
		&vms,
		"vms",
		3,
		"number of VMs to create",
	)
}

var (
	owner     *ecdsa.PrivateKey
	ownerAddr ecommon.Address

	relayer     *ecdsa.PrivateKey
	relayerAddr ecommon.Address

	genesisBytes []byte
	instances    []instance
)

type instance struct {
	vm         *vm.VM
	httpServer *httptest.Server
	cli        client.Client
}

var _ = ginkgo.BeforeSuite(func() {
	gomega.Ω(vms).Should(gomega.BeNumerically(">", 1))

	var err error
	owner, err = crypto.GenerateKey()
	gomega.Ω(err).Should(gomega.BeNil())
	ownerAddr = crypto.Address(&owner.PublicKey)
	log.Debug("generated key", "addr", ownerAddr, "priv", hex.EncodeToString(ethcrypto.FromECDSA(owner)))

	relayer, err = crypto.GenerateKey()
	gomega.Ω(err).Should(gomega.BeNil())
	relayerAddr = crypto.Address(&relayer.PublicKey)
	log.Debug("generated key", "addr", relayerAddr, "priv", hex.EncodeToString(ethcrypto.FromECDSA(relayer)))

	g := vm.DefaultGenesis()
	g.Magic = 5
	g.Owner = ownerAddr
	g.OwnerPublicKey = crypto.CompressPublicKey(&owner.PublicKey)
	genesisBytes, err = json.Marshal(g)
	gomega.Ω(err).Should(gomega.BeNil())

	instances = make([]instance, vms)
	for i := range instances {
		instances[i] = newInstance()
	}
	color.Blue("created %d VMs", vms)
})

var _ = ginkgo.AfterSuite(func() {
	for _, iv := range instances {
		iv.httpServer.Close()
		err := iv.vm.Shutdown()
		gomega.Ω(err).Should(gomega.BeNil())
	}
})

var _ = ginkgo.Describe("[Ping]", func() {
	ginkgo.It("can ping", func() {
		for _, inst := range instances {
			ok, err := inst.cli.Ping()
			gomega.Ω(ok).Should(gomega.BeTrue())
			gomega.Ω(err).Should(gomega.BeNil())
		}
	})
})

var _ = ginkgo.Describe("[Boot]", func() {
	ginkgo.It("derives the same contracts on every VM", func() {
		expected, err := instances[0].cli.Addresses()
		gomega.Ω(err).Should(gomega.BeNil())
		for _, inst := range instances[1:] {
			addrs, err := inst.cli.Addresses()
			gomega.Ω(err).Should(gomega.BeNil())
			gomega.Ω(addrs).Should(gomega.Equal(expected))
		}
	})

	ginkgo.It("seeds the gateway from genesis", func() {
		for _, inst := range instances {
			cfg, err := inst.cli.Config()
			gomega.Ω(err).Should(gomega.BeNil())
			gomega.Ω(cfg.Owner).Should(gomega.Equal(ownerAddr))
			gomega.Ω([]byte(cfg.PublicKey)).Should(gomega.Equal(crypto.CompressPublicKey(&owner.PublicKey)))
			gomega.Ω(cfg.Nonce).Should(gomega.Equal(uint64(0)))
			gomega.Ω(cfg.Frozen()).Should(gomega.BeFalse())
		}
	})

	ginkgo.It("registers the factory on the gateway", func() {
		addrs, err := instances[0].cli.Addresses()
		gomega.Ω(err).Should(gomega.BeNil())

		addr, status, err := instances[0].cli.ContractAddress(vm.FactoryName)
		gomega.Ω(err).Should(gomega.BeNil())
		gomega.Ω(status).Should(gomega.Equal(registry.Confirmed))
		gomega.Ω(addr).Should(gomega.Equal(addrs.Factory))
	})
})

var _ = ginkgo.Describe("[Gateway]", ginkgo.Ordered, func() {
	var (
		inst  instance
		addrs *vm.Addresses
	)

	// The flow mutates the gateway, so it runs against a VM of its own.
	ginkgo.BeforeAll(func() {
		inst = newInstance()
		ginkgo.DeferCleanup(func() {
			inst.httpServer.Close()
			gomega.Ω(inst.vm.Shutdown()).Should(gomega.BeNil())
		})
		var err error
		addrs, err = inst.cli.Addresses()
		gomega.Ω(err).Should(gomega.BeNil())
	})

	ginkgo.It("deploys a token on the owner's direct authority", func() {
		deploy := deployTokenMsg(addrs.Factory, "Gateway Token", "GATE")
		issueGateway(inst, owner, &gateway.HandleMsg{
			Execute: &gateway.ExecuteMsg{Msgs: []host.Msg{deploy}},
		})

		_, status, err := inst.cli.TokenAddress("GATE")
		gomega.Ω(err).Should(gomega.BeNil())
		gomega.Ω(status).Should(gomega.Equal(registry.Confirmed))

		cfg, err := inst.cli.Config()
		gomega.Ω(err).Should(gomega.BeNil())
		gomega.Ω(cfg.Nonce).Should(gomega.Equal(uint64(0)))
	})

	ginkgo.It("rejects direct execution from anyone else", func() {
		seq, err := inst.cli.Sequence(relayerAddr)
		gomega.Ω(err).Should(gomega.BeNil())

		deploy := deployTokenMsg(addrs.Factory, "Stolen Token", "STOLEN")
		_, err = client.SignIssueTx(context.Background(), inst.cli, addrs.Gateway, &gateway.HandleMsg{
			Execute: &gateway.ExecuteMsg{Msgs: []host.Msg{deploy}},
		}, relayer)
		gomega.Ω(err).ShouldNot(gomega.BeNil())
		gomega.Ω(err.Error()).Should(gomega.ContainSubstring(gateway.ErrUnauthorized.Error()))

		_, _, err = inst.cli.TokenAddress("STOLEN")
		gomega.Ω(err).ShouldNot(gomega.BeNil())

		// failed transactions do not consume a sequence
		seq2, err := inst.cli.Sequence(relayerAddr)
		gomega.Ω(err).Should(gomega.BeNil())
		gomega.Ω(seq2).Should(gomega.Equal(seq))
	})

	ginkgo.It("relays a signed batch submitted by a third party", func() {
		tokenAddr, _, err := inst.cli.TokenAddress("GATE")
		gomega.Ω(err).Should(gomega.BeNil())

		mint, err := host.NewExecuteMsg(tokenAddr, &token.HandleMsg{
			Mint: &token.MintMsg{Recipient: relayerAddr, Amount: 250},
		})
		gomega.Ω(err).Should(gomega.BeNil())
		msgs := []host.Msg{mint}

		var sig []byte
		ginkgo.By("signing the digest with the owner key", func() {
			var nonce uint64
			nonce, sig, err = client.SignBatch(inst.cli, msgs, owner)
			gomega.Ω(err).Should(gomega.BeNil())
			gomega.Ω(nonce).Should(gomega.Equal(uint64(0)))
		})

		ginkgo.By("submitting from the relayer", func() {
			issueGateway(inst, relayer, &gateway.HandleMsg{
				ExecuteSigned: &gateway.ExecuteSignedMsg{Msgs: msgs, Sig: sig},
			})

			var resp token.BalanceResponse
			err := inst.vm.Query(tokenAddr, &token.QueryMsg{Balance: &token.BalanceQuery{Address: relayerAddr}}, &resp)
			gomega.Ω(err).Should(gomega.BeNil())
			gomega.Ω(resp.Balance).Should(gomega.Equal(uint64(250)))
		})

		ginkgo.By("rejecting a replay of the same signature", func() {
			_, err := client.SignIssueTx(context.Background(), inst.cli, addrs.Gateway, &gateway.HandleMsg{
				ExecuteSigned: &gateway.ExecuteSignedMsg{Msgs: msgs, Sig: sig},
			}, relayer)
			gomega.Ω(err).ShouldNot(gomega.BeNil())
			gomega.Ω(err.Error()).Should(gomega.ContainSubstring(gateway.ErrUnauthorized.Error()))

			cfg, err := inst.cli.Config()
			gomega.Ω(err).Should(gomega.BeNil())
			gomega.Ω(cfg.Nonce).Should(gomega.Equal(uint64(1)))
		})
	})

	ginkgo.It("confirms a name once the child calls back", func() {
		hook, err := host.NewInitHook(addrs.Gateway, &gateway.HandleMsg{
			Register: &gateway.RegisterMsg{Name: "bridge_token"},
		})
		gomega.Ω(err).Should(gomega.BeNil())
		child, err := host.NewInstantiateMsg(vm.TokenCodeID, "bridge", &token.InitMsg{
			Name:     "Bridge Token",
			Symbol:   "BRG",
			Decimals: 6,
			Mint:     &token.MinterData{Minter: addrs.Gateway},
			InitHook: hook,
		})
		gomega.Ω(err).Should(gomega.BeNil())

		reply := issueGateway(inst, owner, &gateway.HandleMsg{
			Execute: &gateway.ExecuteMsg{Msgs: []host.Msg{child}, Register: []string{"bridge_token"}},
		})
		gomega.Ω(reply.Instantiated).Should(gomega.HaveLen(1))

		addr, status, err := inst.cli.ContractAddress("bridge_token")
		gomega.Ω(err).Should(gomega.BeNil())
		gomega.Ω(status).Should(gomega.Equal(registry.Confirmed))
		gomega.Ω(addr).Should(gomega.Equal(reply.Instantiated[0]))

		entries, err := inst.cli.Registrations(vm.GatewayRegistry)
		gomega.Ω(err).Should(gomega.BeNil())
		gomega.Ω(entries).Should(gomega.HaveLen(2))
	})

	ginkgo.It("stops signed relays once frozen", func() {
		issueGateway(inst, owner, &gateway.HandleMsg{Freeze: &gateway.FreezeMsg{}})

		cfg, err := inst.cli.Config()
		gomega.Ω(err).Should(gomega.BeNil())
		gomega.Ω(cfg.Frozen()).Should(gomega.BeTrue())

		deploy := deployTokenMsg(addrs.Factory, "Frozen Token", "FRZ")
		msgs := []host.Msg{deploy}
		_, digest, err := inst.cli.Digest(msgs)
		gomega.Ω(err).Should(gomega.BeNil())
		sig, err := crypto.SignDigest(digest, owner)
		gomega.Ω(err).Should(gomega.BeNil())

		_, err = client.SignIssueTx(context.Background(), inst.cli, addrs.Gateway, &gateway.HandleMsg{
			ExecuteSigned: &gateway.ExecuteSignedMsg{Msgs: msgs, Sig: sig},
		}, relayer)
		gomega.Ω(err).ShouldNot(gomega.BeNil())
		gomega.Ω(err.Error()).Should(gomega.ContainSubstring(gateway.ErrFrozen.Error()))

		ginkgo.By("keeping direct execution for the owner", func() {
			issueGateway(inst, owner, &gateway.HandleMsg{
				Execute: &gateway.ExecuteMsg{Msgs: msgs},
			})
			_, status, err := inst.cli.TokenAddress("FRZ")
			gomega.Ω(err).Should(gomega.BeNil())
			gomega.Ω(status).Should(gomega.Equal(registry.Confirmed))
		})
	})

	ginkgo.It("leaves the other VMs untouched", func() {
		for _, other := range instances {
			cfg, err := other.cli.Config()
			gomega.Ω(err).Should(gomega.BeNil())
			gomega.Ω(cfg.Frozen()).Should(gomega.BeFalse())
			gomega.Ω(cfg.Nonce).Should(gomega.Equal(uint64(0)))
		}
	})
})

func newInstance() instance {
	var config vm.Config
	config.SetDefaults()
	config.LogRequests = true

	v := vm.New(config)
	gomega.Ω(v.Initialize(memdb.New(), genesisBytes)).Should(gomega.BeNil())

	hd, err := v.CreateHandlers()
	gomega.Ω(err).Should(gomega.BeNil())

	httpServer := httptest.NewServer(hd[vm.PublicEndpoint].Handler)
	return instance{
		vm:         v,
		httpServer: httpServer,
		cli:        client.New(httpServer.URL, requestTimeout),
	}
}

func deployTokenMsg(factoryAddr ecommon.Address, name string, symbol string) host.Msg {
	msg, err := host.NewExecuteMsg(factoryAddr, &factory.HandleMsg{
		DeployToken: &factory.DeployTokenMsg{Name: name, Symbol: symbol, Decimals: 6},
	})
	gomega.Ω(err).Should(gomega.BeNil())
	return msg
}

func issueGateway(i instance, signer *ecdsa.PrivateKey, msg *gateway.HandleMsg) *vm.IssueTxReply {
	addrs, err := i.cli.Addresses()
	gomega.Ω(err).Should(gomega.BeNil())

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	reply, err := client.SignIssueTx(ctx, i.cli, addrs.Gateway, msg, signer)
	gomega.Ω(err).Should(gomega.BeNil())

	accepted, err := i.cli.HasTx(reply.TxID)
	gomega.Ω(err).Should(gomega.BeNil())
	gomega.Ω(accepted).Should(gomega.BeTrue())
	return reply
}
