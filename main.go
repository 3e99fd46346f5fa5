// Command TrezarCoin assembles block templates for a hybrid PoW/PoS chain: it wires the
// mempool, chain view, and configuration into a Finalizer and, when staking is enabled, a
// Staker Loop. Grounded on copernet-copernicus's root-level main.go/initmain.go split.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nzsquirrell/TrezarCoin/conf"
	"github.com/nzsquirrell/TrezarCoin/log"
	"github.com/nzsquirrell/TrezarCoin/mempool"
	"github.com/nzsquirrell/TrezarCoin/mining"
	"github.com/nzsquirrell/TrezarCoin/model/chain"
	"github.com/nzsquirrell/TrezarCoin/model/chainparams"
	"github.com/nzsquirrell/TrezarCoin/staking"
	"github.com/nzsquirrell/TrezarCoin/util"
)

func main() {
	opts, err := conf.ParseArgs(os.Args[1:])
	if err != nil {
		log.Errorf("argument parsing failed: %v", err)
		os.Exit(1)
	}

	cfg, err := conf.Load(opts.DataDir)
	if err != nil {
		log.Errorf("config load failed: %v", err)
		os.Exit(1)
	}
	opts.ApplyTo(cfg)

	params := &chainparams.MainNetParams

	pool := mempool.New()
	activeChain := chain.New()

	finalizer := mining.NewFinalizer(pool, activeChain, params, util.SystemClock{}, cfg.Mining,
		mining.FixedDifficultyOracle(0x1d00ffff))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Infof("shutdown signal received")
		cancel()
	}()

	if !cfg.Staking.Enabled {
		log.Infof("staking disabled; assembler ready, no PoS loop started")
		<-ctx.Done()
		return
	}

	ctrl := staking.NewController()
	ctrl.SetStaking(true)

	loop := staking.NewLoop(finalizer, ctrl, time.Duration(cfg.Staking.MinerSleepMillis)*time.Millisecond)
	loop.MineOnDemand = params.MineBlocksOnDemands

	// Wallet key management and chain acceptance are external collaborators (spec.md §1); a
	// full node wires loop.Reserve/Signer/Checker/Wallet/Peers from its own wallet and P2P
	// packages before enabling staking. Without them there is nothing safe to run.
	if loop.Reserve == nil || loop.Signer == nil || loop.Checker == nil {
		log.Errorf("staking enabled but no wallet/signing collaborators wired; refusing to start loop")
		<-ctx.Done()
		return
	}

	if err := loop.Run(ctx); err != nil {
		log.Errorf("staking loop exited: %v", err)
	}
}
