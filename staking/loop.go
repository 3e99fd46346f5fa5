package staking

import (
	"context"
	"time"

	"github.com/nzsquirrell/TrezarCoin/errcode"
	"github.com/nzsquirrell/TrezarCoin/log"
	"github.com/nzsquirrell/TrezarCoin/mining"
	"github.com/nzsquirrell/TrezarCoin/util"
)

// PeerWaiter reports whether the node has peers and has finished initial block download
// (spec.md §4.7 step 1). A "mine-on-demand" network (regtest) skips this wait entirely.
type PeerWaiter interface {
	Ready() bool
}

// WalletLocker reports whether the wallet is currently locked (spec.md §4.7 step 3).
type WalletLocker interface {
	IsLocked() bool
}

// ReserveScriptProvider hands back a coinbase reserve script from the wallet (spec.md §4.7
// step 4); an empty script or an error is terminal.
type ReserveScriptProvider interface {
	GetReserveScript() ([]byte, error)
}

// Signer is the external SignBlock collaborator: given a freshly built PoS template and its
// stake reward, it searches for a valid kernel and signs the resulting coinstake
// (spec.md §6's wallet.CreateCoinStake plus key signing). ok is false when no kernel was found
// this round, which is not an error.
type Signer interface {
	SignBlock(tmpl *mining.TemplateResult, reward util.Amount) (ok bool, err error)
}

// Checker is the external CheckStake collaborator: re-verifies the PoS proof, rechecks the
// chain tip is unchanged, and submits the block for acceptance.
type Checker interface {
	CheckStake(tmpl *mining.TemplateResult) error
}

// Loop is the Staker Loop of spec.md §4.7, run on its own dedicated worker. Grounded on
// original_source/src/miner.cpp's ThreadStakeMiner.
type Loop struct {
	Finalizer *mining.Finalizer
	Controller *Controller

	Peers   PeerWaiter
	Wallet  WalletLocker
	Reserve ReserveScriptProvider
	Signer  Signer
	Checker Checker

	// MineOnDemand skips the peer/IBD wait, mirroring chainparams.Params.MineBlocksOnDemands.
	MineOnDemand bool
	// PollInterval is the 1s poll period for the disabled/locked waits.
	PollInterval time.Duration
	// MinerSleep is the backoff after a failed template build, a sign error, or a round with
	// no kernel found.
	MinerSleep time.Duration
}

// postSignSleep is the short pause after a successful SignBlock+CheckStake round
// (spec.md §4.7 step 6), matching the original's MilliSleep(500) in ThreadStakeMiner.
const postSignSleep = 500 * time.Millisecond

// NewLoop builds a Loop with spec.md §4.7's default 1-second poll interval.
func NewLoop(finalizer *mining.Finalizer, ctrl *Controller, minerSleep time.Duration) *Loop {
	return &Loop{
		Finalizer:    finalizer,
		Controller:   ctrl,
		PollInterval: time.Second,
		MinerSleep:   minerSleep,
	}
}

// Run drives the loop until ctx is cancelled. Cancellation is cooperative: it is only observed
// at the explicit sleep/poll points named in spec.md §5, never mid-selection.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if !l.MineOnDemand && l.Peers != nil {
			for !l.Peers.Ready() {
				if l.sleepOrDone(ctx, l.PollInterval) {
					return cancelled()
				}
			}
		}

		for !l.Controller.IsStaking() {
			if l.sleepOrDone(ctx, l.PollInterval) {
				return cancelled()
			}
		}

		for l.Wallet != nil && l.Wallet.IsLocked() {
			l.Controller.SetLastSearchInterval(0)
			if l.sleepOrDone(ctx, l.PollInterval) {
				return cancelled()
			}
		}

		script, err := l.Reserve.GetReserveScript()
		if err != nil || len(script) == 0 {
			log.Errorf("staking: no coinbase reserve script available: %v", err)
			return errcode.New(errcode.ModuleStaking, errcode.CodeNoCoinbaseScript, "no coinbase reserve script available")
		}

		searchStart := time.Now()
		var reward util.Amount
		tmpl, err := l.Finalizer.CreateNewBlock(script, true, &reward)
		l.Controller.SetLastSearchInterval(int64(time.Since(searchStart).Seconds()))
		if err != nil {
			log.Errorf("staking: template build failed: %v", err)
			if l.sleepOrDone(ctx, l.MinerSleep) {
				return cancelled()
			}
			continue
		}

		ok, err := l.Signer.SignBlock(tmpl, reward)
		if err != nil {
			log.Errorf("staking: sign failed: %v", err)
			if l.sleepOrDone(ctx, l.MinerSleep) {
				return cancelled()
			}
			continue
		}
		if !ok {
			if l.sleepOrDone(ctx, l.MinerSleep) {
				return cancelled()
			}
			continue
		}

		if err := l.Checker.CheckStake(tmpl); err != nil {
			log.Errorf("staking: stake check/submit failed: %v", err)
		}

		if l.sleepOrDone(ctx, postSignSleep) {
			return cancelled()
		}
	}
}

func (l *Loop) sleepOrDone(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return true
	case <-time.After(d):
		return false
	}
}

func cancelled() error {
	return errcode.New(errcode.ModuleStaking, errcode.CodeInterrupted, "staking loop cancelled")
}
