package staking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nzsquirrell/TrezarCoin/conf"
	"github.com/nzsquirrell/TrezarCoin/mempool"
	"github.com/nzsquirrell/TrezarCoin/mining"
	"github.com/nzsquirrell/TrezarCoin/model/chain"
	"github.com/nzsquirrell/TrezarCoin/model/chainparams"
	"github.com/nzsquirrell/TrezarCoin/util"
)

type systemClock struct{}

func (systemClock) AdjustedTime() time.Time { return time.Now() }

type fakePeers struct{ ready bool }

func (f fakePeers) Ready() bool { return f.ready }

type fakeWallet struct{ locked bool }

func (f fakeWallet) IsLocked() bool { return f.locked }

type fakeReserve struct {
	script []byte
	err    error
}

func (f fakeReserve) GetReserveScript() ([]byte, error) { return f.script, f.err }

type fakeSigner struct {
	calls int
	ok    bool
	err   error
}

func (f *fakeSigner) SignBlock(tmpl *mining.TemplateResult, reward util.Amount) (bool, error) {
	f.calls++
	return f.ok, f.err
}

type fakeChecker struct{ calls int }

func (f *fakeChecker) CheckStake(tmpl *mining.TemplateResult) error {
	f.calls++
	return nil
}

func newTestLoop(t *testing.T) (*Loop, *Controller) {
	t.Helper()
	params := chainparams.RegTestParams
	finalizer := mining.NewFinalizer(mempool.New(), chain.New(), &params, systemClock{}, conf.DefaultConfig().Mining, mining.FixedDifficultyOracle(0x1d00ffff))
	ctrl := NewController()
	loop := NewLoop(finalizer, ctrl, 5*time.Millisecond)
	loop.MineOnDemand = true
	loop.PollInterval = 5 * time.Millisecond
	return loop, ctrl
}

func TestLoopWaitsWhileStakingDisabledThenCancels(t *testing.T) {
	loop, _ := newTestLoop(t)
	signer := &fakeSigner{ok: true}
	loop.Reserve = fakeReserve{script: []byte{0x01}}
	loop.Signer = signer
	loop.Checker = &fakeChecker{}

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	err := loop.Run(ctx)
	assert.Error(t, err)
	assert.Zero(t, signer.calls)
}

func TestLoopWaitsWhileWalletLockedAndZeroesSearchInterval(t *testing.T) {
	loop, ctrl := newTestLoop(t)
	ctrl.SetStaking(true)
	ctrl.SetLastSearchInterval(99)
	loop.Wallet = fakeWallet{locked: true}
	signer := &fakeSigner{ok: true}
	loop.Reserve = fakeReserve{script: []byte{0x01}}
	loop.Signer = signer
	loop.Checker = &fakeChecker{}

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	err := loop.Run(ctx)
	assert.Error(t, err)
	assert.Zero(t, signer.calls)
	assert.EqualValues(t, 0, ctrl.LastSearchInterval())
}

func TestLoopFailsTerminallyWhenReserveScriptUnavailable(t *testing.T) {
	loop, ctrl := newTestLoop(t)
	ctrl.SetStaking(true)
	loop.Reserve = fakeReserve{script: nil}
	signer := &fakeSigner{}
	loop.Signer = signer
	loop.Checker = &fakeChecker{}

	err := loop.Run(context.Background())
	assert.Error(t, err)
	assert.Zero(t, signer.calls)
}

func TestLoopSignsAndChecksOnSuccessfulKernel(t *testing.T) {
	loop, ctrl := newTestLoop(t)
	ctrl.SetStaking(true)
	loop.Reserve = fakeReserve{script: []byte{0x01}}
	signer := &fakeSigner{ok: true}
	checker := &fakeChecker{}
	loop.Signer = signer
	loop.Checker = checker

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := loop.Run(ctx)
	assert.Error(t, err)
	assert.GreaterOrEqual(t, signer.calls, 1)
	assert.GreaterOrEqual(t, checker.calls, 1)
}

func TestLoopSkipsCheckStakeWhenNoKernelFound(t *testing.T) {
	loop, ctrl := newTestLoop(t)
	ctrl.SetStaking(true)
	loop.Reserve = fakeReserve{script: []byte{0x01}}
	signer := &fakeSigner{ok: false}
	checker := &fakeChecker{}
	loop.Signer = signer
	loop.Checker = checker

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := loop.Run(ctx)
	assert.Error(t, err)
	assert.GreaterOrEqual(t, signer.calls, 1)
	assert.Zero(t, checker.calls)
}

func TestLoopReturnsInterruptedErrorOnCancellation(t *testing.T) {
	loop, ctrl := newTestLoop(t)
	ctrl.SetStaking(true)
	loop.Reserve = fakeReserve{script: []byte{0x01}}
	loop.Signer = &fakeSigner{ok: false}
	loop.Checker = &fakeChecker{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := loop.Run(ctx)
	assert.Error(t, err)
}
