package mining

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nzsquirrell/TrezarCoin/conf"
	"github.com/nzsquirrell/TrezarCoin/mempool"
	"github.com/nzsquirrell/TrezarCoin/model/chain"
	"github.com/nzsquirrell/TrezarCoin/model/chainparams"
	"github.com/nzsquirrell/TrezarCoin/util"
)

func newTestFinalizer(pool *mempool.Pool) *Finalizer {
	params := chainparams.RegTestParams
	return NewFinalizer(pool, chain.New(), &params, fixedClock{time.Now()}, conf.DefaultConfig().Mining, FixedDifficultyOracle(0x1d00ffff))
}

func TestCreateNewBlockOnEmptyMempoolIsCoinbaseOnly(t *testing.T) {
	pool := mempool.New()
	f := newTestFinalizer(pool)

	result, err := f.CreateNewBlock([]byte{0x51}, false, nil)
	require.NoError(t, err)

	require.Len(t, result.Block.Txs, 1)
	assert.True(t, result.Block.Txs[0].IsCoinBase())
	assert.EqualValues(t, 0, result.Fees[0])
}

func TestCreateNewBlockPoWCoinbasePaysFeesPlusSubsidy(t *testing.T) {
	pool := mempool.New()
	e := addWithAncestors(t, pool, 1, 250, 1000)
	_ = e
	f := newTestFinalizer(pool)

	result, err := f.CreateNewBlock([]byte{0x51}, false, nil)
	require.NoError(t, err)

	require.True(t, result.Block.Txs[0].IsCoinBase())
	require.Len(t, result.Block.Txs[0].Outs, 1)
	got := result.Block.Txs[0].Outs[0].Value
	assert.Equal(t, util.Amount(1000)+util.Amount(50*1e8), got)
	assert.EqualValues(t, -1000, result.Fees[0])
}

func TestCreateNewBlockPoSRequiresRewardOutParameter(t *testing.T) {
	pool := mempool.New()
	f := newTestFinalizer(pool)

	_, err := f.CreateNewBlock(nil, true, nil)
	assert.Error(t, err)
}

func TestCreateNewBlockPoSFillsRewardOutAndEmptyPlaceholderOutput(t *testing.T) {
	pool := mempool.New()
	addWithAncestors(t, pool, 1, 250, 1000)
	f := newTestFinalizer(pool)

	var reward util.Amount
	result, err := f.CreateNewBlock(nil, true, &reward)
	require.NoError(t, err)

	require.Len(t, result.Block.Txs[0].Outs, 1)
	assert.EqualValues(t, 0, result.Block.Txs[0].Outs[0].Value)
	assert.Equal(t, util.Amount(1000)+util.Amount(1*1e8), reward)
}

func TestCreateNewBlockPoWRejectsEmptyCoinbaseScript(t *testing.T) {
	pool := mempool.New()
	f := newTestFinalizer(pool)

	_, err := f.CreateNewBlock(nil, false, nil)
	assert.Error(t, err)
}

func TestCreateNewBlockOrdersCoinbaseFirstAndIncludesSelectedTxs(t *testing.T) {
	pool := mempool.New()
	parent := addWithAncestors(t, pool, 1, 250, 1000)
	f := newTestFinalizer(pool)

	result, err := f.CreateNewBlock([]byte{0x51}, false, nil)
	require.NoError(t, err)

	require.Len(t, result.Block.Txs, 2)
	assert.True(t, result.Block.Txs[0].IsCoinBase())
	assert.Equal(t, parent.Hash(), result.Block.Txs[1].Hash())
	assert.Equal(t, parent.ModifiedFee(), result.Fees[1])
}

func TestCreateNewBlockPublishesObservabilityCounters(t *testing.T) {
	pool := mempool.New()
	addWithAncestors(t, pool, 1, 250, 1000)
	f := newTestFinalizer(pool)

	_, err := f.CreateNewBlock([]byte{0x51}, false, nil)
	require.NoError(t, err)

	assert.EqualValues(t, 1, f.Observability.LastBlockTx())
	assert.True(t, f.Observability.LastBlockSize() > 0)
	assert.True(t, f.Observability.LastBlockWeight() > 0)
}

func TestCreateNewBlockOmitsWitnessCommitmentWhenSegwitInactive(t *testing.T) {
	pool := mempool.New()
	params := chainparams.RegTestParams
	params.SegwitActive = false
	f := NewFinalizer(pool, chain.New(), &params, fixedClock{time.Now()}, conf.DefaultConfig().Mining, FixedDifficultyOracle(0x1d00ffff))

	result, err := f.CreateNewBlock([]byte{0x51}, false, nil)
	require.NoError(t, err)
	assert.Nil(t, result.WitnessCommitment)
}

func TestCreateNewBlockIncludesWitnessCommitmentWhenSegwitActive(t *testing.T) {
	pool := mempool.New()
	f := newTestFinalizer(pool)

	result, err := f.CreateNewBlock([]byte{0x51}, false, nil)
	require.NoError(t, err)
	assert.NotNil(t, result.WitnessCommitment)
}
