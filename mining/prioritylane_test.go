package mining

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nzsquirrell/TrezarCoin/mempool"
	"github.com/nzsquirrell/TrezarCoin/model/tx"
	"github.com/nzsquirrell/TrezarCoin/util"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) AdjustedTime() time.Time { return c.t }

func addWithPriority(t *testing.T, pool *mempool.Pool, id byte, size int, fee int64, priority float64, parents ...*mempool.TxEntry) *mempool.TxEntry {
	t.Helper()
	txn := tx.NewWithSize(id, size, 0)
	e := mempool.NewTxEntry(txn, util.Amount(fee), time.Now(), 1, 0, priority)
	for _, p := range parents {
		e.SizeWithAncestors += p.SizeWithAncestors
		e.WeightWithAncestors += p.WeightWithAncestors
		e.ModFeesWithAncestors += p.ModFeesWithAncestors
		e.SigOpsWithAncestors += p.SigOpsWithAncestors
	}
	pool.AddEntry(e, parents)
	return e
}

func TestPriorityLaneDisabledWhenBudgetZero(t *testing.T) {
	pool := mempool.New()
	addWithPriority(t, pool, 1, 1000, 0, 1e9)

	state := newTestState(pool)
	NewPriorityLane(state, fixedClock{time.Now()}, 0).Run()

	assert.Empty(t, state.Order)
}

func TestPriorityLaneAdmitsHighestPriorityFirst(t *testing.T) {
	pool := mempool.New()
	low := addWithPriority(t, pool, 1, 250, 0, 1e8)
	high := addWithPriority(t, pool, 2, 250, 0, 1e9)

	state := newTestState(pool)
	NewPriorityLane(state, fixedClock{time.Now()}, 10000).Run()

	require.Len(t, state.Order, 2)
	assert.Equal(t, high.Hash(), state.Order[0].Hash())
	assert.Equal(t, low.Hash(), state.Order[1].Hash())
}

func TestPriorityLaneParksEntryWithMissingAncestor(t *testing.T) {
	pool := mempool.New()
	parent := addWithPriority(t, pool, 1, 250, 0, 1e8)
	child := addWithPriority(t, pool, 2, 250, 0, 1e9, parent)

	state := newTestState(pool)
	NewPriorityLane(state, fixedClock{time.Now()}, 10000).Run()

	require.Len(t, state.Order, 2)
	assert.Equal(t, parent.Hash(), state.Order[0].Hash())
	assert.Equal(t, child.Hash(), state.Order[1].Hash())
}

func TestPriorityLaneStopsAtByteBudget(t *testing.T) {
	pool := mempool.New()
	addWithPriority(t, pool, 1, 5000, 0, 1e9)
	addWithPriority(t, pool, 2, 5000, 0, 1e8)

	state := newTestState(pool)
	NewPriorityLane(state, fixedClock{time.Now()}, 6000).Run()

	assert.Len(t, state.Order, 1)
}

func TestPriorityLaneStopsBelowFreeThreshold(t *testing.T) {
	pool := mempool.New()
	addWithPriority(t, pool, 1, 250, 0, 1.0) // far below MinFreePriority

	state := newTestState(pool)
	NewPriorityLane(state, fixedClock{time.Now()}, 10000).Run()

	assert.Empty(t, state.Order)
}

func TestPriorityLaneRestoresSizeAccountingFlagAfterRun(t *testing.T) {
	pool := mempool.New()
	state := newTestState(pool)
	state.Accountant.NeedSizeAccounting = false

	NewPriorityLane(state, fixedClock{time.Now()}, 10000).Run()

	assert.False(t, state.Accountant.NeedSizeAccounting)
}
