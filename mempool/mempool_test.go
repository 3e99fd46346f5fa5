package mempool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nzsquirrell/TrezarCoin/model/tx"
	"github.com/nzsquirrell/TrezarCoin/util"
)

func addChain(t *testing.T, p *Pool, id byte, size int, fee util.Amount, parents ...*TxEntry) *TxEntry {
	t.Helper()
	txn := tx.NewWithSize(id, size, 1)
	e := NewTxEntry(txn, fee, time.Now(), 1, 1, 0)
	for _, parent := range parents {
		e.SizeWithAncestors += parent.SizeWithAncestors
		e.WeightWithAncestors += parent.WeightWithAncestors
		e.ModFeesWithAncestors += parent.ModFeesWithAncestors
		e.SigOpsWithAncestors += parent.SigOpsWithAncestors
	}
	p.AddEntry(e, parents)
	return e
}

func TestAddEntryLinksParentsAndChildren(t *testing.T) {
	p := New()
	parent := addChain(t, p, 1, 100, 1000)
	child := addChain(t, p, 2, 100, 2000, parent)

	assert.Equal(t, []*TxEntry{parent}, p.GetMemPoolParents(child.Hash()))
	assert.Equal(t, []*TxEntry{child}, p.GetMemPoolChildren(parent.Hash()))
}

func TestCalculateMemPoolAncestorsWalksTransitively(t *testing.T) {
	p := New()
	grandparent := addChain(t, p, 1, 100, 100)
	parent := addChain(t, p, 2, 100, 100, grandparent)
	child := addChain(t, p, 3, 100, 100, parent)

	ancestors := p.CalculateMemPoolAncestors(child)
	require.Len(t, ancestors, 2)
	assert.Contains(t, ancestors, grandparent.Hash())
	assert.Contains(t, ancestors, parent.Hash())
}

func TestCalculateDescendantsWalksTransitively(t *testing.T) {
	p := New()
	grandparent := addChain(t, p, 1, 100, 100)
	parent := addChain(t, p, 2, 100, 100, grandparent)
	child := addChain(t, p, 3, 100, 100, parent)

	descendants := p.CalculateDescendants(grandparent)
	require.Len(t, descendants, 2)
	assert.Contains(t, descendants, parent.Hash())
	assert.Contains(t, descendants, child.Hash())
}

func TestRemoveUnlinksFromParentsAndChildren(t *testing.T) {
	p := New()
	parent := addChain(t, p, 1, 100, 100)
	child := addChain(t, p, 2, 100, 100, parent)

	p.Remove(parent.Hash())

	_, ok := p.Get(parent.Hash())
	assert.False(t, ok)
	assert.Empty(t, p.GetMemPoolParents(child.Hash()))
}

func TestApplyDeltasPropagatesToDescendants(t *testing.T) {
	p := New()
	parent := addChain(t, p, 1, 100, 100)
	child := addChain(t, p, 2, 100, 100, parent)

	before := child.ModFeesWithAncestors
	p.ApplyDeltas(parent.Hash(), 500)

	assert.EqualValues(t, 600, parent.ModFeesWithAncestors)
	assert.EqualValues(t, before+500, child.ModFeesWithAncestors)
}

func TestAncestorScoreSnapshotOrdersByDescendingFeeRate(t *testing.T) {
	p := New()
	low := addChain(t, p, 1, 1000, 100)  // 0.1 sat/byte
	high := addChain(t, p, 2, 1000, 900) // 0.9 sat/byte

	snap := p.AncestorScoreSnapshot(SortByAncestorFeeRate)
	require.Len(t, snap, 2)
	assert.Equal(t, high.Hash(), snap[0].Hash())
	assert.Equal(t, low.Hash(), snap[1].Hash())
}

func TestAncestorScoreSnapshotIsASnapshotNotALiveView(t *testing.T) {
	p := New()
	addChain(t, p, 1, 1000, 100)
	snap := p.AncestorScoreSnapshot(SortByAncestorFeeRate)
	p.Remove(snap[0].Hash())
	// the snapshot slice itself is unaffected by subsequent pool mutation.
	assert.Len(t, snap, 1)
}
