package mining

import (
	"github.com/google/btree"

	"github.com/nzsquirrell/TrezarCoin/mempool"
	"github.com/nzsquirrell/TrezarCoin/util"
)

// ModifiedEntry holds a candidate's ancestor-package aggregates after they have drifted from
// the mempool's own cached values because one or more of its ancestors were already included
// (spec.md §3's ModifiedEntry, §4.3).
type ModifiedEntry struct {
	Ref     util.Hash
	Entry   *mempool.TxEntry
	Size    int
	Weight  int
	ModFees util.Amount
	SigOps  int
}

func (m *ModifiedEntry) candidate() Candidate {
	return Candidate{Entry: m.Entry, Size: m.Size, Weight: m.Weight, ModFees: m.ModFees, SigOps: m.SigOps}
}

// scoreItem adapts a ModifiedEntry to btree.Item, ordering ascending by package score so the
// tree's Max is always the best (highest-scoring) entry.
type scoreItem struct {
	*ModifiedEntry
}

func (s scoreItem) Less(than btree.Item) bool {
	o := than.(scoreItem)
	return Better(o.candidate(), s.candidate())
}

// ModifiedIndex is the ordered collection of spec.md §4.3: a hash map for lookup by TxRef plus
// a google/btree ordered set for pop-best-by-score, the combination the design notes (§9)
// recommend for a container needing both key lookup and live-score ordering.
type ModifiedIndex struct {
	tree  *btree.BTree
	byRef map[util.Hash]*ModifiedEntry
}

// NewModifiedIndex builds an empty index.
func NewModifiedIndex() *ModifiedIndex {
	return &ModifiedIndex{tree: btree.New(32), byRef: make(map[util.Hash]*ModifiedEntry)}
}

// Len reports the number of entries in the index.
func (m *ModifiedIndex) Len() int { return len(m.byRef) }

// Get looks up an entry by TxRef.
func (m *ModifiedIndex) Get(ref util.Hash) (*ModifiedEntry, bool) {
	e, ok := m.byRef[ref]
	return e, ok
}

// Remove erases an entry, e.g. once it has been committed to the block or moved to failedTx.
func (m *ModifiedIndex) Remove(ref util.Hash) {
	e, ok := m.byRef[ref]
	if !ok {
		return
	}
	m.tree.Delete(scoreItem{e})
	delete(m.byRef, ref)
}

// PopBest removes and returns the highest-scoring entry, or nil if the index is empty.
func (m *ModifiedIndex) PopBest() *ModifiedEntry {
	item := m.tree.Max()
	if item == nil {
		return nil
	}
	best := item.(scoreItem).ModifiedEntry
	m.tree.Delete(item)
	delete(m.byRef, best.Ref)
	return best
}

// Peek returns the highest-scoring entry without removing it.
func (m *ModifiedIndex) Peek() *ModifiedEntry {
	item := m.tree.Max()
	if item == nil {
		return nil
	}
	return item.(scoreItem).ModifiedEntry
}

// ApplyAncestorInclusion is UpdatePackagesForAdded (spec.md §4.3): for every mempool descendant
// of x not yet in inBlock, subtract x's own size/modified-fee/sigop contribution from that
// descendant's ancestor-package aggregates, creating a ModifiedEntry the first time a
// descendant is touched and mutating it exactly (never re-deriving from scratch) on later
// calls. A descendant already in failedTx is skipped outright: failedTx is idempotent, so a
// candidate blacklisted via one ancestor must never be resurrected as a fresh ModifiedEntry
// when a later, independent ancestor of the same descendant is committed (spec.md §4.4).
func (m *ModifiedIndex) ApplyAncestorInclusion(pool *mempool.Pool, x *mempool.TxEntry, inBlock, failedTx map[util.Hash]bool) {
	for ref, d := range pool.CalculateDescendants(x) {
		if inBlock[ref] || failedTx[ref] {
			continue
		}
		if existing, ok := m.byRef[ref]; ok {
			m.tree.Delete(scoreItem{existing})
			existing.Size -= x.Size
			existing.Weight -= x.Weight
			existing.ModFees -= x.ModifiedFee()
			existing.SigOps -= x.SigOpCost
			m.tree.ReplaceOrInsert(scoreItem{existing})
			continue
		}
		fresh := &ModifiedEntry{
			Ref:     ref,
			Entry:   d,
			Size:    d.SizeWithAncestors - x.Size,
			Weight:  d.WeightWithAncestors - x.Weight,
			ModFees: d.ModFeesWithAncestors - x.ModifiedFee(),
			SigOps:  d.SigOpsWithAncestors - x.SigOpCost,
		}
		m.byRef[ref] = fresh
		m.tree.ReplaceOrInsert(scoreItem{fresh})
	}
}
