package mempool

import (
	"sync"

	"github.com/google/btree"

	"github.com/nzsquirrell/TrezarCoin/util"
)

// Pool is an in-memory mempool: entries plus their ancestor/descendant links and cached
// ancestor aggregates. It implements the external collaborator contract spec.md §6 names:
// iteration in ancestor-score order, GetMemPoolParents/Children, CalculateDescendants,
// CalculateMemPoolAncestors, ApplyDeltas. Grounded on
// copernet-copernicus/model/mempool/txmempool.go and copernet-copernicus/mempool/mempool.go.
type Pool struct {
	mu      sync.RWMutex
	entries map[util.Hash]*TxEntry
}

// New builds an empty pool.
func New() *Pool {
	return &Pool{entries: make(map[util.Hash]*TxEntry)}
}

// RLock/RUnlock expose the pool's read lock so a single CreateNewBlock invocation can hold it
// for the duration of selection. Only this lock is held for the whole call; the chain lock is
// not held alongside it.
func (p *Pool) RLock()   { p.mu.RLock() }
func (p *Pool) RUnlock() { p.mu.RUnlock() }

// AddEntry registers a new entry with its direct unconfirmed parents already resolved by the
// caller and links the parent/child edges. It does not touch the entry's ancestor aggregates:
// the caller sets SizeWithAncestors and the other aggregates, including its ancestors'
// contributions, before calling.
func (p *Pool) AddEntry(e *TxEntry, parents []*TxEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()

	h := e.Hash()
	p.entries[h] = e
	for _, parent := range parents {
		e.parents[parent.Hash()] = parent
		parent.children[h] = e
	}
}

// Remove deletes an entry and unlinks it from its parents/children. Used by tests simulating
// a tx leaving the pool (spec.md §8's round-trip property).
func (p *Pool) Remove(h util.Hash) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[h]
	if !ok {
		return
	}
	for ph := range e.parents {
		if parent, ok := p.entries[ph]; ok {
			delete(parent.children, h)
		}
	}
	for ch := range e.children {
		if child, ok := p.entries[ch]; ok {
			delete(child.parents, h)
		}
	}
	delete(p.entries, h)
}

// Get returns the entry for h, if present.
func (p *Pool) Get(h util.Hash) (*TxEntry, bool) {
	e, ok := p.entries[h]
	return e, ok
}

// Len returns the number of entries in the pool.
func (p *Pool) Len() int {
	return len(p.entries)
}

// All returns every entry currently in the pool, in no particular order. Used by the priority
// lane to seed its coin-age max-heap (spec.md §4.5).
func (p *Pool) All() []*TxEntry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*TxEntry, 0, len(p.entries))
	for _, e := range p.entries {
		out = append(out, e)
	}
	return out
}

// GetMemPoolParents returns the entry's direct unconfirmed parents.
func (p *Pool) GetMemPoolParents(h util.Hash) []*TxEntry {
	e, ok := p.entries[h]
	if !ok {
		return nil
	}
	out := make([]*TxEntry, 0, len(e.parents))
	for _, parent := range e.parents {
		out = append(out, parent)
	}
	return out
}

// GetMemPoolChildren returns the entry's direct unconfirmed children.
func (p *Pool) GetMemPoolChildren(h util.Hash) []*TxEntry {
	e, ok := p.entries[h]
	if !ok {
		return nil
	}
	out := make([]*TxEntry, 0, len(e.children))
	for _, child := range e.children {
		out = append(out, child)
	}
	return out
}

// CalculateMemPoolAncestors returns every unconfirmed ancestor of e (not including e itself),
// via a breadth-first walk of the parent links. Grounded on
// copernet-copernicus/mempool/mempool.go's CalculateMemPoolAncestors.
func (p *Pool) CalculateMemPoolAncestors(e *TxEntry) map[util.Hash]*TxEntry {
	out := make(map[util.Hash]*TxEntry)
	queue := make([]*TxEntry, 0, len(e.parents))
	for _, parent := range e.parents {
		queue = append(queue, parent)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		h := cur.Hash()
		if _, seen := out[h]; seen {
			continue
		}
		out[h] = cur
		for _, grandparent := range cur.parents {
			queue = append(queue, grandparent)
		}
	}
	return out
}

// CalculateDescendants returns every unconfirmed descendant of e (not including e itself).
// Grounded on copernet-copernicus/mempool/mempool.go's CalculateDescendants.
func (p *Pool) CalculateDescendants(e *TxEntry) map[util.Hash]*TxEntry {
	out := make(map[util.Hash]*TxEntry)
	queue := make([]*TxEntry, 0, len(e.children))
	for _, child := range e.children {
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		h := cur.Hash()
		if _, seen := out[h]; seen {
			continue
		}
		out[h] = cur
		for _, grandchild := range cur.children {
			queue = append(queue, grandchild)
		}
	}
	return out
}

// ApplyDeltas sets the operator fee-delta bias (GLOSSARY: "modified fee") on a single entry,
// propagating the change into the entry's own and every descendant's ModFeesWithAncestors so
// they stay exact; ancestors' aggregates do not include the entry and are left unchanged.
func (p *Pool) ApplyDeltas(h util.Hash, delta util.Amount) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[h]
	if !ok {
		return
	}
	old := e.FeeDelta
	e.FeeDelta = delta
	diff := delta - old
	if diff == 0 {
		return
	}
	e.ModFeesWithAncestors += diff
	for _, child := range p.CalculateDescendants(e) {
		child.ModFeesWithAncestors += diff
	}
}

// SortStrategy selects the comparator the mempool's own index walks in, mirroring
// copernet-copernicus/service/mining/strategy.go's sortByFee/sortByFeeRate split.
type SortStrategy int

const (
	// SortByAncestorFeeRate orders by ancestor-package fee rate, the default selection order
	// spec.md §4.4 describes.
	SortByAncestorFeeRate SortStrategy = iota
	// SortByAncestorFee orders by raw ancestor-package modified fee, ignoring size — used only
	// by diagnostics/tests wanting a fee-only view of the pool.
	SortByAncestorFee
)

// feeRateScoreItem and feeScoreItem adapt a *TxEntry to btree.Item, matching
// copernet-copernicus/service/mining/strategy.go's EntryAncestorFeeRateSort/EntryFeeSort: an
// ascending btree.Item.Less so that BTree.Descend walks highest-score-first, with ties broken
// by hash.
type feeRateScoreItem struct{ *TxEntry }

func (a feeRateScoreItem) Less(than btree.Item) bool {
	b := than.(feeRateScoreItem)
	lhs := int64(a.ModFeesWithAncestors) * int64(b.SizeWithAncestors)
	rhs := int64(b.ModFeesWithAncestors) * int64(a.SizeWithAncestors)
	if lhs == rhs {
		ah, bh := a.Hash(), b.Hash()
		return ah.Cmp(&bh) > 0
	}
	return lhs < rhs
}

type feeScoreItem struct{ *TxEntry }

func (a feeScoreItem) Less(than btree.Item) bool {
	b := than.(feeScoreItem)
	if a.ModFeesWithAncestors == b.ModFeesWithAncestors {
		ah, bh := a.Hash(), b.Hash()
		return ah.Cmp(&bh) > 0
	}
	return a.ModFeesWithAncestors < b.ModFeesWithAncestors
}

// AncestorScoreSnapshot returns every entry in the pool sorted by the given strategy (ties
// broken by hash), representing the mempool's own ordered index (spec.md §4.4's "mi" cursor).
// It is a snapshot, built fresh from a google/btree ordered set each call: the Package Selector
// must not mutate the mempool's own index mid-selection, so the cursor walks a copy rather than
// a live view.
func (p *Pool) AncestorScoreSnapshot(strategy SortStrategy) []*TxEntry {
	tree := btree.New(32)
	for _, e := range p.entries {
		if strategy == SortByAncestorFee {
			tree.ReplaceOrInsert(feeScoreItem{e})
		} else {
			tree.ReplaceOrInsert(feeRateScoreItem{e})
		}
	}

	out := make([]*TxEntry, 0, tree.Len())
	tree.Descend(func(item btree.Item) bool {
		if strategy == SortByAncestorFee {
			out = append(out, item.(feeScoreItem).TxEntry)
		} else {
			out = append(out, item.(feeRateScoreItem).TxEntry)
		}
		return true
	})
	return out
}
