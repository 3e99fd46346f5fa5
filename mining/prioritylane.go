package mining

import (
	"container/heap"

	"github.com/nzsquirrell/TrezarCoin/mempool"
	"github.com/nzsquirrell/TrezarCoin/util"
)

// MinFreePriority mirrors Bitcoin Core's ALLOW_FREE_THRESHOLD (COIN*144/250): the coin-age
// priority below which a transaction stops being eligible for free admission via the priority
// lane (spec.md §4.5's "priority falls below the free-tx-allowed threshold" stop condition).
const MinFreePriority = 1e8 * 144 / 250

// priorityItem is one entry parked in the Priority Lane's max-heap.
type priorityItem struct {
	entry    *mempool.TxEntry
	priority float64
}

// priorityHeap is a max-heap over coin-age priority, grounded on
// 36Dge-GoBitCoinProject/mining/mining.go's txPriorityQueue — the one place this codebase
// reaches for container/heap rather than google/btree, because the lane needs nothing but
// pop-max over a handful of floats and btree's balancing/ordered-iteration guarantees buy
// nothing here.
type priorityHeap []*priorityItem

func (h priorityHeap) Len() int            { return len(h) }
func (h priorityHeap) Less(i, j int) bool  { return h[i].priority > h[j].priority }
func (h priorityHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *priorityHeap) Push(x interface{}) { *h = append(*h, x.(*priorityItem)) }
func (h *priorityHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// PriorityLane is the pre-pass of spec.md §4.5: it admits aged, low/no-fee transactions up to
// a configured byte budget before the Package Selector runs. Grounded on
// 36Dge-GoBitCoinProject/mining/mining.go's priority-then-fee two-pass structure and
// original_source/src/miner.cpp's addPriorityTxs.
type PriorityLane struct {
	State          *SelectionState
	Clock          util.MedianTimeSource
	BudgetBytes    uint64
	MinFreePrio    float64
}

// NewPriorityLane builds a lane bound to state. A zero BudgetBytes disables it entirely
// (spec.md §6: `blockprioritysize` 0 disables).
func NewPriorityLane(state *SelectionState, clock util.MedianTimeSource, budgetBytes uint64) *PriorityLane {
	return &PriorityLane{State: state, Clock: clock, BudgetBytes: budgetBytes, MinFreePrio: MinFreePriority}
}

// Run executes the lane. It forces NeedSizeAccounting on for its own duration — byte-budget
// enforcement is its stop condition — and restores the prior value on exit.
func (pl *PriorityLane) Run() {
	if pl.BudgetBytes == 0 {
		return
	}

	priorAccounting := pl.State.Accountant.NeedSizeAccounting
	pl.State.Accountant.NeedSizeAccounting = true
	defer func() { pl.State.Accountant.NeedSizeAccounting = priorAccounting }()

	h := &priorityHeap{}
	for _, e := range pl.State.Pool.All() {
		if pl.State.InBlock[e.Hash()] {
			continue
		}
		heap.Push(h, &priorityItem{entry: e, priority: e.Priority})
	}
	heap.Init(h)

	waitMap := make(map[util.Hash]float64)
	now := uint32(pl.Clock.AdjustedTime().Unix())

	for h.Len() > 0 {
		if uint64(pl.State.Accountant.Size) >= pl.BudgetBytes {
			return
		}
		item := heap.Pop(h).(*priorityItem)
		if item.priority < pl.MinFreePrio {
			return
		}

		e := item.entry
		hash := e.Hash()
		if pl.State.InBlock[hash] {
			continue
		}
		if e.HasWitness && !pl.State.IncludeWitness {
			continue
		}
		if e.Tx.Time > now {
			continue
		}
		if pl.State.ProofOfStake && e.Tx.Time > pl.State.BlockTime {
			continue
		}

		missing := false
		for ref := range pl.State.Pool.CalculateMemPoolAncestors(e) {
			if !pl.State.InBlock[ref] {
				missing = true
				break
			}
		}
		if missing {
			waitMap[hash] = item.priority
			continue
		}

		if !pl.State.Accountant.Fits(e.Weight, e.Size, e.SigOpCost) {
			pl.State.Accountant.TestForBlock()
			if pl.State.Accountant.BlockFinished {
				return
			}
			continue
		}

		pl.State.Commit(e)

		for _, child := range pl.State.Pool.GetMemPoolChildren(hash) {
			ch := child.Hash()
			if prio, parked := waitMap[ch]; parked {
				delete(waitMap, ch)
				heap.Push(h, &priorityItem{entry: child, priority: prio})
			}
		}

		if pl.State.Accountant.BlockFinished {
			return
		}
	}
}
