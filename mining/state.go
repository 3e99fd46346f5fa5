package mining

import (
	"github.com/nzsquirrell/TrezarCoin/log"
	"github.com/nzsquirrell/TrezarCoin/mempool"
	"github.com/nzsquirrell/TrezarCoin/util"
)

// SelectionState is spec.md §3's AssemblerState, minus the fields the Template Finalizer owns
// directly (header fields, coinbase). It is constructed once per CreateNewBlock invocation and
// shared, by pointer, between the Priority Lane and the Package Selector so that a tx admitted
// by one lane is immediately visible to the other's ancestor bookkeeping.
type SelectionState struct {
	Pool       *mempool.Pool
	Accountant *ResourceAccountant
	ModIndex   *ModifiedIndex
	InBlock    map[util.Hash]bool

	// FailedTx is idempotent: a candidate that fails once under current resources is never
	// retried from either cursor, and never resurrected as a fresh ModifiedEntry when a later
	// ancestor commit walks back over it (spec.md §4.4's fairness/work-bound guarantee).
	FailedTx map[util.Hash]bool

	Height         int32
	LockTimeCutoff uint32
	IncludeWitness bool
	ProofOfStake   bool
	BlockTime      uint32

	// PrintPriority mirrors -printpriority (spec.md §6): when set, Commit logs each admitted
	// tx's priority, fee rate and txid, matching the original's fPrintPriority block in
	// AddToBlock.
	PrintPriority bool

	// Order is the committed non-coinbase transactions, in emission order.
	Order []*mempool.TxEntry
}

// NewSelectionState builds an empty state ready for the Priority Lane then the Package
// Selector to run against.
func NewSelectionState(pool *mempool.Pool, accountant *ResourceAccountant, height int32, lockTimeCutoff uint32, includeWitness, proofOfStake bool, blockTime uint32, printPriority bool) *SelectionState {
	return &SelectionState{
		Pool:           pool,
		Accountant:     accountant,
		ModIndex:       NewModifiedIndex(),
		InBlock:        make(map[util.Hash]bool),
		FailedTx:       make(map[util.Hash]bool),
		Height:         height,
		LockTimeCutoff: lockTimeCutoff,
		IncludeWitness: includeWitness,
		ProofOfStake:   proofOfStake,
		BlockTime:      blockTime,
		PrintPriority:  printPriority,
	}
}

// Commit is AddToBlock (spec.md §4.4 step 8) plus the propagation of step 9: it folds the
// entry into the running totals, marks it inBlock, appends it to the emission order, erases it
// from the Modified-Package Index if present, and refreshes every mempool descendant's
// ancestor-package aggregates.
func (s *SelectionState) Commit(e *mempool.TxEntry) {
	if s.PrintPriority {
		feeRate := util.NewFeeRateWithSize(int64(e.ModifiedFee()), int64(e.Size))
		log.Infof("priority %.1f fee %s txid %s", e.Priority, feeRate, e.Hash())
	}
	s.Accountant.Commit(e.Weight, e.Size, e.SigOpCost, e.ModifiedFee())
	h := e.Hash()
	s.InBlock[h] = true
	s.Order = append(s.Order, e)
	s.ModIndex.Remove(h)
	s.ModIndex.ApplyAncestorInclusion(s.Pool, e, s.InBlock, s.FailedTx)
}
