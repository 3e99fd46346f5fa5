// Package mempool is the assembler's external collaborator: it is queried, never owned, by
// the selector (spec.md §1). A real node backs this with its own storage engine; this package
// gives that contract a concrete, in-memory implementation so the assembler has something real
// to select against. Grounded on copernet-copernicus/model/mempool/txentry.go.
package mempool

import (
	"time"

	"github.com/nzsquirrell/TrezarCoin/model/tx"
	"github.com/nzsquirrell/TrezarCoin/util"
)

// TxEntry is a mempool entry together with the ancestor-aggregate caches spec.md §3 names:
// size-with-ancestors, modfees-with-ancestors, sigops-with-ancestors.
type TxEntry struct {
	Tx *tx.Tx

	Size       int
	Weight     int
	SigOpCost  int
	Fee        util.Amount
	// FeeDelta is the operator-supplied bias from ApplyDeltas (GLOSSARY: "modified fee").
	FeeDelta util.Amount
	Time       time.Time
	Height     int32
	Priority   float64
	HasWitness bool

	// SizeWithAncestors, WeightWithAncestors, ModFeesWithAncestors and SigOpsWithAncestors are
	// the cached aggregates over this entry and all of its unconfirmed ancestors, set by whoever
	// adds the entry to the Pool — NOT recomputed by the assembler. Pool.ApplyDeltas keeps
	// ModFeesWithAncestors in step; Pool.AddEntry and Pool.Remove do not update any aggregate.
	// Weight, not size, is
	// the binding ceiling for TestPackage (spec.md §9's design note), so both are tracked.
	SizeWithAncestors    int
	WeightWithAncestors  int
	ModFeesWithAncestors util.Amount
	SigOpsWithAncestors  int

	parents  map[util.Hash]*TxEntry
	children map[util.Hash]*TxEntry
}

// ModifiedFee returns the entry's own fee plus its operator delta.
func (e *TxEntry) ModifiedFee() util.Amount {
	return e.Fee + e.FeeDelta
}

// Hash returns the entry's transaction hash, used as the TxRef map/set key (spec.md §3).
func (e *TxEntry) Hash() util.Hash {
	return e.Tx.Hash()
}

// FeeRateWithAncestors returns the ancestor-package fee rate (GLOSSARY: "Ancestor package").
func (e *TxEntry) FeeRateWithAncestors() util.FeeRate {
	return util.NewFeeRateWithSize(int64(e.ModFeesWithAncestors), int64(e.SizeWithAncestors))
}

// Parents returns the entry's direct unconfirmed parents.
func (e *TxEntry) Parents() map[util.Hash]*TxEntry {
	return e.parents
}

// Children returns the entry's direct unconfirmed children.
func (e *TxEntry) Children() map[util.Hash]*TxEntry {
	return e.children
}

// NewTxEntry builds a fresh entry whose ancestor aggregates hold only its own values; the
// caller adds its ancestors' contributions before AddEntry, which links it to its parents.
func NewTxEntry(t *tx.Tx, fee util.Amount, acceptTime time.Time, height int32, sigOpCost int, priority float64) *TxEntry {
	return &TxEntry{
		Tx:         t,
		Size:       t.SerializeSize(),
		Weight:     t.Weight(),
		SigOpCost:  sigOpCost,
		Fee:        fee,
		Time:       acceptTime,
		Height:     height,
		Priority:   priority,
		HasWitness: t.HasWitness(),
		parents:    make(map[util.Hash]*TxEntry),
		children:   make(map[util.Hash]*TxEntry),

		SizeWithAncestors:    t.SerializeSize(),
		WeightWithAncestors:  t.Weight(),
		ModFeesWithAncestors: fee,
		SigOpsWithAncestors:  sigOpCost,
	}
}
