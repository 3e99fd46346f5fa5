package mining

import (
	"github.com/nzsquirrell/TrezarCoin/mempool"
	"github.com/nzsquirrell/TrezarCoin/util"
)

// Candidate is a scoring snapshot of a package's ancestor-adjusted aggregates — either the
// mempool's own cached values (the "mi" cursor) or a ModifiedEntry's drifted values (the
// Modified-Package Index). Grounded on copernet-copernicus/service/mining/strategy.go's
// EntryAncestorFeeRateSort comparator. Never mutated; the Scorer only compares.
type Candidate struct {
	Entry   *mempool.TxEntry
	Size    int
	Weight  int
	ModFees util.Amount
	SigOps  int
}

// CandidateFromEntry builds a Candidate from an entry's unmodified cached aggregates.
func CandidateFromEntry(e *mempool.TxEntry) Candidate {
	return Candidate{
		Entry:   e,
		Size:    e.SizeWithAncestors,
		Weight:  e.WeightWithAncestors,
		ModFees: e.ModFeesWithAncestors,
		SigOps:  e.SigOpsWithAncestors,
	}
}

// Better reports whether a's ancestor-package fee rate is strictly higher than b's, using the
// cross-multiplication form to avoid division (spec.md §4.2), ties broken by mempool-stable
// TxRef order.
func Better(a, b Candidate) bool {
	lhs := int64(a.ModFees) * int64(b.Size)
	rhs := int64(b.ModFees) * int64(a.Size)
	if lhs == rhs {
		ah, bh := a.Entry.Hash(), b.Entry.Hash()
		return ah.Cmp(&bh) < 0
	}
	return lhs > rhs
}

// BelowMinRelay reports whether c's package fee rate sits below the node's minimum relay fee
// rate — the selector's early-exit test (spec.md §4.4 step 3).
func BelowMinRelay(c Candidate, minRelay util.FeeRate) bool {
	return util.NewFeeRateWithSize(int64(c.ModFees), int64(c.Size)).Less(minRelay)
}
