// Package mining is the block template assembler: it selects mempool transactions under
// resource ceilings and builds a candidate block ready for mining or staking. The mempool
// itself, consensus validation, and the PoW/PoS search loops are external collaborators;
// this package only queries and orchestrates them. Grounded on
// copernet-copernicus/service/mining/mining.go.
package mining

import "github.com/nzsquirrell/TrezarCoin/model/consensus"
import "github.com/nzsquirrell/TrezarCoin/util"

// ResourceAccountant tracks the running block weight, size and sigop cost and answers whether
// a candidate fits. It also owns the tail-fill policy that bounds scanning as the block nears
// its ceilings (spec.md §4.1, §4.5's TestForBlock).
type ResourceAccountant struct {
	Weight     int
	Size       int
	SigOpsCost int
	Fees       util.Amount
	Count      int

	MaxWeight          int
	MaxSize            int
	NeedSizeAccounting bool

	LastFewTxs    int
	BlockFinished bool
}

// NewResourceAccountant builds an accountant seeded with the coinbase reservations
// (spec.md §3: nBlockWeight/nBlockSize/nBlockSigOpsCost initialized to 4000/1000/400).
func NewResourceAccountant(maxWeight, maxSize uint64, needSizeAccounting bool) *ResourceAccountant {
	return &ResourceAccountant{
		Weight:             consensus.CoinbaseWeightReservation,
		Size:               consensus.CoinbaseSizeReservation,
		SigOpsCost:         consensus.CoinbaseSigOpsReservation,
		MaxWeight:          int(maxWeight),
		MaxSize:            int(maxSize),
		NeedSizeAccounting: needSizeAccounting,
	}
}

// Fits reports whether adding a candidate of the given weight/size/sigops would keep every
// running total within its ceiling (spec.md §3 invariant 3).
func (a *ResourceAccountant) Fits(weight, size, sigOps int) bool {
	if a.Weight+weight > a.MaxWeight {
		return false
	}
	if a.NeedSizeAccounting && a.Size+size > a.MaxSize {
		return false
	}
	if a.SigOpsCost+sigOps >= consensus.MaxBlockSigOpsCost {
		return false
	}
	return true
}

// Commit folds a newly-included candidate into the running totals.
func (a *ResourceAccountant) Commit(weight, size, sigOps int, fee util.Amount) {
	a.Weight += weight
	a.Size += size
	a.SigOpsCost += sigOps
	a.Fees += fee
	a.Count++
}

// TestForBlock implements the tail-fill policy of spec.md §4.5: called on a fit-test miss, it
// decides whether scanning should stop. Headroom within the small band sets BlockFinished
// immediately; headroom within the larger band increments a bounded miss counter; a sigop
// headroom below 8 always finishes the block outright.
func (a *ResourceAccountant) TestForBlock() {
	if a.BlockFinished {
		return
	}
	weightHeadroom := a.MaxWeight - a.Weight
	sizeHeadroom := a.MaxSize - a.Size
	sigOpHeadroom := consensus.MaxBlockSigOpsCost - a.SigOpsCost

	if sigOpHeadroom < 8 {
		a.BlockFinished = true
		return
	}
	if weightHeadroom < 400 || (a.NeedSizeAccounting && sizeHeadroom < 100) {
		a.BlockFinished = true
		return
	}
	if weightHeadroom < 4000 || (a.NeedSizeAccounting && sizeHeadroom < 1000) {
		a.LastFewTxs++
		if a.LastFewTxs > 50 {
			a.BlockFinished = true
		}
	}
}
