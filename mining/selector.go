package mining

import (
	"sort"

	"github.com/nzsquirrell/TrezarCoin/mempool"
	"github.com/nzsquirrell/TrezarCoin/util"
)

// Selector is the Package Selector, the assembler's core loop (spec.md §4.4): it merges the
// mempool's ancestor-score order with the Modified-Package Index's drifted order, admitting
// whole ancestor packages under the shared ResourceAccountant's ceilings. Grounded on
// copernet-copernicus/service/mining/mining.go's addPackageTxs/testPackageTransactions.
type Selector struct {
	State           *SelectionState
	MinRelayFeeRate util.FeeRate
	Strategy        mempool.SortStrategy
}

// NewSelector builds a Selector bound to state, using minRelay as the early-exit fee-rate
// floor and strategy to pick the mempool cursor's walk order. FailedTx lives on the shared
// SelectionState (not here) so that ModifiedIndex.ApplyAncestorInclusion can consult the same
// idempotent blacklist the selector writes to.
func NewSelector(state *SelectionState, minRelay util.FeeRate, strategy mempool.SortStrategy) *Selector {
	return &Selector{State: state, MinRelayFeeRate: minRelay, Strategy: strategy}
}

// Run drives selection to completion: both cursors exhausted, or the fee-rate floor triggers
// early exit.
func (s *Selector) Run() {
	mi := s.State.Pool.AncestorScoreSnapshot(s.Strategy)
	miIdx := 0

	for {
		for miIdx < len(mi) {
			h := mi[miIdx].Hash()
			if s.State.InBlock[h] || s.State.FailedTx[h] {
				miIdx++
				continue
			}
			if _, inMod := s.State.ModIndex.Get(h); inMod {
				miIdx++
				continue
			}
			break
		}

		haveMi := miIdx < len(mi)
		modBest := s.State.ModIndex.Peek()
		if !haveMi && modBest == nil {
			return
		}

		var chosen *mempool.TxEntry
		var candidate Candidate
		fromMod := false
		advanceMi := false

		switch {
		case !haveMi:
			chosen = modBest.Entry
			candidate = modBest.candidate()
			fromMod = true
		case modBest == nil:
			chosen = mi[miIdx]
			candidate = CandidateFromEntry(chosen)
			advanceMi = true
		default:
			miCandidate := CandidateFromEntry(mi[miIdx])
			if Better(modBest.candidate(), miCandidate) {
				chosen = modBest.Entry
				candidate = modBest.candidate()
				fromMod = true
			} else {
				chosen = mi[miIdx]
				candidate = miCandidate
				advanceMi = true
			}
		}

		// Step 3: early exit. The mempool index is fee-ordered and the modified index only
		// decreases scores, so every further candidate is worse.
		if BelowMinRelay(candidate, s.MinRelayFeeRate) {
			return
		}

		// Step 4: fit test against the ancestor-adjusted package aggregates.
		if !s.State.Accountant.Fits(candidate.Weight, candidate.Size, candidate.SigOps) {
			s.fail(chosen, fromMod)
			if advanceMi {
				miIdx++
			}
			continue
		}

		// Step 5: ancestor gather.
		ancestors := s.State.Pool.CalculateMemPoolAncestors(chosen)
		pkg := make([]*mempool.TxEntry, 0, len(ancestors)+1)
		for _, a := range ancestors {
			if !s.State.InBlock[a.Hash()] {
				pkg = append(pkg, a)
			}
		}
		pkg = append(pkg, chosen)

		// Step 6: transaction-level validity.
		if !testPackageTransactions(pkg, s.State) {
			s.fail(chosen, fromMod)
			if advanceMi {
				miIdx++
			}
			continue
		}

		// Step 7/8: topological sort then commit.
		sortByAncestorCount(pkg, s.State.Pool)
		for _, e := range pkg {
			s.State.Commit(e)
		}

		if advanceMi {
			miIdx++
		}
	}
}

func (s *Selector) fail(chosen *mempool.TxEntry, fromMod bool) {
	h := chosen.Hash()
	if fromMod {
		s.State.ModIndex.Remove(h)
	}
	s.State.FailedTx[h] = true
}

// testPackageTransactions is TestPackageTransactions (spec.md §4.4 step 6): every gathered
// transaction must be locktime-final, must not carry witness data when witness is excluded,
// and, for a PoS block, must not be timestamped after the block time; when size accounting is active, the package's running cumulative size (starting from the
// accountant's already-committed size) must stay under the size ceiling throughout, matching
// copernet-copernicus/service/mining/mining.go's BlockAssembler.testPackageTransactions.
func testPackageTransactions(pkg []*mempool.TxEntry, state *SelectionState) bool {
	potentialSize := state.Accountant.Size
	for _, e := range pkg {
		if !isFinalTx(e.Tx, state.Height, state.LockTimeCutoff) {
			return false
		}
		if !state.IncludeWitness && e.HasWitness {
			return false
		}
		if state.ProofOfStake && e.Tx.Time > state.BlockTime {
			return false
		}
		if state.Accountant.NeedSizeAccounting {
			if potentialSize+e.Size >= state.Accountant.MaxSize {
				return false
			}
			potentialSize += e.Size
		}
	}
	return true
}

// sortByAncestorCount implements step 7's topological sort: ancestor count ascending is
// sufficient ordering because a descendant always has a strictly greater ancestor count than
// its ancestor.
func sortByAncestorCount(pkg []*mempool.TxEntry, pool *mempool.Pool) {
	counts := make(map[util.Hash]int, len(pkg))
	for _, e := range pkg {
		counts[e.Hash()] = len(pool.CalculateMemPoolAncestors(e))
	}
	sort.Slice(pkg, func(i, j int) bool {
		return counts[pkg[i].Hash()] < counts[pkg[j].Hash()]
	})
}
