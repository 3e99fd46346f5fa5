package mining

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nzsquirrell/TrezarCoin/mempool"
	"github.com/nzsquirrell/TrezarCoin/util"
)

// TestCommitWithPrintPriorityLogsWithoutAlteringSelection exercises the -printpriority path
// (spec.md §6): it must not change which transactions get committed, only add a log line.
func TestCommitWithPrintPriorityLogsWithoutAlteringSelection(t *testing.T) {
	pool := mempool.New()
	e := addWithAncestors(t, pool, 1, 250, 1000)

	acct := NewResourceAccountant(4_000_000, 4_000_000, false)
	state := NewSelectionState(pool, acct, 100, 0, true, false, 0, true)
	assert.True(t, state.PrintPriority)

	NewSelector(state, util.NewFeeRate(0), DefaultStrategy).Run()

	assert.Len(t, state.Order, 1)
	assert.Equal(t, e.Hash(), state.Order[0].Hash())
}

func TestFeeRateStringFormatsSatoshisPerKB(t *testing.T) {
	assert.Equal(t, "1000 sat/kB", util.NewFeeRate(1000).String())
}
