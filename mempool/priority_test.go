package mempool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcPriorityDividesInputValueAgeByAdjustedSize(t *testing.T) {
	// one input, 41-byte fixed overhead only (empty unlocking script).
	got := CalcPriority(410000, 1000, []int{0})
	assert.InDelta(t, 410000.0/float64(1000-41), got, 0.0001)
}

func TestCalcPriorityCapsScriptOverheadAt110Bytes(t *testing.T) {
	withCap := CalcPriority(1000, 500, []int{200})
	withoutCap := CalcPriority(1000, 500, []int{110})
	assert.Equal(t, withoutCap, withCap)
}

func TestCalcPriorityReturnsZeroWhenOverheadDominatesSize(t *testing.T) {
	got := CalcPriority(1000, 40, []int{0})
	assert.Zero(t, got)
}
