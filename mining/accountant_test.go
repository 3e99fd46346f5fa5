package mining

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceAccountantSeedsCoinbaseReservations(t *testing.T) {
	a := NewResourceAccountant(1_000_000, 1_000_000, true)
	assert.Equal(t, 4000, a.Weight)
	assert.Equal(t, 1000, a.Size)
	assert.Equal(t, 400, a.SigOpsCost)
}

func TestResourceAccountantFitsRespectsWeightCeiling(t *testing.T) {
	a := NewResourceAccountant(5000, 1_000_000, false)
	assert.True(t, a.Fits(900, 10, 1))
	assert.False(t, a.Fits(1001, 10, 1))
}

func TestResourceAccountantFitsIgnoresSizeWhenNotNeeded(t *testing.T) {
	a := NewResourceAccountant(1_000_000, 1100, false)
	assert.True(t, a.Fits(10, 10_000, 1))
}

func TestResourceAccountantFitsChecksSizeWhenNeeded(t *testing.T) {
	a := NewResourceAccountant(1_000_000, 1100, true)
	assert.False(t, a.Fits(10, 10_000, 1))
}

func TestResourceAccountantCommitAccumulates(t *testing.T) {
	a := NewResourceAccountant(1_000_000, 1_000_000, false)
	a.Commit(100, 50, 1, 500)
	a.Commit(200, 50, 1, 500)
	assert.Equal(t, 4300, a.Weight)
	assert.Equal(t, 1100, a.Size)
	assert.EqualValues(t, 1000, a.Fees)
	assert.Equal(t, 2, a.Count)
}

func TestTestForBlockFinishesWhenSigOpHeadroomTiny(t *testing.T) {
	a := NewResourceAccountant(1_000_000, 1_000_000, false)
	a.SigOpsCost = 79995 // headroom 5, under the 8 threshold
	a.TestForBlock()
	assert.True(t, a.BlockFinished)
}

func TestTestForBlockFinishesWhenWeightHeadroomSmall(t *testing.T) {
	a := NewResourceAccountant(4300, 1_000_000, false)
	a.TestForBlock()
	assert.True(t, a.BlockFinished)
}

func TestTestForBlockCountsMissesInTheLargerBandThenFinishes(t *testing.T) {
	a := NewResourceAccountant(7500, 1_000_000, false) // headroom 3500, in the 4000 band
	for i := 0; i < 51; i++ {
		a.TestForBlock()
	}
	assert.True(t, a.BlockFinished)
}
