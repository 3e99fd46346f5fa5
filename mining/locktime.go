package mining

import "github.com/nzsquirrell/TrezarCoin/model/tx"

// lockTimeThreshold is the boundary below which LockTime is interpreted as a block height and
// above which it is interpreted as a unix timestamp, mirroring Bitcoin's
// LOCKTIME_THRESHOLD.
const lockTimeThreshold = 500000000

// isFinalTx reports whether t's locktime no longer restricts its inclusion at nHeight against
// nLockTimeCutoff (spec.md §4.4 step 6's "locktime final" check).
func isFinalTx(t *tx.Tx, height int32, lockTimeCutoff uint32) bool {
	if t.LockTime == 0 {
		return true
	}
	threshold := int64(lockTimeCutoff)
	if t.LockTime < lockTimeThreshold {
		threshold = int64(height)
	}
	if int64(t.LockTime) < threshold {
		return true
	}
	for _, in := range t.Ins {
		if !in.IsFinal() {
			return false
		}
	}
	return true
}
