package mempool

// Overhead bytes per input excluded from the priority size divisor, matching
// 36Dge-GoBitCoinProject/mining/policy.go's CalcPriority: 41 bytes of fixed outpoint/sequence
// overhead plus up to 110 bytes of a compressed-pubkey P2SH redemption signature, so that
// spending many old small inputs is not penalized relative to one large input.
const (
	txInFixedOverhead  = 41
	maxFreeSigOverhead = 110
)

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// CalcPriority returns a transaction's coin-age priority given the sum of each input's value
// times its confirmation age, the transaction's serialized size, and the lengths of each
// input's unlocking script. Grounded on 36Dge-GoBitCoinProject/mining/policy.go's CalcPriority
// (sum(inputValue*inputAge) / adjustedTxSize).
func CalcPriority(sumInputValueAge float64, serializedTxSize int, inputScriptLens []int) float64 {
	overhead := 0
	for _, l := range inputScriptLens {
		overhead += txInFixedOverhead + minInt(maxFreeSigOverhead, l)
	}
	if overhead >= serializedTxSize {
		return 0.0
	}
	return sumInputValueAge / float64(serializedTxSize-overhead)
}
