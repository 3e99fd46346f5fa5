// Package consensus holds the small set of protocol constants the assembler needs as ceilings
// and scaling factors. Full consensus rule evaluation (difficulty retargeting, script
// verification, chain acceptance) is an external collaborator per spec.md §1 and is not
// reproduced here. Grounded on copernet-copernicus/model/consensus/param.go and
// 36Dge-GoBitCoinProject/blockchain/weight.go.
package consensus

const (
	// WitnessScaleFactor is the divisor/multiplier relating witness bytes to weight units.
	WitnessScaleFactor = 4

	// MaxBlockWeight is the protocol ceiling on block weight (weight = 3*base_size + total_size).
	MaxBlockWeight = 4_000_000

	// MaxBlockSerializedSize is the protocol ceiling on serialized block size in bytes.
	MaxBlockSerializedSize = 4_000_000

	// MaxBlockSigOpsCost is the protocol ceiling on a block's total signature-operation cost.
	MaxBlockSigOpsCost = 80_000

	// CoinbaseWeightReservation is the weight reserved for the coinbase transaction before
	// selection begins (spec.md §3, AssemblerState initial nBlockWeight).
	CoinbaseWeightReservation = 4000

	// CoinbaseSizeReservation is the size reserved for the coinbase transaction before
	// selection begins.
	CoinbaseSizeReservation = 1000

	// CoinbaseSigOpsReservation is the sigop cost reserved for the coinbase transaction before
	// selection begins.
	CoinbaseSigOpsReservation = 400

	// CoinbaseMaturity is the number of confirmations before a coinbase output becomes
	// spendable. No code in this module reads it.
	CoinbaseMaturity = 100

	// MedianTimeSpan is the number of blocks whose timestamps' median is the MTP.
	MedianTimeSpan = 11

	// BlockLimiterTime is the margin over the previous block's MTP that a new block's time must
	// strictly exceed: the earliest allowed time is MTP + BlockLimiterTime + 1 (spec.md §6 time
	// fields).
	BlockLimiterTime = 1

	// MaxFutureBlockDrift bounds how far a block's timestamp may sit ahead of adjusted time.
	MaxFutureBlockDrift = 15 * 60
)

// GetBlockSubsidy returns the PoW block reward at the given height. A real chain computes
// this from a halving schedule; here it is a simple, still-realistic, geometric halving every
// subsidyHalvingInterval blocks, matching the shape of
// 36Dge-GoBitCoinProject/blockchain/chain.go's CalcBlockSubsidy.
func GetBlockSubsidy(height int32, initialSubsidy int64, halvingInterval int32) int64 {
	if halvingInterval <= 0 {
		return initialSubsidy
	}
	halvings := height / halvingInterval
	if halvings >= 64 {
		return 0
	}
	return initialSubsidy >> uint(halvings)
}

// GetProofOfStakeReward returns the PoS block reward at the given height. TrezarCoin-style
// hybrid chains pay a flat (or slowly-decaying) PoS reward independent of the PoW subsidy
// schedule; modelled on original_source/src/miner.cpp's GetProofOfStakeReward collaborator.
func GetProofOfStakeReward(height int32, baseReward int64) int64 {
	return baseReward
}

// PastDrift bounds how far behind the previous block's time a new PoS block's time may sit,
// per spec.md §6. Grounded on original_source/src/miner.cpp's PastDrift.
func PastDrift(prevTime int64) int64 {
	return prevTime - BlockLimiterTime
}
