// Package chainparams holds the per-network parameters the assembler consults: subsidy
// schedule, PoS reward, and the regtest block-version override. Full checkpoint and
// version-bits deployment tables are an external collaborator (consensus rule evaluation is
// out of scope per spec.md §1). Grounded on
// copernet-copernicus/model/chainparams/bitcoinparams.go.
package chainparams

// Params is the subset of network parameters the block template assembler reads.
type Params struct {
	Name string

	// MineBlocksOnDemands enables the -blockversion override (spec.md §6); true on regtest.
	MineBlocksOnDemands bool

	// InitialSubsidy and SubsidyHalvingInterval parameterize consensus.GetBlockSubsidy.
	InitialSubsidy         int64
	SubsidyHalvingInterval int32

	// BaseProofOfStakeReward parameterizes consensus.GetProofOfStakeReward.
	BaseProofOfStakeReward int64

	// SegwitActive reports whether segregated witness rules are active, gating
	// fIncludeWitness in the Template Finalizer (spec.md §4.6 step 2).
	SegwitActive bool

	// MedianTimePastLockTimeRule reports whether locktime finality is evaluated against MTP
	// rather than block time (spec.md §4.6 step 2).
	MedianTimePastLockTimeRule bool
}

// MainNetParams are TrezarCoin mainnet's parameters.
var MainNetParams = Params{
	Name:                       "mainnet",
	InitialSubsidy:             20 * 1e8,
	SubsidyHalvingInterval:     210_000,
	BaseProofOfStakeReward:     1 * 1e8,
	SegwitActive:               true,
	MedianTimePastLockTimeRule: true,
}

// RegTestParams are the regression-test network's parameters: on-demand mining with an
// overridable block version.
var RegTestParams = Params{
	Name:                       "regtest",
	MineBlocksOnDemands:        true,
	InitialSubsidy:             50 * 1e8,
	SubsidyHalvingInterval:     150,
	BaseProofOfStakeReward:     1 * 1e8,
	SegwitActive:               true,
	MedianTimePastLockTimeRule: true,
}
