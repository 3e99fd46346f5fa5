package mining

import (
	"github.com/nzsquirrell/TrezarCoin/conf"
	"github.com/nzsquirrell/TrezarCoin/errcode"
	"github.com/nzsquirrell/TrezarCoin/mempool"
	"github.com/nzsquirrell/TrezarCoin/model/block"
	"github.com/nzsquirrell/TrezarCoin/model/blockindex"
	"github.com/nzsquirrell/TrezarCoin/model/chain"
	"github.com/nzsquirrell/TrezarCoin/model/chainparams"
	"github.com/nzsquirrell/TrezarCoin/model/consensus"
	"github.com/nzsquirrell/TrezarCoin/model/outpoint"
	"github.com/nzsquirrell/TrezarCoin/model/tx"
	"github.com/nzsquirrell/TrezarCoin/model/txin"
	"github.com/nzsquirrell/TrezarCoin/model/txout"
	"github.com/nzsquirrell/TrezarCoin/util"
)

// defaultBlockVersion is the version-bits-era default block header version; regtest can
// override it via -blockversion (spec.md §6).
const defaultBlockVersion int32 = 0x20000000

// DifficultyOracle is the external GetNextWorkRequired collaborator (spec.md §6):
// difficulty retargeting is consensus rule evaluation, out of scope per spec.md §1.
type DifficultyOracle func(prev *blockindex.BlockIndex, proofOfStake bool) uint32

// FixedDifficultyOracle returns a DifficultyOracle that always reports bits, useful for
// regtest and for tests that don't exercise real retargeting.
func FixedDifficultyOracle(bits uint32) DifficultyOracle {
	return func(prev *blockindex.BlockIndex, proofOfStake bool) uint32 { return bits }
}

// TemplateResult is the BlockTemplate artifact of spec.md §3: header, ordered tx list
// (coinbase first), per-tx fee and sigop-cost vectors, and an optional witness commitment.
type TemplateResult struct {
	Block             *block.Block
	Fees              []util.Amount
	SigOps            []int
	WitnessCommitment []byte
}

// Finalizer is the Template Finalizer (spec.md §4.6): it orchestrates the Priority Lane then
// the Package Selector and builds the emitted block around their output. Grounded on
// copernet-copernicus/service/mining/mining.go's CreateNewBlock.
type Finalizer struct {
	Pool           *mempool.Pool
	Chain          *chain.Chain
	Params         *chainparams.Params
	Clock          util.MedianTimeSource
	Cfg            conf.MiningConfig
	ExtraNonce     *ExtraNonceCache
	Difficulty     DifficultyOracle
	Observability  *Observability
}

// NewFinalizer builds a Finalizer wired to its collaborators.
func NewFinalizer(pool *mempool.Pool, c *chain.Chain, params *chainparams.Params, clock util.MedianTimeSource, cfg conf.MiningConfig, difficulty DifficultyOracle) *Finalizer {
	return &Finalizer{
		Pool:          pool,
		Chain:         c,
		Params:        params,
		Clock:         clock,
		Cfg:           cfg,
		ExtraNonce:    NewExtraNonceCache(),
		Difficulty:    difficulty,
		Observability: NewObservability(),
	}
}

// CreateNewBlock builds a full BlockTemplate (spec.md §4.6). coinbaseScript pays the PoW
// subsidy; for PoS blocks posRewardOut receives the stake reward the external signer must pay
// out (a nil posRewardOut with proofOfStake is a configuration error, spec.md §7).
func (f *Finalizer) CreateNewBlock(coinbaseScript []byte, proofOfStake bool, posRewardOut *util.Amount) (*TemplateResult, error) {
	if proofOfStake && posRewardOut == nil {
		return nil, errcode.New(errcode.ModuleAssembler, errcode.CodeConfigInfeasible,
			"proof-of-stake template requested with no reward out-parameter")
	}

	// The mempool read lock is held for the whole invocation. The chain tip is read once, under
	// the chain's own lock inside Chain.Tip; the chain lock is not held for the rest of the call.
	f.Pool.RLock()
	defer f.Pool.RUnlock()

	tip := f.Chain.Tip()
	var height int32
	var tipHash util.Hash
	var mtp int64
	if tip != nil {
		height = tip.Height + 1
		tipHash = tip.Hash
		mtp = tip.GetMedianTimePast()
	}

	version := computeBlockVersion(f.Params, f.Cfg.BlockVersion)
	blockTime := uint32(f.Clock.AdjustedTime().Unix())

	lockTimeCutoff := blockTime
	if f.Params.MedianTimePastLockTimeRule && tip != nil {
		lockTimeCutoff = uint32(mtp)
	}
	includeWitness := f.Params.SegwitActive

	cfgWeight, cfgSize := f.Cfg.BlockMaxWeight, f.Cfg.BlockMaxSize
	if cfgWeight == 0 {
		cfgWeight = conf.DefaultBlockMaxWeight
	}
	if cfgSize == 0 {
		cfgSize = conf.DefaultBlockMaxSize
	}
	maxWeight := conf.ClampWeight(cfgWeight)
	maxSize := conf.ClampSize(cfgSize)
	needSizeAccounting := maxSize < uint64(conf.DefaultBlockMaxSize)

	state := NewSelectionState(f.Pool, NewResourceAccountant(maxWeight, maxSize, needSizeAccounting),
		height, lockTimeCutoff, includeWitness, proofOfStake, blockTime, f.Cfg.PrintPriority)

	NewPriorityLane(state, f.Clock, f.Cfg.BlockPrioritySize).Run()

	minRelay := util.NewFeeRate(f.Cfg.BlockMinTxFee)
	NewSelector(state, minRelay, DefaultStrategy).Run()

	coinbase := tx.New(tx.DefaultVersion)
	coinbase.Time = blockTime

	scriptSig := append(scriptNum(int64(height)), byte(0x00))
	if len(scriptSig) > maxCoinbaseScriptSigLen {
		return nil, errcode.New(errcode.ModuleAssembler, errcode.CodeNoCoinbaseScript,
			"coinbase scriptSig length %d exceeds %d bytes", len(scriptSig), maxCoinbaseScriptSigLen)
	}
	coinbase.AddTxIn(txin.NewTxIn(outpoint.OutPoint{Hash: util.HashZero, Index: outpoint.NullIndex}, scriptSig))

	totalFees := state.Accountant.Fees
	if proofOfStake {
		coinbase.AddTxOut(txout.NewTxOut(0, nil))
		reward := util.Amount(consensus.GetProofOfStakeReward(height, f.Params.BaseProofOfStakeReward))
		*posRewardOut = totalFees + reward
	} else {
		if len(coinbaseScript) == 0 {
			return nil, errcode.New(errcode.ModuleAssembler, errcode.CodeNoCoinbaseScript, "no coinbase script supplied")
		}
		subsidy := util.Amount(consensus.GetBlockSubsidy(height, f.Params.InitialSubsidy, f.Params.SubsidyHalvingInterval))
		coinbase.AddTxOut(txout.NewTxOut(totalFees+subsidy, coinbaseScript))
	}

	txs := make([]*tx.Tx, 0, len(state.Order)+1)
	txs = append(txs, coinbase)
	for _, e := range state.Order {
		txs = append(txs, e.Tx)
	}

	fees := make([]util.Amount, len(txs))
	fees[0] = -totalFees
	sigOps := make([]int, len(txs))
	sigOps[0] = consensus.WitnessScaleFactor * coinbase.GetSigOpCount()
	for i, e := range state.Order {
		fees[i+1] = e.ModifiedFee()
		sigOps[i+1] = e.SigOpCost
	}

	var witnessCommitment []byte
	if includeWitness {
		root := block.WitnessMerkleRoot(txs)
		witnessCommitment = root[:]
	}

	header := block.Header{
		Version:        version,
		HashPrevBlock:  tipHash,
		HashMerkleRoot: block.BlockMerkleRoot(txs),
		Time:           computeBlockTime(proofOfStake, mtp, blockTime, tip, txs),
		Bits:           f.Difficulty(tip, proofOfStake),
		Nonce:          0,
	}

	blk := &block.Block{Header: header, Txs: txs}
	f.Observability.Publish(len(txs)-1, blk.SerializeSize(), blk.Weight())

	return &TemplateResult{Block: blk, Fees: fees, SigOps: sigOps, WitnessCommitment: witnessCommitment}, nil
}

func computeBlockVersion(params *chainparams.Params, cfgVersion int32) int32 {
	if params.MineBlocksOnDemands && cfgVersion >= 0 {
		return cfgVersion
	}
	return defaultBlockVersion
}

// computeBlockTime implements the time-field rules of spec.md §6, reduced to their final
// maximum per §9's open-question resolution: the original recomputes nTime several times with
// expressions that subsume one another, which collapses cleanly to one maximum without
// changing the observable result.
func computeBlockTime(proofOfStake bool, mtp int64, blockTime uint32, tip *blockindex.BlockIndex, txs []*tx.Tx) uint32 {
	lowerBound := mtp + consensus.BlockLimiterTime + 1
	if !proofOfStake {
		return uint32(max64(lowerBound, int64(blockTime)))
	}

	maxTxTime := int64(blockTime)
	for _, t := range txs {
		if int64(t.Time) > maxTxTime {
			maxTxTime = int64(t.Time)
		}
	}
	final := max64(lowerBound, maxTxTime)
	if tip != nil {
		final = max64(final, consensus.PastDrift(int64(tip.Time)))
	}
	return uint32(final)
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
