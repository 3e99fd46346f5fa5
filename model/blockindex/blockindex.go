// Package blockindex models the chain-tip metadata the assembler reads: height, hash, time
// and median-time-past. Full disk persistence and the block tree are an external collaborator
// (spec.md §1: chain acceptance is out of scope); this is the read-only view the assembler
// needs. Grounded on copernet-copernicus/model/blockindex/blockindex.go.
package blockindex

import "github.com/nzsquirrell/TrezarCoin/util"

// BlockIndex is a minimal view of a block's position in the chain.
type BlockIndex struct {
	Hash   util.Hash
	Height int32
	Time   uint32
	Bits   uint32
	Prev   *BlockIndex
}

// GetBlockHash returns the index's block hash.
func (bi *BlockIndex) GetBlockHash() *util.Hash {
	return &bi.Hash
}

// GetMedianTimePast returns the median of this block's own time and its ancestors' times over
// consensus.MedianTimeSpan blocks, per the GLOSSARY's MTP definition.
func (bi *BlockIndex) GetMedianTimePast() int64 {
	const span = 11
	times := make([]int64, 0, span)
	cur := bi
	for i := 0; i < span && cur != nil; i++ {
		times = append(times, int64(cur.Time))
		cur = cur.Prev
	}
	// insertion sort; span is always small
	for i := 1; i < len(times); i++ {
		for j := i; j > 0 && times[j-1] > times[j]; j-- {
			times[j-1], times[j] = times[j], times[j-1]
		}
	}
	return times[len(times)/2]
}
