// Package chain provides the minimal active-chain view the assembler reads: the current tip.
// Full chain-tree management, reorg handling and disk persistence are an external
// collaborator (spec.md §1). Grounded on copernet-copernicus/model/chain/chain.go and
// copernet-copernicus/model/chain/fake_chain.go (the latter is exactly the shape a unit test
// needs: a single mutable tip pointer).
package chain

import (
	"sync"

	"github.com/nzsquirrell/TrezarCoin/model/blockindex"
)

// Chain tracks the currently active chain's tip under a lock. The lock is held only inside Tip
// and SetTip; callers cannot hold it across a longer operation such as CreateNewBlock.
type Chain struct {
	mu  sync.RWMutex
	tip *blockindex.BlockIndex
}

// New builds a Chain with no tip (the genesis case).
func New() *Chain {
	return &Chain{}
}

// Tip returns the current chain tip, or nil before genesis.
func (c *Chain) Tip() *blockindex.BlockIndex {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tip
}

// SetTip advances the chain to a new tip. Only the block-acceptance collaborator
// (out of scope, spec.md §1) is expected to call this in production; tests call it directly
// to stage a chain for assembly.
func (c *Chain) SetTip(bi *blockindex.BlockIndex) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tip = bi
}
