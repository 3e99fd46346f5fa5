// Package staking implements the Staker Loop: the supervisory control structure that
// repeatedly drives template creation, block signing and submission for proof-of-stake blocks
// (spec.md §4.7). Wallet key management, the PoS kernel search, and chain acceptance are
// external collaborators the loop only calls through, per spec.md §1.
package staking

import "sync/atomic"

// Controller is the process-scoped observability handle for the staking globals spec.md §9
// names: fStaking and nLastCoinStakeSearchInterval become atomically-accessed fields rather
// than bare package globals.
type Controller struct {
	enabled              atomic.Bool
	lastCoinStakeSearch  atomic.Int64
}

// NewController builds a controller with staking disabled.
func NewController() *Controller {
	return &Controller{}
}

// SetStaking enables or disables the loop's PoS attempts. Mirrors original_source/src/miner.cpp's
// fStaking setter.
func (c *Controller) SetStaking(on bool) { c.enabled.Store(on) }

// IsStaking reports whether staking is currently enabled.
func (c *Controller) IsStaking() bool { return c.enabled.Load() }

// SetLastSearchInterval records the most recent stake-search interval, published for RPC/UI.
func (c *Controller) SetLastSearchInterval(seconds int64) { c.lastCoinStakeSearch.Store(seconds) }

// LastSearchInterval returns the most recently recorded stake-search interval.
func (c *Controller) LastSearchInterval() int64 { return c.lastCoinStakeSearch.Load() }
