package mining

import (
	"fmt"
	"sync"

	"github.com/nzsquirrell/TrezarCoin/util"
)

// CoinbaseFlags tags this assembler's coinbase scriptSigs, mirroring the historical
// COINBASE_FLAGS compile-time string.
var CoinbaseFlags = []byte("/TrezarCoin-assembler/")

// maxCoinbaseScriptSigLen is the hard ceiling on a coinbase scriptSig, an assert site per
// spec.md §7 ("coinbase scriptSig length ≤ 100 bytes").
const maxCoinbaseScriptSigLen = 100

// ExtraNonceCache is the single-writer `hashPrevBlock`/`nExtraNonce` memoization spec.md §5
// names: "same tip → same search space". It resets to zero whenever the observed tip changes.
type ExtraNonceCache struct {
	mu         sync.Mutex
	lastHash   util.Hash
	extraNonce uint64
}

// NewExtraNonceCache builds an empty cache.
func NewExtraNonceCache() *ExtraNonceCache {
	return &ExtraNonceCache{}
}

// Increment returns the coinbase scriptSig for the next extraNonce at the given tip/height,
// `<height> <extraNonce> CoinbaseFlags` (spec.md §6), restarting the counter whenever tipHash
// differs from the last call's.
func (c *ExtraNonceCache) Increment(tipHash util.Hash, height int32) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastHash != tipHash {
		c.extraNonce = 0
		c.lastHash = tipHash
	}
	c.extraNonce++

	script := scriptNum(int64(height))
	script = append(script, scriptNum(int64(c.extraNonce))...)
	script = append(script, CoinbaseFlags...)
	if len(script) > maxCoinbaseScriptSigLen {
		return nil, fmt.Errorf("coinbase scriptSig length %d exceeds %d bytes", len(script), maxCoinbaseScriptSigLen)
	}
	return script, nil
}

// scriptNum minimally encodes n as a length-prefixed push, mirroring CScript's operator<<(int64)
// just enough to build a coinbase height/extraNonce push — no general script interpreter is in
// scope (spec.md §1).
func scriptNum(n int64) []byte {
	if n == 0 {
		return []byte{0x00}
	}
	neg := n < 0
	abs := n
	if neg {
		abs = -abs
	}
	var b []byte
	for abs > 0 {
		b = append(b, byte(abs&0xff))
		abs >>= 8
	}
	if b[len(b)-1]&0x80 != 0 {
		if neg {
			b = append(b, 0x80)
		} else {
			b = append(b, 0x00)
		}
	} else if neg {
		b[len(b)-1] |= 0x80
	}
	return append([]byte{byte(len(b))}, b...)
}
