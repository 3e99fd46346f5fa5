// Package util holds small value types shared across the node: hashes, amounts and fee
// rates. Grounded on copernet-copernicus/util/hash.go and copernet-copernicus/utils/feerate.go.
package util

import (
	"bytes"
	"encoding/hex"
)

// HashSize is the number of bytes in a TrezarCoin hash.
const HashSize = 32

// Hash is a double round of SHA-256 over serialized block/transaction bytes.
type Hash [HashSize]byte

// HashZero is the all-zero hash used for the coinbase's null previous outpoint.
var HashZero = Hash{}

// Cmp lexically orders two hashes; used to break ties deterministically during selection.
func (h *Hash) Cmp(other *Hash) int {
	return bytes.Compare(h[:], other[:])
}

// IsZero reports whether the hash is the all-zero sentinel.
func (h Hash) IsZero() bool {
	return h == HashZero
}

func (h Hash) String() string {
	// Hashes print in the reversed, big-endian-looking form the wire protocol displays.
	reversed := make([]byte, HashSize)
	for i := 0; i < HashSize; i++ {
		reversed[i] = h[HashSize-1-i]
	}
	return hex.EncodeToString(reversed)
}
