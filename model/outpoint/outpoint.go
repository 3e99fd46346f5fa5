// Package outpoint identifies a transaction output being spent.
// Grounded on copernet-copernicus/model/outpoint/outpoint.go.
package outpoint

import "github.com/nzsquirrell/TrezarCoin/util"

// NullIndex marks a coinbase's single input as having no real previous output.
const NullIndex = 0xffffffff

// OutPoint references a specific output of a specific transaction.
type OutPoint struct {
	Hash  util.Hash
	Index uint32
}

// IsNull reports whether this is the coinbase's null previous outpoint.
func (o OutPoint) IsNull() bool {
	return o.Hash.IsZero() && o.Index == NullIndex
}
