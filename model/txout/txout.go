// Package txout models a transaction output.
// Grounded on copernet-copernicus/model/txout/txout.go.
package txout

import "github.com/nzsquirrell/TrezarCoin/util"

// TxOut is a transaction output: an amount and the script that locks it.
type TxOut struct {
	Value    util.Amount
	PkScript []byte
}

// NewTxOut builds a TxOut.
func NewTxOut(value util.Amount, pkScript []byte) *TxOut {
	return &TxOut{Value: value, PkScript: pkScript}
}

// IsEmpty reports whether this is a PoS placeholder output (spec.md §4.6 step 4): zero
// value, empty script.
func (o *TxOut) IsEmpty() bool {
	return o.Value == 0 && len(o.PkScript) == 0
}
