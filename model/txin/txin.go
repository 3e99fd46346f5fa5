// Package txin models a transaction input.
// Grounded on copernet-copernicus/model/txin/txin.go.
package txin

import "github.com/nzsquirrell/TrezarCoin/model/outpoint"

// MaxSequence marks an input as final (no relative-locktime/RBF semantics in play).
const MaxSequence = 0xffffffff

// TxIn is a transaction input: the outpoint it spends, its unlocking script, and sequence.
type TxIn struct {
	PreviousOutPoint outpoint.OutPoint
	ScriptSig        []byte
	Sequence         uint32
	// Witness holds segwit witness stack items, if any. A non-empty Witness marks the
	// owning transaction as witness-bearing for spec.md §4.4/§4.5's fIncludeWitness checks.
	Witness [][]byte
}

// NewTxIn builds a TxIn with the given previous outpoint and unlocking script.
func NewTxIn(prevOut outpoint.OutPoint, scriptSig []byte) *TxIn {
	return &TxIn{PreviousOutPoint: prevOut, ScriptSig: scriptSig, Sequence: MaxSequence}
}

// IsFinal reports whether the sequence number disables relative-locktime checks.
func (in *TxIn) IsFinal() bool {
	return in.Sequence == MaxSequence
}
