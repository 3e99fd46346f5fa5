// Package tx models a transaction. Full script/signature verification is an external
// collaborator (spec.md §1: "consensus rule evaluation ... out of scope") — this type carries
// only the shape the assembler needs: size, sigop cost, witness presence, and a stable hash.
// Grounded on copernet-copernicus/model/tx/tx.go.
package tx

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/nzsquirrell/TrezarCoin/model/txin"
	"github.com/nzsquirrell/TrezarCoin/model/txout"
	"github.com/nzsquirrell/TrezarCoin/util"
)

const DefaultVersion = 2

// Tx is a transaction: inputs, outputs, and the two fields coin-age priority and PoS
// timestamp checks depend on.
type Tx struct {
	Version  int32
	Ins      []*txin.TxIn
	Outs     []*txout.TxOut
	LockTime uint32
	// Time is the transaction's own timestamp, used by the priority lane's PoS future-time
	// check (spec.md §4.5) and is independent of mempool entry acceptance time.
	Time uint32

	// cachedSize and cachedSigOps let tests construct a Tx with a declared size/sigop cost
	// without building real scripts; SerializeSize/GetSigOpCount fall back to computing from
	// the actual ins/outs only when these are left at zero.
	cachedSize   int
	cachedSigOps int

	hash     util.Hash
	hashSet  bool
}

// New builds an empty transaction.
func New(version int32) *Tx {
	return &Tx{Version: version}
}

// NewWithSize builds a synthetic transaction of a declared serialized size and sigop cost,
// used heavily by tests to exercise the selector without a script engine.
func NewWithSize(id byte, size int, sigOps int) *Tx {
	t := &Tx{Version: DefaultVersion, cachedSize: size, cachedSigOps: sigOps}
	var h util.Hash
	h[0] = id
	t.hash = h
	t.hashSet = true
	return t
}

// AddTxIn appends an input.
func (t *Tx) AddTxIn(in *txin.TxIn) { t.Ins = append(t.Ins, in) }

// AddTxOut appends an output.
func (t *Tx) AddTxOut(out *txout.TxOut) { t.Outs = append(t.Outs, out) }

// IsCoinBase reports whether this transaction has the single null-previous-outpoint input
// that marks a coinbase.
func (t *Tx) IsCoinBase() bool {
	return len(t.Ins) == 1 && t.Ins[0].PreviousOutPoint.IsNull()
}

// HasWitness reports whether any input carries witness data.
func (t *Tx) HasWitness() bool {
	for _, in := range t.Ins {
		if len(in.Witness) > 0 {
			return true
		}
	}
	return false
}

// SerializeSize returns the transaction's base (non-witness) serialized size in bytes.
func (t *Tx) SerializeSize() int {
	if t.cachedSize != 0 {
		return t.cachedSize
	}
	size := 4 + 4 + 1 + 1 // version + locktime + input count varint + output count varint
	for _, in := range t.Ins {
		size += 32 + 4 + 4 + len(in.ScriptSig) // hash + index + sequence + script
	}
	for _, out := range t.Outs {
		size += 8 + len(out.PkScript)
	}
	return size
}

// WeightedSize returns the witness-inclusive size used in the weight formula
// (weight = 3*base_size + total_size, spec.md GLOSSARY).
func (t *Tx) WeightedSize() int {
	base := t.SerializeSize()
	if !t.HasWitness() {
		return base
	}
	witnessBytes := 2 // marker + flag
	for _, in := range t.Ins {
		for _, item := range in.Witness {
			witnessBytes += 1 + len(item)
		}
	}
	return base + witnessBytes
}

// Weight implements the consensus weight formula.
func (t *Tx) Weight() int {
	return 3*t.SerializeSize() + t.WeightedSize()
}

// GetSigOpCount returns the legacy-plus-P2SH signature operation cost. A real implementation
// walks scripts; callers needing the real count would invoke the script-interpreter
// collaborator, out of scope here (spec.md §1).
func (t *Tx) GetSigOpCount() int {
	if t.cachedSigOps != 0 {
		return t.cachedSigOps
	}
	return len(t.Ins)
}

// Hash returns the transaction's identifying hash, computed once and cached.
func (t *Tx) Hash() util.Hash {
	if t.hashSet {
		return t.hash
	}
	var buf []byte
	var v [4]byte
	binary.LittleEndian.PutUint32(v[:], uint32(t.Version))
	buf = append(buf, v[:]...)
	for _, in := range t.Ins {
		buf = append(buf, in.PreviousOutPoint.Hash[:]...)
		var idx [4]byte
		binary.LittleEndian.PutUint32(idx[:], in.PreviousOutPoint.Index)
		buf = append(buf, idx[:]...)
		buf = append(buf, in.ScriptSig...)
	}
	for _, out := range t.Outs {
		buf = append(buf, out.PkScript...)
	}
	first := sha256.Sum256(buf)
	second := sha256.Sum256(first[:])
	t.hash = util.Hash(second)
	t.hashSet = true
	return t.hash
}
