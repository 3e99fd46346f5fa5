package mining

import "sync/atomic"

// Observability is the process-scoped handle for the best-effort counters spec.md §5/§9
// describe as "global mutable counters... become fields of a process-scoped observability
// handle with atomic reads/writes". Readers tolerate torn reads; writers are the assembler
// thread only.
type Observability struct {
	lastBlockTx     atomic.Int64
	lastBlockSize   atomic.Int64
	lastBlockWeight atomic.Int64
}

// NewObservability builds a zeroed handle.
func NewObservability() *Observability { return &Observability{} }

// Publish records the counters for a just-built template (spec.md §4.6's final step).
func (o *Observability) Publish(txCount, size, weight int) {
	o.lastBlockTx.Store(int64(txCount))
	o.lastBlockSize.Store(int64(size))
	o.lastBlockWeight.Store(int64(weight))
}

// LastBlockTx returns the non-coinbase transaction count of the most recently built template.
func (o *Observability) LastBlockTx() int64 { return o.lastBlockTx.Load() }

// LastBlockSize returns the serialized size of the most recently built template.
func (o *Observability) LastBlockSize() int64 { return o.lastBlockSize.Load() }

// LastBlockWeight returns the weight of the most recently built template.
func (o *Observability) LastBlockWeight() int64 { return o.lastBlockWeight.Load() }
