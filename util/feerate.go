package util

import "fmt"

// Amount is a quantity of the chain's base unit (satoshi-equivalent).
type Amount int64

// FeeRate expresses a fee in base units per kilobyte, mirroring
// copernet-copernicus/utils/feerate.go.
type FeeRate struct {
	SatoshisPerK int64
}

// NewFeeRate builds a FeeRate directly from a base-units-per-kilobyte value.
func NewFeeRate(satoshisPerK int64) FeeRate {
	return FeeRate{SatoshisPerK: satoshisPerK}
}

// NewFeeRateWithSize derives a FeeRate from a fee paid for a given size in bytes.
func NewFeeRateWithSize(feePaid int64, bytes int64) FeeRate {
	if bytes <= 0 {
		return FeeRate{}
	}
	return FeeRate{SatoshisPerK: feePaid * 1000 / bytes}
}

// GetFee returns the fee, in base units, for the given size in bytes.
func (r FeeRate) GetFee(bytes int) int64 {
	size := int64(bytes)
	fee := r.SatoshisPerK * size / 1000
	if fee == 0 && size != 0 {
		switch {
		case r.SatoshisPerK > 0:
			fee = 1
		case r.SatoshisPerK < 0:
			fee = -1
		}
	}
	return fee
}

// Less reports whether r is a strictly lower rate than other.
func (r FeeRate) Less(other FeeRate) bool {
	return r.SatoshisPerK < other.SatoshisPerK
}

// String renders the rate the way -printpriority's log line reports it, mirroring
// copernet-copernicus/utils/feerate.go's FeeRate.String (simplified: no currency-unit suffix).
func (r FeeRate) String() string {
	return fmt.Sprintf("%d sat/kB", r.SatoshisPerK)
}
