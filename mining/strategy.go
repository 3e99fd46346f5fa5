package mining

import "github.com/nzsquirrell/TrezarCoin/mempool"

// DefaultStrategy is the production sort strategy: ancestor-package fee rate, per spec.md
// §4.4. Grounded on copernet-copernicus/service/mining/strategy.go, which keeps the same
// fee-vs-fee-rate split behind a single configurable field.
const DefaultStrategy = mempool.SortByAncestorFeeRate
