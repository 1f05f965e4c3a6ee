package settle

import "math/big"

// MaxBps is 100% expressed in basis points.
const MaxBps uint64 = 10000

// ValidBps reports whether rateBps is within [0, 10000].
func ValidBps(rateBps uint64) bool {
	return rateBps <= MaxBps
}

// Share returns floor(amount * rateBps / 10000). The intermediate product is
// computed in big.Int so large sale amounts cannot overflow uint64.
func Share(amount, rateBps uint64) uint64 {
	share := new(big.Int).Mul(new(big.Int).SetUint64(amount), new(big.Int).SetUint64(rateBps))
	share.Div(share, new(big.Int).SetUint64(MaxBps))

	return share.Uint64()
}
