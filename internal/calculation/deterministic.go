package calculation

import "time"

// seedFunc returns a pseudo-random seed (override for deterministic sampling in tests).
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }

// ResolveSeed returns seed unchanged, or a fresh one from the seed provider when it is zero.
func ResolveSeed(seed int64) int64 {
	if seed == 0 {
		return seedFunc()
	}
	return seed
}
