package leiden

import (
	"math/rand"
	"time"
)

// newRNG builds the generator that drives node visitation order. A full run
// threads a single generator through every level, so a fixed seed makes the
// whole computation reproducible. Negative seeds select a time-based seed.
func newRNG(seed int64) *rand.Rand {
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
