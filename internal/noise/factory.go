// Package noise implements the two coherent-noise composers the world
// generator layers together: a fractal (fBm) composer and a ridge
// composer. Both are built on 2D simplex noise from
// github.com/ojrac/opensimplex-go, grounded in the retrieved
// edw0rd21-voxel-game-go and pthm-soup examples — the only two repos in
// the pack that generate voxel terrain from a dedicated noise library
// rather than hand-rolled value noise.
package noise

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Factory hands out simplex generators seeded from a single process-wide
// counter, matching §4.2's "each call to the noise factory consumes one
// seed from a process-wide counter initialized from a random 30-bit
// value." The design notes ask for this counter to be threaded through
// construction explicitly (for reproducibility) rather than kept as a
// package-level global, so Factory is a value callers own and pass around.
type Factory struct {
	counter int64
}

// NewFactory seeds the counter from a fresh random 30-bit value, matching
// the "process-wide state initialized from a random 30-bit value"
// contract for an unseeded factory.
func NewFactory() *Factory {
	return &Factory{counter: int64(rand.Int31n(1 << 30))}
}

// NewFactoryFromSeed starts the counter at an explicit value, for
// deterministic generator output across runs (§8 testable property 6).
func NewFactoryFromSeed(seed int64) *Factory {
	return &Factory{counter: seed}
}

// next consumes and returns the next seed from the counter.
func (f *Factory) next() int64 {
	s := f.counter
	f.counter++
	return s
}

// newSimplex allocates one simplex generator, consuming one seed.
func (f *Factory) newSimplex() opensimplex.Noise {
	return opensimplex.New(f.next())
}
