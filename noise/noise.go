// Package noise implements seeded coherent-noise kernels over a simplex
// lattice in 2, 3 and 4 dimensions.
//
// Given a seed and real-valued coordinates, a kernel deterministically
// produces a smooth scalar field with raw output approximately in [-1, 1].
// All state is fixed at construction, so any sampler in this package may be
// shared freely across goroutines without synchronization.
package noise

// Sampler is the capability shared by every kernel and combinator: evaluate
// the field at a point. Implementations are pure and deterministic for a
// given configuration and never fail once constructed.
//
// Sample panics if the number of coordinates does not match Dimension; that
// is a caller bug, not a runtime error path. All configuration validation
// happens at construction time.
type Sampler interface {
	// Dimension reports the number of coordinates Sample expects, in [2,4].
	Dimension() int

	// Sample evaluates the field at the given coordinates.
	Sample(coords ...float64) float64
}

// Sampler2, Sampler3 and Sampler4 are the non-variadic fast paths. Combinators
// probe for them at construction so the per-octave sampling loop does not
// allocate a coordinate slice per call.
type Sampler2 interface {
	Sample2(x, y float64) float64
}

type Sampler3 interface {
	Sample3(x, y, z float64) float64
}

type Sampler4 interface {
	Sample4(x, y, z, w float64) float64
}
