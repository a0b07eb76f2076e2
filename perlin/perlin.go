// Package perlin adapts the classic Perlin kernel from
// github.com/aquilax/go-perlin to the noise.Sampler capability, so it can be
// layered by the fractal combinators or swapped in anywhere a lattice kernel
// is expected. The adapter supports 2 and 3 dimensions, the range the
// underlying library covers beyond 1-D.
package perlin

import (
	"fmt"

	goperlin "github.com/aquilax/go-perlin"

	"github.com/MeKo-Tech/noisefield/noise"
)

// Single-octave underlying generator: octave layering is the combinator's
// job, so the library's internal alpha/beta/n machinery is pinned to one
// octave.
const (
	alpha = 2.0
	beta  = 2.0
)

// Sampler is a seeded Perlin kernel implementing noise.Sampler. Immutable
// after construction and safe for concurrent use.
type Sampler struct {
	p   *goperlin.Perlin
	dim int
}

// New constructs a Perlin sampler for dim in [2,3].
func New(dim int, seed int64) (*Sampler, error) {
	if dim < 2 || dim > 3 {
		return nil, fmt.Errorf("perlin: dimension must be within [2,3], got %d", dim)
	}
	return &Sampler{p: goperlin.NewPerlin(alpha, beta, 1, seed), dim: dim}, nil
}

// Source returns an octave-source factory for fractal combinators.
func Source(dim int) func(seed int64) (noise.Sampler, error) {
	return func(seed int64) (noise.Sampler, error) {
		return New(dim, seed)
	}
}

// Dimension reports the number of coordinates Sample expects.
func (s *Sampler) Dimension() int { return s.dim }

// Sample evaluates the field. It panics if the number of coordinates does not
// match Dimension.
func (s *Sampler) Sample(coords ...float64) float64 {
	if len(coords) != s.dim {
		panic(fmt.Sprintf("perlin: sampler is %d-dimensional, called with %d coordinates", s.dim, len(coords)))
	}
	if s.dim == 2 {
		return s.Sample2(coords[0], coords[1])
	}
	return s.Sample3(coords[0], coords[1], coords[2])
}

// Sample2 evaluates the 2-D kernel directly. It panics when the sampler is
// not 2-dimensional, the same contract as Sample.
func (s *Sampler) Sample2(x, y float64) float64 {
	if s.dim != 2 {
		panic(fmt.Sprintf("perlin: sampler is %d-dimensional, called with 2 coordinates", s.dim))
	}
	return s.p.Noise2D(x, y)
}

// Sample3 evaluates the 3-D kernel directly. It panics when the sampler is
// not 3-dimensional.
func (s *Sampler) Sample3(x, y, z float64) float64 {
	if s.dim != 3 {
		panic(fmt.Sprintf("perlin: sampler is %d-dimensional, called with 3 coordinates", s.dim))
	}
	return s.p.Noise3D(x, y, z)
}
