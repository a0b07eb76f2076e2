package noise

import "fmt"

// Orientation selects the lattice orientation transform applied to raw input
// coordinates before lattice lookup.
type Orientation int

const (
	// OrientStandard is the isotropic default orientation.
	OrientStandard Orientation = iota

	// OrientImproveAxes trades a little isotropy for more regular sampling
	// along the principal axes: ImproveX in 2-D, ImproveXY in 3-D and
	// ImproveXYZ in 4-D.
	OrientImproveAxes
)

func (o Orientation) String() string {
	switch o {
	case OrientStandard:
		return "standard"
	case OrientImproveAxes:
		return "improve-axes"
	default:
		return fmt.Sprintf("orientation(%d)", int(o))
	}
}

// Generator is a seeded lattice kernel for a fixed dimension and orientation.
// It is immutable after construction and safe for concurrent use.
//
// Coordinates of extreme magnitude (beyond roughly ±2^53) lose float64 lattice
// precision and the lattice cell arithmetic wraps in two's complement; the
// field stays deterministic but is no longer band-limited out there. This is
// a documented boundary, not a guarded condition.
type Generator struct {
	seed   int64
	dim    int
	orient Orientation
}

// New constructs a kernel for dim in [2,4]. Configuration errors are reported
// here; a constructed Generator never fails during sampling.
func New(dim int, seed int64, orient Orientation) (*Generator, error) {
	if dim < 2 || dim > 4 {
		return nil, fmt.Errorf("noise: dimension must be within [2,4], got %d", dim)
	}
	if orient != OrientStandard && orient != OrientImproveAxes {
		return nil, fmt.Errorf("noise: unknown orientation %d", int(orient))
	}
	return &Generator{seed: seed, dim: dim, orient: orient}, nil
}

// Dimension reports the number of coordinates Sample expects.
func (g *Generator) Dimension() int { return g.dim }

// Seed reports the seed fixed at construction.
func (g *Generator) Seed() int64 { return g.seed }

// Sample evaluates the field. It panics if the number of coordinates does not
// match Dimension.
func (g *Generator) Sample(coords ...float64) float64 {
	if len(coords) != g.dim {
		panic(fmt.Sprintf("noise: sampler is %d-dimensional, called with %d coordinates", g.dim, len(coords)))
	}
	switch g.dim {
	case 2:
		return g.Sample2(coords[0], coords[1])
	case 3:
		return g.Sample3(coords[0], coords[1], coords[2])
	default:
		return g.Sample4(coords[0], coords[1], coords[2], coords[3])
	}
}

// Sample2 evaluates the 2-D kernel directly. It panics when the generator is
// not 2-dimensional, the same contract as Sample.
func (g *Generator) Sample2(x, y float64) float64 {
	if g.dim != 2 {
		panic(fmt.Sprintf("noise: sampler is %d-dimensional, called with 2 coordinates", g.dim))
	}
	if g.orient == OrientImproveAxes {
		return noise2ImproveX(g.seed, x, y)
	}
	return noise2Standard(g.seed, x, y)
}

// Sample3 evaluates the 3-D kernel directly. It panics when the generator is
// not 3-dimensional.
func (g *Generator) Sample3(x, y, z float64) float64 {
	if g.dim != 3 {
		panic(fmt.Sprintf("noise: sampler is %d-dimensional, called with 3 coordinates", g.dim))
	}
	if g.orient == OrientImproveAxes {
		return noise3ImproveXY(g.seed, x, y, z)
	}
	return noise3Standard(g.seed, x, y, z)
}

// Sample4 evaluates the 4-D kernel directly. It panics when the generator is
// not 4-dimensional.
func (g *Generator) Sample4(x, y, z, w float64) float64 {
	if g.dim != 4 {
		panic(fmt.Sprintf("noise: sampler is %d-dimensional, called with 4 coordinates", g.dim))
	}
	if g.orient == OrientImproveAxes {
		return noise4ImproveXYZ(g.seed, x, y, z, w)
	}
	return noise4Standard(g.seed, x, y, z, w)
}
