package noise

// 2-D lattice constants. The skew maps Euclidean space onto the triangular
// lattice; the unskew constant maps back. rSquared2D is the falloff support
// radius squared shared by every vertex contribution.
const (
	skew2D     = 0.366025403784439
	unskew2D   = -0.21132486540518713
	rSquared2D = 2.0 / 3.0
	root2Over2 = 0.7071067811865476
)

// noise2Standard evaluates the isotropic orientation: plain skew onto the
// lattice.
func noise2Standard(seed int64, x, y float64) float64 {
	s := skew2D * (x + y)
	return noise2Base(seed, x+s, y+s)
}

// noise2ImproveX trades a little isotropy for more regular sampling along the
// X axis, with the rotation and skew baked into a single transform. Useful
// when X is elapsed time or a dominant travel axis.
func noise2ImproveX(seed int64, x, y float64) float64 {
	xx := x * root2Over2
	yy := y * (root2Over2 * (1 + 2*skew2D))
	return noise2Base(seed, yy+xx, yy-xx)
}

// noise2Base sums falloff-weighted gradient contributions for coordinates
// already skewed onto the lattice. The base vertex and its diagonal opposite
// are always evaluated; two further candidates are selected by sign tests on
// the unskewed offsets, one two-way choice per axis. The branch outcome
// depends only on the input point, never on evaluation order.
func noise2Base(seed int64, xs, ys float64) float64 {
	xsb, ysb := fastFloor(xs), fastFloor(ys)
	xi, yi := xs-float64(xsb), ys-float64(ysb)

	xsbp, ysbp := xsb*primeX, ysb*primeY

	t := (xi + yi) * unskew2D
	dx0, dy0 := xi+t, yi+t

	var value float64

	// Base vertex (0,0).
	a0 := rSquared2D - dx0*dx0 - dy0*dy0
	if a0 > 0 {
		value = (a0 * a0) * (a0 * a0) * grad2(seed, xsbp, ysbp, dx0, dy0)
	}

	// Diagonal opposite vertex (1,1).
	dx1 := dx0 - (1 + 2*unskew2D)
	dy1 := dy0 - (1 + 2*unskew2D)
	a1 := rSquared2D - dx1*dx1 - dy1*dy1
	if a1 > 0 {
		value += (a1 * a1) * (a1 * a1) * grad2(seed, xsbp+primeX, ysbp+primeY, dx1, dy1)
	}

	// Third and fourth vertices, selected per axis. t < unskew2D holds
	// exactly when xi+yi > 1, i.e. the point lies in the upper triangle of
	// the skewed cell.
	xmyi := xi - yi
	if t < unskew2D {
		if xi+xmyi > 1 {
			// (2,1)
			dx := dx0 - (3*unskew2D + 2)
			dy := dy0 - (3*unskew2D + 1)
			a := rSquared2D - dx*dx - dy*dy
			if a > 0 {
				value += (a * a) * (a * a) * grad2(seed, xsbp+(primeX<<1), ysbp+primeY, dx, dy)
			}
		} else {
			// (0,1)
			dx := dx0 - unskew2D
			dy := dy0 - (unskew2D + 1)
			a := rSquared2D - dx*dx - dy*dy
			if a > 0 {
				value += (a * a) * (a * a) * grad2(seed, xsbp, ysbp+primeY, dx, dy)
			}
		}
		if yi-xmyi > 1 {
			// (1,2)
			dx := dx0 - (3*unskew2D + 1)
			dy := dy0 - (3*unskew2D + 2)
			a := rSquared2D - dx*dx - dy*dy
			if a > 0 {
				value += (a * a) * (a * a) * grad2(seed, xsbp+primeX, ysbp+(primeY<<1), dx, dy)
			}
		} else {
			// (1,0)
			dx := dx0 - (unskew2D + 1)
			dy := dy0 - unskew2D
			a := rSquared2D - dx*dx - dy*dy
			if a > 0 {
				value += (a * a) * (a * a) * grad2(seed, xsbp+primeX, ysbp, dx, dy)
			}
		}
	} else {
		if xi+xmyi < 0 {
			// (-1,0)
			dx := dx0 + (unskew2D + 1)
			dy := dy0 + unskew2D
			a := rSquared2D - dx*dx - dy*dy
			if a > 0 {
				value += (a * a) * (a * a) * grad2(seed, xsbp-primeX, ysbp, dx, dy)
			}
		} else {
			// (1,0)
			dx := dx0 - (unskew2D + 1)
			dy := dy0 - unskew2D
			a := rSquared2D - dx*dx - dy*dy
			if a > 0 {
				value += (a * a) * (a * a) * grad2(seed, xsbp+primeX, ysbp, dx, dy)
			}
		}
		if yi < xmyi {
			// (0,-1)
			dx := dx0 + unskew2D
			dy := dy0 + (unskew2D + 1)
			a := rSquared2D - dx*dx - dy*dy
			if a > 0 {
				value += (a * a) * (a * a) * grad2(seed, xsbp, ysbp-primeY, dx, dy)
			}
		} else {
			// (0,1)
			dx := dx0 - unskew2D
			dy := dy0 - (unskew2D + 1)
			a := rSquared2D - dx*dx - dy*dy
			if a > 0 {
				value += (a * a) * (a * a) * grad2(seed, xsbp, ysbp+primeY, dx, dy)
			}
		}
	}
	return value
}
