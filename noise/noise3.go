package noise

// 3-D lattice constants. The 3-D kernel works in a rotated space where the
// simplex structure becomes two interleaved cubic lattices offset by half a
// cell, the second hashed with a flipped seed.
const (
	root3Over3            = 0.577350269189626
	fallbackRotate3       = 2.0 / 3.0
	rotate3Orthogonalizer = unskew2D
	rSquared3D            = 3.0 / 4.0
)

// noise3Standard evaluates the classic orientation: a rotation that hides the
// lattice diagonal, good general-purpose isotropy.
func noise3Standard(seed int64, x, y, z float64) float64 {
	r := fallbackRotate3 * (x + y + z)
	return noise3Base(seed, r-x, r-y, r-z)
}

// noise3ImproveXY keeps the XY plane regular at the cost of some isotropy,
// for fields sampled as 2-D slices with Z as time or elevation.
func noise3ImproveXY(seed int64, x, y, z float64) float64 {
	xy := x + y
	s2 := xy * rotate3Orthogonalizer
	zz := z * root3Over3
	xr := x + s2 + zz
	yr := y + s2 + zz
	zr := xy*-root3Over3 + zz
	return noise3Base(seed, xr, yr, zr)
}

// noise3Base sums falloff-weighted gradient contributions in rotated space.
// The nearest vertex of each lattice copy always contributes; per axis, a
// sign-test choice picks between the single-axis neighbor of the first copy
// and, failing its falloff test, the double-axis neighbor plus the mirrored
// second-copy neighbor. Branch outcomes depend only on the input point.
func noise3Base(seed int64, xr, yr, zr float64) float64 {
	xrb, yrb, zrb := fastFloor(xr), fastFloor(yr), fastFloor(zr)
	xi := xr - float64(xrb)
	yi := yr - float64(yrb)
	zi := zr - float64(zrb)

	xrbp, yrbp, zrbp := xrb*primeX, yrb*primeY, zrb*primeZ
	seed2 := seed ^ seedFlip3D

	// -1 when the fractional part is past the cell midpoint, else 0.
	xNMask := int64(-0.5 - xi)
	yNMask := int64(-0.5 - yi)
	zNMask := int64(-0.5 - zi)

	// Nearest vertex of the first lattice copy.
	x0 := xi + float64(xNMask)
	y0 := yi + float64(yNMask)
	z0 := zi + float64(zNMask)
	a0 := rSquared3D - x0*x0 - y0*y0 - z0*z0
	value := (a0 * a0) * (a0 * a0) *
		grad3(seed, xrbp+(xNMask&primeX), yrbp+(yNMask&primeY), zrbp+(zNMask&primeZ), x0, y0, z0)

	// Center vertex of the second lattice copy.
	x1 := xi - 0.5
	y1 := yi - 0.5
	z1 := zi - 0.5
	a1 := rSquared3D - x1*x1 - y1*y1 - z1*z1
	value += (a1 * a1) * (a1 * a1) *
		grad3(seed2, xrbp+primeX, yrbp+primeY, zrbp+primeZ, x1, y1, z1)

	// Per-axis falloff deltas for flipping one axis of either lattice copy.
	xAFlipMask0 := float64((xNMask|1)<<1) * x1
	yAFlipMask0 := float64((yNMask|1)<<1) * y1
	zAFlipMask0 := float64((zNMask|1)<<1) * z1
	xAFlipMask1 := float64(-2-(xNMask<<2))*x1 - 1.0
	yAFlipMask1 := float64(-2-(yNMask<<2))*y1 - 1.0
	zAFlipMask1 := float64(-2-(zNMask<<2))*z1 - 1.0

	skip5 := false
	a2 := xAFlipMask0 + a0
	if a2 > 0 {
		x2 := x0 - float64(xNMask|1)
		value += (a2 * a2) * (a2 * a2) *
			grad3(seed, xrbp+(^xNMask&primeX), yrbp+(yNMask&primeY), zrbp+(zNMask&primeZ), x2, y0, z0)
	} else {
		a3 := yAFlipMask0 + zAFlipMask0 + a0
		if a3 > 0 {
			y3 := y0 - float64(yNMask|1)
			z3 := z0 - float64(zNMask|1)
			value += (a3 * a3) * (a3 * a3) *
				grad3(seed, xrbp+(xNMask&primeX), yrbp+(^yNMask&primeY), zrbp+(^zNMask&primeZ), x0, y3, z3)
		}
		a4 := xAFlipMask1 + a1
		if a4 > 0 {
			x4 := float64(xNMask|1) + x1
			value += (a4 * a4) * (a4 * a4) *
				grad3(seed2, xrbp+(xNMask&(primeX<<1)), yrbp+primeY, zrbp+primeZ, x4, y1, z1)
			skip5 = true
		}
	}

	skip9 := false
	a6 := yAFlipMask0 + a0
	if a6 > 0 {
		y6 := y0 - float64(yNMask|1)
		value += (a6 * a6) * (a6 * a6) *
			grad3(seed, xrbp+(xNMask&primeX), yrbp+(^yNMask&primeY), zrbp+(zNMask&primeZ), x0, y6, z0)
	} else {
		a7 := xAFlipMask0 + zAFlipMask0 + a0
		if a7 > 0 {
			x7 := x0 - float64(xNMask|1)
			z7 := z0 - float64(zNMask|1)
			value += (a7 * a7) * (a7 * a7) *
				grad3(seed, xrbp+(^xNMask&primeX), yrbp+(yNMask&primeY), zrbp+(^zNMask&primeZ), x7, y0, z7)
		}
		a8 := yAFlipMask1 + a1
		if a8 > 0 {
			y8 := float64(yNMask|1) + y1
			value += (a8 * a8) * (a8 * a8) *
				grad3(seed2, xrbp+primeX, yrbp+(yNMask&(primeY<<1)), zrbp+primeZ, x1, y8, z1)
			skip9 = true
		}
	}

	skipD := false
	aA := zAFlipMask0 + a0
	if aA > 0 {
		zA := z0 - float64(zNMask|1)
		value += (aA * aA) * (aA * aA) *
			grad3(seed, xrbp+(xNMask&primeX), yrbp+(yNMask&primeY), zrbp+(^zNMask&primeZ), x0, y0, zA)
	} else {
		aB := xAFlipMask0 + yAFlipMask0 + a0
		if aB > 0 {
			xB := x0 - float64(xNMask|1)
			yB := y0 - float64(yNMask|1)
			value += (aB * aB) * (aB * aB) *
				grad3(seed, xrbp+(^xNMask&primeX), yrbp+(^yNMask&primeY), zrbp+(zNMask&primeZ), xB, yB, z0)
		}
		aC := zAFlipMask1 + a1
		if aC > 0 {
			zC := float64(zNMask|1) + z1
			value += (aC * aC) * (aC * aC) *
				grad3(seed2, xrbp+primeX, yrbp+primeY, zrbp+(zNMask&(primeZ<<1)), x1, y1, zC)
			skipD = true
		}
	}

	if !skip5 {
		a5 := yAFlipMask1 + zAFlipMask1 + a1
		if a5 > 0 {
			y5 := float64(yNMask|1) + y1
			z5 := float64(zNMask|1) + z1
			value += (a5 * a5) * (a5 * a5) *
				grad3(seed2, xrbp+primeX, yrbp+(yNMask&(primeY<<1)), zrbp+(zNMask&(primeZ<<1)), x1, y5, z5)
		}
	}
	if !skip9 {
		a9 := xAFlipMask1 + zAFlipMask1 + a1
		if a9 > 0 {
			x9 := float64(xNMask|1) + x1
			z9 := float64(zNMask|1) + z1
			value += (a9 * a9) * (a9 * a9) *
				grad3(seed2, xrbp+(xNMask&(primeX<<1)), yrbp+primeY, zrbp+(zNMask&(primeZ<<1)), x9, y1, z9)
		}
	}
	if !skipD {
		aD := xAFlipMask1 + yAFlipMask1 + a1
		if aD > 0 {
			xD := float64(xNMask|1) + x1
			yD := float64(yNMask|1) + y1
			value += (aD * aD) * (aD * aD) *
				grad3(seed2, xrbp+(xNMask&(primeX<<1)), yrbp+(yNMask&(primeY<<1)), zrbp+primeZ, xD, yD, z1)
		}
	}

	return value
}
