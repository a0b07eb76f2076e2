package noise

// 4-D lattice constants. skew4D = (sqrt(5)-1)/4 maps onto the simplex grid,
// unskew4D = (1-1/sqrt(5))/4 maps back. The tighter falloff radius keeps the
// five traversed vertices covering the full support of every query point.
const (
	skew4D     = 0.30901699437494745
	unskew4D   = 0.1381966011250105
	rSquared4D = 0.6
)

func noise4Standard(seed int64, x, y, z, w float64) float64 {
	return noise4Base(seed, x, y, z, w)
}

// noise4ImproveXYZ rotates the main xyz diagonal away from the lattice
// diagonal before skewing, for fields sampled as 3-D slices with W as time.
// The transform is an orthogonal involution, so distances are preserved.
func noise4ImproveXYZ(seed int64, x, y, z, w float64) float64 {
	h := (x + y + z + w) * 0.5
	return noise4Base(seed, h-x, h-y, h-z, h-w)
}

// noise4Base skews onto the simplex grid, floors to the base cell, then walks
// the five simplex vertices in coordinate-rank order. Each vertex contributes
// (rSquared4D - d²)⁴ times a hashed gradient dotted with the offset when the
// falloff is positive. The rank sign tests depend only on the input point.
func noise4Base(seed int64, x, y, z, w float64) float64 {
	s := (x + y + z + w) * skew4D
	xsb := fastFloor(x + s)
	ysb := fastFloor(y + s)
	zsb := fastFloor(z + s)
	wsb := fastFloor(w + s)

	t := float64(xsb+ysb+zsb+wsb) * unskew4D
	x0 := x - float64(xsb) + t
	y0 := y - float64(ysb) + t
	z0 := z - float64(zsb) + t
	w0 := w - float64(wsb) + t

	// Rank the offsets to order the simplex traversal.
	rankx, ranky, rankz, rankw := 0, 0, 0, 0
	if x0 > y0 {
		rankx++
	} else {
		ranky++
	}
	if x0 > z0 {
		rankx++
	} else {
		rankz++
	}
	if x0 > w0 {
		rankx++
	} else {
		rankw++
	}
	if y0 > z0 {
		ranky++
	} else {
		rankz++
	}
	if y0 > w0 {
		ranky++
	} else {
		rankw++
	}
	if z0 > w0 {
		rankz++
	} else {
		rankw++
	}

	rankStep := func(rank, threshold int) int64 {
		if rank >= threshold {
			return 1
		}
		return 0
	}
	i1, j1, k1, l1 := rankStep(rankx, 3), rankStep(ranky, 3), rankStep(rankz, 3), rankStep(rankw, 3)
	i2, j2, k2, l2 := rankStep(rankx, 2), rankStep(ranky, 2), rankStep(rankz, 2), rankStep(rankw, 2)
	i3, j3, k3, l3 := rankStep(rankx, 1), rankStep(ranky, 1), rankStep(rankz, 1), rankStep(rankw, 1)

	xsvp := xsb * primeX
	ysvp := ysb * primeY
	zsvp := zsb * primeZ
	wsvp := wsb * primeW

	var value float64
	contrib := func(di, dj, dk, dl int64, dx, dy, dz, dw float64) {
		a := rSquared4D - dx*dx - dy*dy - dz*dz - dw*dw
		if a > 0 {
			value += (a * a) * (a * a) *
				grad4(seed, xsvp+di*primeX, ysvp+dj*primeY, zsvp+dk*primeZ, wsvp+dl*primeW, dx, dy, dz, dw)
		}
	}

	contrib(0, 0, 0, 0, x0, y0, z0, w0)
	contrib(i1, j1, k1, l1,
		x0-float64(i1)+unskew4D, y0-float64(j1)+unskew4D, z0-float64(k1)+unskew4D, w0-float64(l1)+unskew4D)
	contrib(i2, j2, k2, l2,
		x0-float64(i2)+2*unskew4D, y0-float64(j2)+2*unskew4D, z0-float64(k2)+2*unskew4D, w0-float64(l2)+2*unskew4D)
	contrib(i3, j3, k3, l3,
		x0-float64(i3)+3*unskew4D, y0-float64(j3)+3*unskew4D, z0-float64(k3)+3*unskew4D, w0-float64(l3)+3*unskew4D)
	contrib(1, 1, 1, 1,
		x0-1+4*unskew4D, y0-1+4*unskew4D, z0-1+4*unskew4D, w0-1+4*unskew4D)

	return value
}
