package noise

import "math"

// Lattice hashing primes. Each integer lattice axis is pre-multiplied by its
// own prime so that neighboring cells hash far apart; the seed is folded in
// with XOR and the product is mixed by a single 64-bit multiply. Declared as
// variables rather than constants: the kernels shift and scale these values
// in expressions that must wrap in two's complement at runtime, which
// constant arithmetic would reject as overflow.
var (
	primeX int64 = 0x5205402B9270C86F
	primeY int64 = 0x598CD327003817B5
	primeZ int64 = 0x5BCC226E9FA0BACB
	primeW int64 = 0x56CC5227E58F554B
)

const (
	hashMultiplier int64 = 0x53A3F72DEEC546F5
	seedFlip3D     int64 = -0x52D547B2E96ED629
)

// Gradient table sizes are powers of two so the hash reduces to a mask. The
// normalizers scale the unit gradient vectors so that summed kernel output
// lands approximately in [-1, 1].
const (
	nGrads2DExp = 7
	nGrads2D    = 1 << nGrads2DExp
	nGrads3DExp = 8
	nGrads3D    = 1 << nGrads3DExp
	nGrads4DExp = 9
	nGrads4D    = 1 << nGrads4DExp

	normalizer2D = 0.05481866495625118
	normalizer3D = 0.08426606
	normalizer4D = 0.022
)

// Process-wide immutable gradient tables, filled once at init and read
// concurrently without synchronization afterwards.
var (
	gradients2D [nGrads2D * 2]float64
	gradients3D [nGrads3D * 4]float64
	gradients4D [nGrads4D * 4]float64
)

func init() {
	initGradients2D()
	initGradients3D()
	initGradients4D()
}

// initGradients2D fills the 2-D table from 24 unit vectors evenly spaced at
// 15 degree intervals, offset by 7.5 degrees so no gradient aligns with a
// lattice axis.
func initGradients2D() {
	var base [48]float64
	for k := 0; k < 24; k++ {
		theta := float64(2*k+1) * math.Pi / 24
		base[2*k] = math.Cos(theta) / normalizer2D
		base[2*k+1] = math.Sin(theta) / normalizer2D
	}
	for i := range gradients2D {
		gradients2D[i] = base[i%len(base)]
	}
}

// initGradients3D fills the 3-D table from the 24 unit vectors obtained by
// permuting (±a, ±a, ±1) with a = 1+sqrt(3/2), a symmetric spread with no
// gradient aligned to a lattice axis. Entries are padded to stride 4 so a
// lookup reads one aligned quad.
func initGradients3D() {
	a := 1 + math.Sqrt(1.5)
	mag := math.Sqrt(2*a*a + 1)

	var base [24 * 4]float64
	n := 0
	for axis := 0; axis < 3; axis++ {
		for signs := 0; signs < 8; signs++ {
			var v [3]float64
			j := 0
			for c := 0; c < 3; c++ {
				if c == axis {
					v[c] = 1
				} else {
					v[c] = a
					if signs&(1<<j) != 0 {
						v[c] = -a
					}
					j++
				}
			}
			if signs&4 != 0 {
				v[axis] = -1
			}
			base[n] = v[0] / mag / normalizer3D
			base[n+1] = v[1] / mag / normalizer3D
			base[n+2] = v[2] / mag / normalizer3D
			base[n+3] = 0
			n += 4
		}
	}
	for i := range gradients3D {
		gradients3D[i] = base[i%len(base)]
	}
}

// initGradients4D fills the 4-D table from the 32 unit vectors obtained by
// normalizing the sign combinations of (0, ±1, ±1, ±1) across the four
// possible zero positions, restricted to the classic 32-entry selection.
func initGradients4D() {
	var dirs = [32][4]float64{
		{0, 1, 1, 1}, {0, 1, 1, -1}, {0, 1, -1, 1}, {0, 1, -1, -1},
		{0, -1, 1, 1}, {0, -1, 1, -1}, {0, -1, -1, 1}, {0, -1, -1, -1},
		{1, 0, 1, 1}, {1, 0, 1, -1}, {1, 0, -1, 1}, {1, 0, -1, -1},
		{-1, 0, 1, 1}, {-1, 0, 1, -1}, {-1, 0, -1, 1}, {-1, 0, -1, -1},
		{1, 1, 0, 1}, {1, 1, 0, -1}, {1, -1, 0, 1}, {1, -1, 0, -1},
		{-1, 1, 0, 1}, {-1, 1, 0, -1}, {-1, -1, 0, 1}, {-1, -1, 0, -1},
		{1, 1, 1, 0}, {1, 1, -1, 0}, {1, -1, 1, 0}, {1, -1, -1, 0},
		{-1, 1, 1, 0}, {-1, 1, -1, 0}, {-1, -1, 1, 0}, {-1, -1, -1, 0},
	}
	mag := math.Sqrt(3)

	var base [32 * 4]float64
	for i, d := range dirs {
		for c := 0; c < 4; c++ {
			base[i*4+c] = d[c] / mag / normalizer4D
		}
	}
	for i := range gradients4D {
		gradients4D[i] = base[i%len(base)]
	}
}

// grad2 hashes (seed, prime-scaled lattice point) to a table gradient and
// returns its dot product with the offset vector. Identical inputs always
// yield the identical gradient, which is what keeps the field spatially
// coherent and seed-reproducible.
func grad2(seed, xsvp, ysvp int64, dx, dy float64) float64 {
	h := seed ^ xsvp ^ ysvp
	h *= hashMultiplier
	h ^= h >> (64 - nGrads2DExp + 1)
	gi := int(h) & ((nGrads2D - 1) << 1)
	return gradients2D[gi]*dx + gradients2D[gi|1]*dy
}

func grad3(seed, xrvp, yrvp, zrvp int64, dx, dy, dz float64) float64 {
	h := (seed ^ xrvp) ^ (yrvp ^ zrvp)
	h *= hashMultiplier
	h ^= h >> (64 - nGrads3DExp + 2)
	gi := int(h) & ((nGrads3D - 1) << 2)
	return gradients3D[gi]*dx + gradients3D[gi|1]*dy + gradients3D[gi|2]*dz
}

func grad4(seed, xsvp, ysvp, zsvp, wsvp int64, dx, dy, dz, dw float64) float64 {
	h := seed ^ (xsvp ^ ysvp) ^ (zsvp ^ wsvp)
	h *= hashMultiplier
	h ^= h >> (64 - nGrads4DExp + 2)
	gi := int(h) & ((nGrads4D - 1) << 2)
	return gradients4D[gi]*dx + gradients4D[gi|1]*dy + gradients4D[gi|2]*dz + gradients4D[gi|3]*dw
}

// fastFloor avoids the math.Floor call on the lattice hot path. The int64
// conversion truncates toward zero, so negative non-integers need one step
// down.
func fastFloor(x float64) int64 {
	i := int64(x)
	if x < float64(i) {
		i--
	}
	return i
}
