package noise

import (
	"math"
	"math/rand"
	"testing"
)

var orientations = []Orientation{OrientStandard, OrientImproveAxes}

func sampleAt(t *testing.T, g *Generator, p [4]float64) float64 {
	t.Helper()
	switch g.Dimension() {
	case 2:
		return g.Sample2(p[0], p[1])
	case 3:
		return g.Sample3(p[0], p[1], p[2])
	default:
		return g.Sample4(p[0], p[1], p[2], p[3])
	}
}

func TestDeterminismAcrossInstances(t *testing.T) {
	for _, dim := range []int{2, 3, 4} {
		for _, orient := range orientations {
			a, err := New(dim, 1337, orient)
			if err != nil {
				t.Fatalf("New(%d): %v", dim, err)
			}
			b, err := New(dim, 1337, orient)
			if err != nil {
				t.Fatalf("New(%d): %v", dim, err)
			}

			rng := rand.New(rand.NewSource(7))
			for i := 0; i < 1000; i++ {
				var p [4]float64
				for c := 0; c < dim; c++ {
					p[c] = (rng.Float64() - 0.5) * 16
				}
				va := sampleAt(t, a, p)
				vb := sampleAt(t, b, p)
				if va != vb {
					t.Fatalf("dim=%d orient=%s: instances disagree at %v: %v != %v", dim, orient, p[:dim], va, vb)
				}
				if again := sampleAt(t, a, p); again != va {
					t.Fatalf("dim=%d orient=%s: repeated call disagrees at %v: %v != %v", dim, orient, p[:dim], again, va)
				}
			}
		}
	}
}

func TestBoundedness(t *testing.T) {
	// Raw kernel output must stay near [-1, 1] and actually use the range: a
	// kernel whose amplitude collapses to a fraction of it would pass a pure
	// upper-bound check while skewing every fractal mix built on top.
	const (
		limit    = 1.05
		minReach = 0.5
	)

	for _, dim := range []int{2, 3, 4} {
		for _, orient := range orientations {
			g, err := New(dim, 99, orient)
			if err != nil {
				t.Fatalf("New(%d): %v", dim, err)
			}

			rng := rand.New(rand.NewSource(int64(dim)))
			maxAbs := 0.0
			for i := 0; i < 10000; i++ {
				var p [4]float64
				for c := 0; c < dim; c++ {
					p[c] = (rng.Float64() - 0.5) * 64
				}
				v := sampleAt(t, g, p)
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("dim=%d orient=%s: non-finite sample %v at %v", dim, orient, v, p[:dim])
				}
				if a := math.Abs(v); a > maxAbs {
					maxAbs = a
				}
			}
			if maxAbs > limit {
				t.Errorf("dim=%d orient=%s: |sample| reached %v, want <= %v", dim, orient, maxAbs, limit)
			}
			if maxAbs < minReach {
				t.Errorf("dim=%d orient=%s: |sample| peaked at %v over 10000 points, want >= %v", dim, orient, maxAbs, minReach)
			}
		}
	}
}

// Continuity: over a dense grid, a tiny coordinate step must move the output
// proportionally. The slope bound is generous; the point is catching seams at
// cell boundaries, which show up as jumps orders of magnitude above it.
func TestContinuity2D(t *testing.T) {
	const (
		eps      = 1e-4
		maxSlope = 100.0
	)

	for _, orient := range orientations {
		g, err := New(2, 4242, orient)
		if err != nil {
			t.Fatalf("New: %v", err)
		}

		for y := -2.0; y < 2.0; y += 0.02 {
			for x := -2.0; x < 2.0; x += 0.02 {
				base := g.Sample2(x, y)
				if dx := math.Abs(g.Sample2(x+eps, y) - base); dx > maxSlope*eps {
					t.Fatalf("orient=%s: x-discontinuity at (%v,%v): step %v", orient, x, y, dx)
				}
				if dy := math.Abs(g.Sample2(x, y+eps) - base); dy > maxSlope*eps {
					t.Fatalf("orient=%s: y-discontinuity at (%v,%v): step %v", orient, x, y, dy)
				}
			}
		}
	}
}

func TestContinuity3D(t *testing.T) {
	const (
		eps      = 1e-4
		maxSlope = 100.0
	)

	g, err := New(3, 4242, OrientStandard)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for z := -1.0; z < 1.0; z += 0.05 {
		for y := -1.0; y < 1.0; y += 0.05 {
			for x := -1.0; x < 1.0; x += 0.05 {
				base := g.Sample3(x, y, z)
				if d := math.Abs(g.Sample3(x+eps, y, z) - base); d > maxSlope*eps {
					t.Fatalf("x-discontinuity at (%v,%v,%v): step %v", x, y, z, d)
				}
				if d := math.Abs(g.Sample3(x, y+eps, z) - base); d > maxSlope*eps {
					t.Fatalf("y-discontinuity at (%v,%v,%v): step %v", x, y, z, d)
				}
				if d := math.Abs(g.Sample3(x, y, z+eps) - base); d > maxSlope*eps {
					t.Fatalf("z-discontinuity at (%v,%v,%v): step %v", x, y, z, d)
				}
			}
		}
	}
}

func TestOrientationsProduceDistinctFields(t *testing.T) {
	for _, dim := range []int{2, 3, 4} {
		std, err := New(dim, 5, OrientStandard)
		if err != nil {
			t.Fatalf("New(%d): %v", dim, err)
		}
		imp, err := New(dim, 5, OrientImproveAxes)
		if err != nil {
			t.Fatalf("New(%d): %v", dim, err)
		}

		rng := rand.New(rand.NewSource(11))
		differing := 0
		for i := 0; i < 100; i++ {
			var p [4]float64
			for c := 0; c < dim; c++ {
				p[c] = (rng.Float64() - 0.5) * 8
			}
			if sampleAt(t, std, p) != sampleAt(t, imp, p) {
				differing++
			}
		}
		if differing == 0 {
			t.Errorf("dim=%d: orientation variants produced identical fields over 100 points", dim)
		}
	}
}

func TestSeedSensitivity(t *testing.T) {
	a, err := New(2, 1, OrientStandard)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := New(2, 2, OrientStandard)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	differing := 0
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			px, py := float64(x)*0.73+0.1, float64(y)*0.57+0.1
			if a.Sample2(px, py) != b.Sample2(px, py) {
				differing++
			}
		}
	}
	if differing < 50 {
		t.Errorf("seeds 1 and 2 agreed on %d of 100 grid points; fields should decorrelate", 100-differing)
	}
}

// The double-cell lattice offsets exceed the int64 range and must wrap in
// two's complement at runtime, hashing exactly like two single-cell steps.
func TestLatticeArithmeticWraps(t *testing.T) {
	primes := []struct {
		name  string
		prime int64
	}{
		{"x", primeX}, {"y", primeY}, {"z", primeZ}, {"w", primeW},
	}
	for _, p := range primes {
		doubled := p.prime << 1
		if doubled != p.prime+p.prime {
			t.Errorf("%s: doubled prime %#x differs from repeated addition", p.name, uint64(doubled))
		}
		if doubled >= 0 {
			t.Errorf("%s: doubled prime %#x should wrap negative", p.name, uint64(doubled))
		}
	}

	if a, b := grad2(99, primeX<<1, primeY, 0.25, -0.5), grad2(99, primeX+primeX, primeY, 0.25, -0.5); a != b {
		t.Errorf("grad2 at doubled-prime offset: %v != %v", a, b)
	}
}

// Extreme-magnitude coordinates wrap the lattice-cell arithmetic rather than
// fault; the output stays finite and deterministic out there.
func TestExtremeCoordinatesStayFinite(t *testing.T) {
	coords := []float64{1e12, -1e12, 9.0e15, -9.0e15}

	for _, dim := range []int{2, 3, 4} {
		for _, orient := range orientations {
			g, err := New(dim, 7, orient)
			if err != nil {
				t.Fatalf("New(%d): %v", dim, err)
			}
			for _, c := range coords {
				var p [4]float64
				for i := 0; i < dim; i++ {
					p[i] = c + float64(i)*0.37
				}
				v := sampleAt(t, g, p)
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("dim=%d orient=%s: non-finite sample %v at %v", dim, orient, v, p[:dim])
				}
				if again := sampleAt(t, g, p); again != v {
					t.Fatalf("dim=%d orient=%s: repeated call disagrees at %v", dim, orient, p[:dim])
				}
			}
		}
	}
}

func TestGradientTableVectorsAreUnitScaled(t *testing.T) {
	checkMagnitudes := func(name string, table []float64, stride, active int, normalizer float64) {
		want := 1 / normalizer
		for i := 0; i+stride <= len(table); i += stride {
			mag := 0.0
			for c := 0; c < active; c++ {
				mag += table[i+c] * table[i+c]
			}
			mag = math.Sqrt(mag)
			if math.Abs(mag-want) > 1e-9*want {
				t.Errorf("%s[%d]: magnitude %v, want %v", name, i, mag, want)
			}
		}
	}

	checkMagnitudes("gradients2D", gradients2D[:], 2, 2, normalizer2D)
	checkMagnitudes("gradients3D", gradients3D[:], 4, 3, normalizer3D)
	checkMagnitudes("gradients4D", gradients4D[:], 4, 4, normalizer4D)
}
