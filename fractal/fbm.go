// Package fractal layers independently seeded octave sources into a
// self-similar multi-octave signal. Any noise.Sampler can serve as a source,
// including another combinator, so fractal stacks nest freely.
package fractal

import (
	"fmt"

	"github.com/MeKo-Tech/noisefield/noise"
)

// Octave count bounds enforced at construction.
const (
	MinOctaves = 1
	MaxOctaves = 32
)

// Config holds the fractal parameters. Frequency must be positive and octaves
// within [MinOctaves, MaxOctaves]; lacunarity and persistence are deliberately
// unvalidated, so degenerate values (a persistence whose amplitude sum is
// zero, a lacunarity below one) are honored as configured.
type Config struct {
	Seed        int64
	Octaves     int
	Frequency   float64
	Lacunarity  float64
	Persistence float64
}

func (c Config) validate() error {
	if c.Octaves < MinOctaves || c.Octaves > MaxOctaves {
		return fmt.Errorf("fractal: octaves must be within [%d,%d], got %d", MinOctaves, MaxOctaves, c.Octaves)
	}
	if !(c.Frequency > 0) {
		return fmt.Errorf("fractal: frequency must be positive, got %v", c.Frequency)
	}
	return nil
}

// SourceFunc constructs one octave source for a derived seed.
type SourceFunc func(seed int64) (noise.Sampler, error)

// FBM is a fractal Brownian motion combinator over an ordered sequence of
// octave sources. It implements noise.Sampler and is immutable after
// construction.
type FBM struct {
	dim     int
	sources []noise.Sampler

	// Non-variadic fast paths, populated when every source exposes one for
	// the matching dimension.
	s2 []noise.Sampler2
	s3 []noise.Sampler3
	s4 []noise.Sampler4

	frequency   float64
	lacunarity  float64
	persistence float64
	scale       float64
}

// New constructs an FBM whose octaves are standard-orientation lattice
// kernels of the given dimension.
func New(dim int, cfg Config) (*FBM, error) {
	return NewWithSource(dim, cfg, func(seed int64) (noise.Sampler, error) {
		return noise.New(dim, seed, noise.OrientStandard)
	})
}

// NewWithSource constructs an FBM whose octaves are built by src, one call
// per octave with an independently derived seed. Every source must report the
// requested dimension.
func NewWithSource(dim int, cfg Config, src SourceFunc) (*FBM, error) {
	if dim < 2 || dim > 4 {
		return nil, fmt.Errorf("fractal: dimension must be within [2,4], got %d", dim)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	sources := make([]noise.Sampler, cfg.Octaves)
	for i := range sources {
		s, err := src(octaveSeed(cfg.Seed, i))
		if err != nil {
			return nil, fmt.Errorf("fractal: octave %d: %w", i, err)
		}
		if s.Dimension() != dim {
			return nil, fmt.Errorf("fractal: octave %d source is %d-dimensional, want %d", i, s.Dimension(), dim)
		}
		sources[i] = s
	}
	return build(dim, cfg, sources), nil
}

// NewFromSampler constructs an FBM that reuses one pre-built instance for
// every octave. The instance keeps its own seed, so octave decorrelation
// comes from frequency scaling alone; prefer NewWithSource when independent
// octave seeds matter. Construction fails when the instance's dimensionality
// does not match the requested dimension.
func NewFromSampler(dim int, cfg Config, s noise.Sampler) (*FBM, error) {
	if dim < 2 || dim > 4 {
		return nil, fmt.Errorf("fractal: dimension must be within [2,4], got %d", dim)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if s.Dimension() != dim {
		return nil, fmt.Errorf("fractal: source is %d-dimensional, want %d", s.Dimension(), dim)
	}

	sources := make([]noise.Sampler, cfg.Octaves)
	for i := range sources {
		sources[i] = s
	}
	return build(dim, cfg, sources), nil
}

// octaveSeed derives the seed for octave i as a pure function of the base
// seed and the octave index. The golden-gamma stride keeps adjacent octave
// seeds far apart in the hash space.
func octaveSeed(base int64, i int) int64 {
	return base + int64(uint64(i)*0x9E3779B97F4A7C15)
}

func build(dim int, cfg Config, sources []noise.Sampler) *FBM {
	f := &FBM{
		dim:         dim,
		sources:     sources,
		frequency:   cfg.Frequency,
		lacunarity:  cfg.Lacunarity,
		persistence: cfg.Persistence,
	}

	// scale = sum of persistence^i, computed exactly once and reused for
	// every sample call.
	amp := 1.0
	for range sources {
		f.scale += amp
		amp *= cfg.Persistence
	}

	switch dim {
	case 2:
		s2 := make([]noise.Sampler2, 0, len(sources))
		for _, s := range sources {
			fast, ok := s.(noise.Sampler2)
			if !ok {
				return f
			}
			s2 = append(s2, fast)
		}
		f.s2 = s2
	case 3:
		s3 := make([]noise.Sampler3, 0, len(sources))
		for _, s := range sources {
			fast, ok := s.(noise.Sampler3)
			if !ok {
				return f
			}
			s3 = append(s3, fast)
		}
		f.s3 = s3
	case 4:
		s4 := make([]noise.Sampler4, 0, len(sources))
		for _, s := range sources {
			fast, ok := s.(noise.Sampler4)
			if !ok {
				return f
			}
			s4 = append(s4, fast)
		}
		f.s4 = s4
	}
	return f
}

// Dimension reports the number of coordinates Sample expects.
func (f *FBM) Dimension() int { return f.dim }

// Octaves reports the number of layered sources.
func (f *FBM) Octaves() int { return len(f.sources) }

// Scale reports the precomputed amplitude normalization factor.
func (f *FBM) Scale() float64 { return f.scale }

// Sample evaluates the fractal sum. It panics if the number of coordinates
// does not match Dimension.
func (f *FBM) Sample(coords ...float64) float64 {
	if len(coords) != f.dim {
		panic(fmt.Sprintf("fractal: sampler is %d-dimensional, called with %d coordinates", f.dim, len(coords)))
	}
	switch f.dim {
	case 2:
		return f.Sample2(coords[0], coords[1])
	case 3:
		return f.Sample3(coords[0], coords[1], coords[2])
	default:
		return f.Sample4(coords[0], coords[1], coords[2], coords[3])
	}
}

// Sample2 evaluates a 2-D fractal sum without per-call allocation.
func (f *FBM) Sample2(x, y float64) float64 {
	x *= f.frequency
	y *= f.frequency
	sum, amp := 0.0, 1.0
	if f.s2 != nil {
		for _, s := range f.s2 {
			sum += s.Sample2(x, y) * amp
			amp *= f.persistence
			x *= f.lacunarity
			y *= f.lacunarity
		}
	} else {
		for _, s := range f.sources {
			sum += s.Sample(x, y) * amp
			amp *= f.persistence
			x *= f.lacunarity
			y *= f.lacunarity
		}
	}
	return sum / f.scale
}

// Sample3 evaluates a 3-D fractal sum without per-call allocation.
func (f *FBM) Sample3(x, y, z float64) float64 {
	x *= f.frequency
	y *= f.frequency
	z *= f.frequency
	sum, amp := 0.0, 1.0
	if f.s3 != nil {
		for _, s := range f.s3 {
			sum += s.Sample3(x, y, z) * amp
			amp *= f.persistence
			x *= f.lacunarity
			y *= f.lacunarity
			z *= f.lacunarity
		}
	} else {
		for _, s := range f.sources {
			sum += s.Sample(x, y, z) * amp
			amp *= f.persistence
			x *= f.lacunarity
			y *= f.lacunarity
			z *= f.lacunarity
		}
	}
	return sum / f.scale
}

// Sample4 evaluates a 4-D fractal sum without per-call allocation.
func (f *FBM) Sample4(x, y, z, w float64) float64 {
	x *= f.frequency
	y *= f.frequency
	z *= f.frequency
	w *= f.frequency
	sum, amp := 0.0, 1.0
	if f.s4 != nil {
		for _, s := range f.s4 {
			sum += s.Sample4(x, y, z, w) * amp
			amp *= f.persistence
			x *= f.lacunarity
			y *= f.lacunarity
			z *= f.lacunarity
			w *= f.lacunarity
		}
	} else {
		for _, s := range f.sources {
			sum += s.Sample(x, y, z, w) * amp
			amp *= f.persistence
			x *= f.lacunarity
			y *= f.lacunarity
			z *= f.lacunarity
			w *= f.lacunarity
		}
	}
	return sum / f.scale
}
