package cmd

import (
	"fmt"

	"github.com/MeKo-Tech/noisefield/fractal"
	"github.com/MeKo-Tech/noisefield/noise"
	"github.com/MeKo-Tech/noisefield/perlin"
	"github.com/spf13/viper"
)

// fieldParams collects the sampler settings shared by the generate and
// sample commands.
type fieldParams struct {
	Seed        int64
	Kernel      string
	Orientation string
	Octaves     int
	Frequency   float64
	Lacunarity  float64
	Persistence float64
}

func parseOrientation(s string) (noise.Orientation, error) {
	switch s {
	case "standard":
		return noise.OrientStandard, nil
	case "improve":
		return noise.OrientImproveAxes, nil
	default:
		return 0, fmt.Errorf("invalid orientation %q: must be 'standard' or 'improve'", s)
	}
}

// buildField constructs the fractal sampler described by the parameters. The
// orientation applies to the simplex kernel only; the perlin kernel has a
// single layout.
func buildField(dim int, p fieldParams) (*fractal.FBM, error) {
	cfg := fractal.Config{
		Seed:        p.Seed,
		Octaves:     p.Octaves,
		Frequency:   p.Frequency,
		Lacunarity:  p.Lacunarity,
		Persistence: p.Persistence,
	}

	switch p.Kernel {
	case "simplex":
		orient, err := parseOrientation(p.Orientation)
		if err != nil {
			return nil, err
		}
		return fractal.NewWithSource(dim, cfg, func(seed int64) (noise.Sampler, error) {
			return noise.New(dim, seed, orient)
		})
	case "perlin":
		return fractal.NewWithSource(dim, cfg, perlin.Source(dim))
	default:
		return nil, fmt.Errorf("invalid kernel %q: must be 'simplex' or 'perlin'", p.Kernel)
	}
}

func fieldParamsFromViper(prefix string) fieldParams {
	return fieldParams{
		Seed:        viper.GetInt64(prefix + ".seed"),
		Kernel:      viper.GetString(prefix + ".kernel"),
		Orientation: viper.GetString(prefix + ".orientation"),
		Octaves:     viper.GetInt(prefix + ".octaves"),
		Frequency:   viper.GetFloat64(prefix + ".frequency"),
		Lacunarity:  viper.GetFloat64(prefix + ".lacunarity"),
		Persistence: viper.GetFloat64(prefix + ".persistence"),
	}
}
