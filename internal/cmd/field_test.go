package cmd

import (
	"testing"

	"github.com/MeKo-Tech/noisefield/noise"
)

func defaultParams() fieldParams {
	return fieldParams{
		Seed:        1337,
		Kernel:      "simplex",
		Orientation: "standard",
		Octaves:     4,
		Frequency:   1.0,
		Lacunarity:  2.0,
		Persistence: 0.5,
	}
}

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		input   string
		want    noise.Orientation
		wantErr bool
	}{
		{input: "standard", want: noise.OrientStandard},
		{input: "improve", want: noise.OrientImproveAxes},
		{input: "Standard", wantErr: true},
		{input: "rotated", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseOrientation(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseOrientation(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("parseOrientation(%q) unexpected error: %v", tt.input, err)
				return
			}
			if got != tt.want {
				t.Errorf("parseOrientation(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildField(t *testing.T) {
	tests := []struct {
		name    string
		dim     int
		modify  func(*fieldParams)
		wantErr bool
	}{
		{name: "simplex 2D", dim: 2, modify: func(p *fieldParams) {}},
		{name: "simplex 4D improve", dim: 4, modify: func(p *fieldParams) { p.Orientation = "improve" }},
		{name: "perlin 3D", dim: 3, modify: func(p *fieldParams) { p.Kernel = "perlin" }},
		{name: "perlin 4D unsupported", dim: 4, modify: func(p *fieldParams) { p.Kernel = "perlin" }, wantErr: true},
		{name: "unknown kernel", dim: 2, modify: func(p *fieldParams) { p.Kernel = "value" }, wantErr: true},
		{name: "bad orientation", dim: 2, modify: func(p *fieldParams) { p.Orientation = "sideways" }, wantErr: true},
		{name: "octaves out of range", dim: 2, modify: func(p *fieldParams) { p.Octaves = 0 }, wantErr: true},
		{name: "zero frequency", dim: 2, modify: func(p *fieldParams) { p.Frequency = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := defaultParams()
			tt.modify(&params)

			field, err := buildField(tt.dim, params)
			if tt.wantErr {
				if err == nil {
					t.Errorf("buildField expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("buildField unexpected error: %v", err)
			}
			if field.Dimension() != tt.dim {
				t.Errorf("Dimension() = %d, want %d", field.Dimension(), tt.dim)
			}
		})
	}
}

func TestBuildFieldDeterministic(t *testing.T) {
	a, err := buildField(2, defaultParams())
	if err != nil {
		t.Fatalf("buildField failed: %v", err)
	}
	b, err := buildField(2, defaultParams())
	if err != nil {
		t.Fatalf("buildField failed: %v", err)
	}

	for _, pt := range [][2]float64{{0.1, 0.2}, {-3.5, 7.25}, {100, -100}} {
		if va, vb := a.Sample2(pt[0], pt[1]), b.Sample2(pt[0], pt[1]); va != vb {
			t.Errorf("Sample2(%v) = %v vs %v, want identical", pt, va, vb)
		}
	}
}
