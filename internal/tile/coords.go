// Package tile addresses noise overlay tiles in the Web Mercator z/x/y
// scheme, so rendered fields line up with standard web map stacks.
package tile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

// Coords is a tile coordinate in the Web Mercator tile pyramid.
type Coords struct {
	Z uint32
	X uint32
	Y uint32
}

// NewCoords creates a Coords from zoom, x, y values.
func NewCoords(z, x, y uint32) Coords {
	return Coords{Z: z, X: x, Y: y}
}

// String returns the coordinate as "z{zoom}_x{x}_y{y}".
func (c Coords) String() string {
	return fmt.Sprintf("z%d_x%d_y%d", c.Z, c.X, c.Y)
}

// Path returns the flat file name for this tile.
func (c Coords) Path(extension string) string {
	return fmt.Sprintf("%s.%s", c.String(), extension)
}

// Tile returns the maptile.Tile for this coordinate.
func (c Coords) Tile() maptile.Tile {
	return maptile.New(c.X, c.Y, maptile.Zoom(c.Z))
}

// Bounds returns the geographic bounding box of the tile in WGS84 as
// [minLon, minLat, maxLon, maxLat]. Used for tileset metadata.
func (c Coords) Bounds() [4]float64 {
	bound := c.Tile().Bound()
	return [4]float64{
		bound.Min.Lon(),
		bound.Min.Lat(),
		bound.Max.Lon(),
		bound.Max.Lat(),
	}
}

// SampleWindow returns the tile's extent in normalized world coordinates as
// [minU, minV, maxU, maxV], each axis in [0,1] across the whole pyramid.
// Samplers are evaluated over this window scaled by the configured frequency,
// so neighboring tiles share edge values exactly and the rendered field is
// seamless across tile boundaries.
func (c Coords) SampleWindow() [4]float64 {
	n := float64(uint64(1) << c.Z)
	return [4]float64{
		float64(c.X) / n,
		float64(c.Y) / n,
		float64(c.X+1) / n,
		float64(c.Y+1) / n,
	}
}

// ParseCoords parses a tile string like "z6_x32_y21".
func ParseCoords(s string) (Coords, error) {
	var c Coords
	if _, err := fmt.Sscanf(s, "z%d_x%d_y%d", &c.Z, &c.X, &c.Y); err != nil {
		return c, fmt.Errorf("invalid tile coordinate format: %s", s)
	}
	return c, nil
}

// ParseBBox parses "minLon,minLat,maxLon,maxLat".
func ParseBBox(s string) ([4]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return [4]float64{}, fmt.Errorf("bbox must have 4 comma-separated values, got %d", len(parts))
	}

	var bbox [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return [4]float64{}, fmt.Errorf("invalid bbox value %q: %w", p, err)
		}
		bbox[i] = v
	}
	if bbox[0] >= bbox[2] || bbox[1] >= bbox[3] {
		return [4]float64{}, fmt.Errorf("bbox min must be less than max: %v", bbox)
	}
	return bbox, nil
}

// InBBox returns all tile coordinates covering a WGS84 bounding box across a
// zoom range, computed independently per zoom level.
func InBBox(bbox [4]float64, zoomMin, zoomMax int) []Coords {
	minPoint := orb.Point{bbox[0], bbox[1]}
	maxPoint := orb.Point{bbox[2], bbox[3]}

	var tiles []Coords
	for z := zoomMin; z <= zoomMax; z++ {
		zoom := maptile.Zoom(z)
		a := maptile.At(minPoint, zoom)
		b := maptile.At(maxPoint, zoom)

		minX, maxX := a.X, b.X
		if minX > maxX {
			minX, maxX = maxX, minX
		}
		// Y grows southward, so the max-latitude corner has the smaller Y.
		minY, maxY := b.Y, a.Y
		if minY > maxY {
			minY, maxY = maxY, minY
		}

		for x := minX; x <= maxX; x++ {
			for y := minY; y <= maxY; y++ {
				tiles = append(tiles, NewCoords(uint32(z), x, y))
			}
		}
	}
	return tiles
}
