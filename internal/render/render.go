// Package render rasterizes a 2-D scalar field into grayscale tile images.
package render

import (
	"fmt"
	"image"

	"github.com/disintegration/gift"
	xdraw "golang.org/x/image/draw"
)

// Field is any 2-D sampler; both noise kernels and fractal combinators
// satisfy it.
type Field interface {
	Sample2(x, y float64) float64
}

// Options configures rasterization.
type Options struct {
	// Size is the output edge length in pixels.
	Size int

	// Supersample renders at Size*Supersample and downscales with a
	// Catmull-Rom kernel. 0 and 1 both mean off.
	Supersample int

	// Smooth applies a Gaussian blur with the given sigma after rendering.
	// 0 means off.
	Smooth float32

	// Contrast adjusts contrast by the given percentage in (-100, 100].
	// 0 means off.
	Contrast float32
}

func (o Options) validate() error {
	if o.Size <= 0 {
		return fmt.Errorf("render: size must be positive, got %d", o.Size)
	}
	if o.Supersample < 0 || o.Supersample > 8 {
		return fmt.Errorf("render: supersample must be within [0,8], got %d", o.Supersample)
	}
	if o.Smooth < 0 {
		return fmt.Errorf("render: smooth sigma must be non-negative, got %v", o.Smooth)
	}
	if o.Contrast <= -100 || o.Contrast > 100 {
		return fmt.Errorf("render: contrast must be within (-100,100], got %v", o.Contrast)
	}
	return nil
}

// Tile renders the field over the window [minU, minV, maxU, maxV] into a
// square grayscale image. Pixels are sampled at their centers and values
// mapped from [-1,1] to [0,255], so the output is a pure function of the
// field and options.
func Tile(f Field, window [4]float64, opts Options) (*image.Gray, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	renderSize := opts.Size
	if opts.Supersample > 1 {
		renderSize *= opts.Supersample
	}

	img := image.NewGray(image.Rect(0, 0, renderSize, renderSize))
	du := (window[2] - window[0]) / float64(renderSize)
	dv := (window[3] - window[1]) / float64(renderSize)

	for py := 0; py < renderSize; py++ {
		v := window[1] + (float64(py)+0.5)*dv
		row := img.Pix[py*img.Stride : py*img.Stride+renderSize]
		for px := 0; px < renderSize; px++ {
			u := window[0] + (float64(px)+0.5)*du
			row[px] = grayValue(f.Sample2(u, v))
		}
	}

	if opts.Supersample > 1 {
		small := image.NewGray(image.Rect(0, 0, opts.Size, opts.Size))
		xdraw.CatmullRom.Scale(small, small.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = small
	}

	if filters := postFilters(opts); len(filters) > 0 {
		g := gift.New(filters...)
		dst := image.NewGray(g.Bounds(img.Bounds()))
		g.Draw(dst, img)
		img = dst
	}

	return img, nil
}

func postFilters(opts Options) []gift.Filter {
	var filters []gift.Filter
	if opts.Smooth > 0 {
		filters = append(filters, gift.GaussianBlur(opts.Smooth))
	}
	if opts.Contrast != 0 {
		filters = append(filters, gift.Contrast(opts.Contrast))
	}
	return filters
}

// grayValue maps a sample in [-1,1] to a pixel value, clamping the rare
// excursions outside the nominal range.
func grayValue(v float64) uint8 {
	scaled := (v + 1) * 0.5 * 255
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
