package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	_ "image/jpeg" // frame decoding

	"github.com/varley/smartcam/internal/camera"
)

const (
	// Grid resolution for the luma downsample. Coarse on purpose:
	// sensor noise averages out within a cell, while anything worth
	// alerting on spans several cells.
	gridW = 64
	gridH = 48

	// pixelDelta is how far a cell's average luma must move between
	// consecutive frames before the cell counts as changed.
	pixelDelta = 16
)

// DiffAnalyzer flags motion by differencing consecutive frames. Each
// frame is reduced to a coarse grid of average luma values; motion is
// declared when the fraction of cells that changed since the previous
// frame reaches minArea.
type DiffAnalyzer struct {
	minArea float64
	prev    []uint8
}

// NewDiffAnalyzer creates an analyzer that declares motion when at
// least minArea (a fraction in (0,1]) of the view changed.
func NewDiffAnalyzer(minArea float64) *DiffAnalyzer {
	return &DiffAnalyzer{minArea: minArea}
}

// Analyze decodes the frame and compares it to the previous one.
// The first frame primes the baseline and never reports motion; a
// resolution change re-primes it.
func (a *DiffAnalyzer) Analyze(frame *camera.Frame) (bool, error) {
	img, _, err := image.Decode(bytes.NewReader(frame.Data))
	if err != nil {
		return false, fmt.Errorf("decode frame: %w", err)
	}

	grid := lumaGrid(img)
	if len(grid) == 0 {
		return false, fmt.Errorf("empty frame")
	}
	if len(a.prev) != len(grid) {
		a.prev = grid
		return false, nil
	}

	changed := 0
	for i := range grid {
		d := int(grid[i]) - int(a.prev[i])
		if d < 0 {
			d = -d
		}
		if d > pixelDelta {
			changed++
		}
	}
	a.prev = grid

	return float64(changed)/float64(len(grid)) >= a.minArea, nil
}

// lumaGrid downsamples the image to a grid of average luma values.
// Images smaller than the grid get one cell per pixel.
func lumaGrid(img image.Image) []uint8 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	gw, gh := gridW, gridH
	if w < gw {
		gw = w
	}
	if h < gh {
		gh = h
	}
	if gw == 0 || gh == 0 {
		return nil
	}

	luma := lumaFunc(img)
	grid := make([]uint8, gw*gh)
	for cy := 0; cy < gh; cy++ {
		y0 := b.Min.Y + cy*h/gh
		y1 := b.Min.Y + (cy+1)*h/gh
		for cx := 0; cx < gw; cx++ {
			x0 := b.Min.X + cx*w/gw
			x1 := b.Min.X + (cx+1)*w/gw
			sum, n := 0, 0
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					sum += int(luma(x, y))
					n++
				}
			}
			grid[cy*gw+cx] = uint8(sum / n)
		}
	}
	return grid
}

// lumaFunc returns a per-pixel luma reader with fast paths for the
// image types the JPEG decoder actually produces.
func lumaFunc(img image.Image) func(x, y int) uint8 {
	switch m := img.(type) {
	case *image.YCbCr:
		return func(x, y int) uint8 { return m.Y[m.YOffset(x, y)] }
	case *image.Gray:
		return func(x, y int) uint8 { return m.Pix[m.PixOffset(x, y)] }
	default:
		return func(x, y int) uint8 {
			return color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
		}
	}
}
