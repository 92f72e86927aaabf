// Package render turns automaton generations into pixels: still frames and
// space-time diagrams for files, and a GPU-backed painter for the viewer.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"cmr-ca/internal/core"
	"cmr-ca/internal/grid"
)

// ErrNotOneDimensional indicates a space-time diagram of a 2-D automaton.
var ErrNotOneDimensional = errors.New("space-time diagrams need a single row or column")

// Frame paints cells, laid out row-major in size, with each cell drawn as a
// scale x scale block.
func Frame(cells []uint8, size core.Size, palette []color.RGBA, scale int) (*image.RGBA, error) {
	if size.W <= 0 || size.H <= 0 {
		return nil, fmt.Errorf("frame of %dx%d", size.W, size.H)
	}
	if len(cells) != size.W*size.H {
		return nil, fmt.Errorf("frame of %dx%d needs %d cells, got %d", size.W, size.H, size.W*size.H, len(cells))
	}
	if scale <= 0 {
		scale = 1
	}
	buf := make([]byte, 4*len(cells))
	fillPaletteRGBA(buf, cells, palette)
	return upscale(buf, size.W, size.H, scale), nil
}

// Spacetime stacks every stored generation of a 1-D automaton into one
// image. A single-row automaton grows downwards, one row per generation; a
// single-column automaton grows to the right.
func Spacetime(r grid.Reader, palette []color.RGBA, scale int) (*image.RGBA, error) {
	rows, cols := r.Dimensions()
	if rows != 1 && cols != 1 {
		return nil, fmt.Errorf("%w: grid is %dx%d", ErrNotOneDimensional, rows, cols)
	}
	if scale <= 0 {
		scale = 1
	}
	n := r.Len()
	width := rows * cols
	cells := make([]uint8, 0, n*width)
	for i := 0; i < n; i++ {
		b, _ := r.Generation(i)
		cells = append(cells, b.Cells()...)
	}
	buf := make([]byte, 4*len(cells))
	fillPaletteRGBA(buf, cells, palette)
	img := upscale(buf, width, n, scale)
	if rows == 1 {
		return img, nil
	}
	return transpose(img), nil
}

// WritePNG encodes img to w.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func upscale(buf []byte, w, h, scale int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := buf[(y*w+x)*4 : (y*w+x)*4+4]
			for dy := 0; dy < scale; dy++ {
				row := img.PixOffset(x*scale, y*scale+dy)
				for dx := 0; dx < scale; dx++ {
					copy(img.Pix[row+dx*4:row+dx*4+4], src)
				}
			}
		}
	}
	return img
}

func transpose(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dy(), b.Dx()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			s := src.PixOffset(x, y)
			copy(dst.Pix[dst.PixOffset(y, x):dst.PixOffset(y, x)+4], src.Pix[s:s+4])
		}
	}
	return dst
}
