package ndvi

import (
	"fmt"
	"image"
	"io"

	// Raster inputs arrive as PNG thumbnails or GeoTIFF band files
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
)

// Grid is a row-major raster of reflectance-like values
type Grid [][]float64

// DecodeRaster reads a band raster (PNG, JPEG or TIFF) into a grid of values
// normalized to [0,1]
func DecodeRaster(r io.Reader) (Grid, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("Could not decode band raster: %v", err)
	}
	return GridFromImage(img), nil
}

// GridFromImage converts a decoded image into a value grid. Single-band
// renders are grayscale, so the red channel carries the band value.
func GridFromImage(img image.Image) Grid {
	bounds := img.Bounds()
	grid := make(Grid, bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := make([]float64, bounds.Dx())
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			value, _, _, _ := img.At(x, y).RGBA()
			row[x-bounds.Min.X] = float64(value) / 0xffff
		}
		grid[y-bounds.Min.Y] = row
	}
	return grid
}

// Dimensions returns the width and height of the grid
func (g Grid) Dimensions() (width, height int) {
	height = len(g)
	if height > 0 {
		width = len(g[0])
	}
	return width, height
}
