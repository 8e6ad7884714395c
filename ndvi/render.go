package ndvi

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strings"
)

// DefaultPalette is the white-to-green vegetation ramp used when no palette
// is requested
var DefaultPalette = []color.RGBA{
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	{R: 0x00, G: 0x64, B: 0x00, A: 0xff},
}

// ParsePalette converts hex color stops ("ffffff" or "#006400") into a
// render palette
func ParsePalette(stops []string) ([]color.RGBA, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("A palette needs at least 2 color stops, got %d", len(stops))
	}
	palette := make([]color.RGBA, len(stops))
	for i, stop := range stops {
		hexStr := strings.TrimPrefix(strings.TrimSpace(stop), "#")
		if len(hexStr) != 6 {
			return nil, fmt.Errorf("Invalid palette color: %q", stop)
		}
		var r, g, b uint8
		if _, err := fmt.Sscanf(hexStr, "%02x%02x%02x", &r, &g, &b); err != nil {
			return nil, fmt.Errorf("Invalid palette color %q: %v", stop, err)
		}
		palette[i] = color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	return palette, nil
}

// Render maps an index grid in [-1,1] onto a palette ramp, producing a
// display image. NaN pixels render transparent.
func Render(grid Grid, palette []color.RGBA) (*image.RGBA, error) {
	width, height := grid.Dimensions()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("Cannot render an empty grid")
	}
	if len(palette) < 2 {
		palette = DefaultPalette
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y, row := range grid {
		for x, value := range row {
			if math.IsNaN(value) {
				continue // zero value is already transparent
			}
			img.SetRGBA(x, y, interpolate(palette, (value+1)/2))
		}
	}
	return img, nil
}

// EncodePNG writes a rendered index image as PNG
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// interpolate picks the ramp color for a position in [0,1]
func interpolate(palette []color.RGBA, position float64) color.RGBA {
	position = math.Max(0, math.Min(1, position))
	scaled := position * float64(len(palette)-1)
	lower := int(math.Floor(scaled))
	if lower >= len(palette)-1 {
		return palette[len(palette)-1]
	}
	upper := lower + 1
	frac := scaled - float64(lower)

	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*frac))
	}
	return color.RGBA{
		R: lerp(palette[lower].R, palette[upper].R),
		G: lerp(palette[lower].G, palette[upper].G),
		B: lerp(palette[lower].B, palette[upper].B),
		A: 0xff,
	}
}
