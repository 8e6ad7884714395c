// Package mosaic assembles scene previews into a single labeled contact
// sheet image.
package mosaic

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Cell is one tile of the contact sheet: a rendered preview plus the
// caption drawn beneath it
type Cell struct {
	Image image.Image
	Label string
}

// Options control the contact sheet layout
type Options struct {
	Columns    int
	CellWidth  int
	CellHeight int
	Margin     int
	Background color.Color
	LabelColor color.Color
}

const labelBandHeight = 16

// DefaultOptions returns the layout used for scene report figures
func DefaultOptions() Options {
	return Options{
		Columns:    3,
		CellWidth:  256,
		CellHeight: 256,
		Margin:     8,
		Background: color.White,
		LabelColor: color.Black,
	}
}

func (o Options) validate() error {
	if o.Columns <= 0 {
		return fmt.Errorf("column count must be positive, got %d", o.Columns)
	}
	if o.CellWidth <= 0 || o.CellHeight <= 0 {
		return fmt.Errorf("cell dimensions must be positive, got %dx%d", o.CellWidth, o.CellHeight)
	}
	if o.Margin < 0 {
		return fmt.Errorf("margin may not be negative, got %d", o.Margin)
	}
	return nil
}

// Compose lays the cells out row by row into a single image. Each cell's
// preview is scaled to fit the cell box, preserving aspect ratio, with its
// label drawn in the band below.
func Compose(cells []Cell, options Options) (*image.RGBA, error) {
	if len(cells) == 0 {
		return nil, errors.New("no cells to compose")
	}
	if err := options.validate(); err != nil {
		return nil, err
	}

	columns := options.Columns
	if len(cells) < columns {
		columns = len(cells)
	}
	rows := (len(cells) + columns - 1) / columns

	cellOuterWidth := options.CellWidth + options.Margin
	cellOuterHeight := options.CellHeight + labelBandHeight + options.Margin
	totalWidth := columns*cellOuterWidth + options.Margin
	totalHeight := rows*cellOuterHeight + options.Margin

	sheet := image.NewRGBA(image.Rect(0, 0, totalWidth, totalHeight))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(options.Background), image.Point{}, draw.Src)

	for i, cell := range cells {
		column := i % columns
		row := i / columns
		originX := options.Margin + column*cellOuterWidth
		originY := options.Margin + row*cellOuterHeight

		if cell.Image != nil {
			target := fitRect(cell.Image.Bounds(), image.Rect(originX, originY, originX+options.CellWidth, originY+options.CellHeight))
			draw.ApproxBiLinear.Scale(sheet, target, cell.Image, cell.Image.Bounds(), draw.Over, nil)
		}
		if cell.Label != "" {
			drawLabel(sheet, cell.Label, originX, originY+options.CellHeight, options.CellWidth, options.LabelColor)
		}
	}

	return sheet, nil
}

// WritePNG encodes the contact sheet as PNG
func WritePNG(w io.Writer, sheet *image.RGBA) error {
	if sheet == nil {
		return errors.New("no contact sheet to encode")
	}
	return png.Encode(w, sheet)
}

// fitRect scales source proportionally to the largest rectangle that fits
// inside box, centered
func fitRect(source, box image.Rectangle) image.Rectangle {
	sourceWidth, sourceHeight := source.Dx(), source.Dy()
	boxWidth, boxHeight := box.Dx(), box.Dy()
	if sourceWidth == 0 || sourceHeight == 0 {
		return box
	}

	width := boxWidth
	height := sourceHeight * boxWidth / sourceWidth
	if height > boxHeight {
		height = boxHeight
		width = sourceWidth * boxHeight / sourceHeight
	}

	offsetX := box.Min.X + (boxWidth-width)/2
	offsetY := box.Min.Y + (boxHeight-height)/2
	return image.Rect(offsetX, offsetY, offsetX+width, offsetY+height)
}

func drawLabel(sheet *image.RGBA, label string, x, y, maxWidth int, labelColor color.Color) {
	face := basicfont.Face7x13
	label = truncateLabel(label, maxWidth/face.Advance)

	drawer := font.Drawer{
		Dst:  sheet,
		Src:  image.NewUniform(labelColor),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	drawer.DrawString(label)
}

// truncateLabel limits a caption to maxChars characters without splitting a
// multi-byte rune
func truncateLabel(label string, maxChars int) string {
	if maxChars <= 0 {
		return label
	}
	runes := []rune(label)
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars])
}
