package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/venicegeo/geojson-go/geojson"
)

const maxRenderDimension = 2048

// VisParams is the set of display options passed through to the upstream
// renderer: which bands to map to output channels, the value stretch, the
// output size, an optional color palette, and an optional crop region.
type VisParams struct {
	Bands   []string
	Min     float64
	Max     float64
	Width   int
	Height  int
	Palette []string
	Region  geojson.BoundingBox
}

// DefaultRGBVisParams returns the true-color render parameters used for
// Sentinel-2 previews
func DefaultRGBVisParams() VisParams {
	return VisParams{
		Bands:  []string{"red", "green", "blue"},
		Min:    0,
		Max:    3000,
		Width:  512,
		Height: 512,
	}
}

// Validate performs the local sanity checks; anything beyond this is the
// upstream renderer's to accept or reject
func (vp VisParams) Validate() error {
	if len(vp.Bands) != 1 && len(vp.Bands) != 3 {
		return fmt.Errorf("Band selection must name 1 or 3 bands, got %d", len(vp.Bands))
	}
	if vp.Min >= vp.Max {
		return fmt.Errorf("Stretch minimum %v must be below maximum %v", vp.Min, vp.Max)
	}
	if vp.Width <= 0 || vp.Height <= 0 {
		return fmt.Errorf("Output dimensions must be positive, got %dx%d", vp.Width, vp.Height)
	}
	if vp.Width > maxRenderDimension || vp.Height > maxRenderDimension {
		return fmt.Errorf("Output dimensions may not exceed %d, got %dx%d", maxRenderDimension, vp.Width, vp.Height)
	}
	return nil
}

// QueryValues encodes the parameters the way the upstream render endpoints
// expect them
func (vp VisParams) QueryValues() url.Values {
	values := url.Values{}
	values.Set("bands", strings.Join(vp.Bands, ","))
	values.Set("min", strconv.FormatFloat(vp.Min, 'f', -1, 64))
	values.Set("max", strconv.FormatFloat(vp.Max, 'f', -1, 64))
	values.Set("width", strconv.Itoa(vp.Width))
	values.Set("height", strconv.Itoa(vp.Height))
	if len(vp.Palette) > 0 {
		values.Set("palette", strings.Join(vp.Palette, ","))
	}
	if len(vp.Region) > 0 {
		values.Set("region", vp.Region.String())
	}
	return values
}
