package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/geojson-go/geojson"
)

func TestDefaultRGBVisParams(t *testing.T) {
	vp := DefaultRGBVisParams()

	assert.Nil(t, vp.Validate())
	assert.Equal(t, []string{"red", "green", "blue"}, vp.Bands)
	assert.Equal(t, 512, vp.Width)
	assert.Equal(t, 512, vp.Height)
}

func TestVisParamsValidate(t *testing.T) {
	good := DefaultRGBVisParams()
	assert.Nil(t, good.Validate())

	singleBand := good
	singleBand.Bands = []string{"nir"}
	assert.Nil(t, singleBand.Validate())

	twoBands := good
	twoBands.Bands = []string{"red", "nir"}
	assert.NotNil(t, twoBands.Validate())

	noBands := good
	noBands.Bands = nil
	assert.NotNil(t, noBands.Validate())

	badStretch := good
	badStretch.Min = 3000
	badStretch.Max = 3000
	assert.NotNil(t, badStretch.Validate())

	zeroWidth := good
	zeroWidth.Width = 0
	assert.NotNil(t, zeroWidth.Validate())

	tooBig := good
	tooBig.Height = maxRenderDimension + 1
	assert.NotNil(t, tooBig.Validate())
}

func TestVisParamsQueryValues(t *testing.T) {
	vp := VisParams{
		Bands:   []string{"nir"},
		Min:     0,
		Max:     10000,
		Width:   256,
		Height:  128,
		Palette: []string{"ffffff", "006400"},
		Region:  geojson.BoundingBox{14.3, 40.7, 14.5, 40.9},
	}

	values := vp.QueryValues()

	assert.Equal(t, "nir", values.Get("bands"))
	assert.Equal(t, "0", values.Get("min"))
	assert.Equal(t, "10000", values.Get("max"))
	assert.Equal(t, "256", values.Get("width"))
	assert.Equal(t, "128", values.Get("height"))
	assert.Equal(t, "ffffff,006400", values.Get("palette"))
	assert.Equal(t, "14.3,40.7,14.5,40.9", values.Get("region"))
}

func TestVisParamsQueryValues_OptionalsOmitted(t *testing.T) {
	values := DefaultRGBVisParams().QueryValues()

	assert.Equal(t, "red,green,blue", values.Get("bands"))
	assert.Empty(t, values.Get("palette"))
	assert.Empty(t, values.Get("region"))
}
