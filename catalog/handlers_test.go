package catalog

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/viventriglia/vesuvius-sentinel/util"
)

func TestSearchOptionsFromRequest_PointAOI(t *testing.T) {
	r := httptest.NewRequest("GET", "/discover/Sentinel2L1C?lon=14.426&lat=40.822&radius=2500&cloudCover=20&weather=true", nil)
	r = mux.SetURLVars(r, map[string]string{"itemType": "Sentinel2L1C"})

	options, err := searchOptionsFromRequest(r)

	assert.Nil(t, err)
	assert.Equal(t, "Sentinel2L1C", options.ItemType)
	assert.NotNil(t, options.Point)
	assert.Equal(t, 2500.0, options.RadiusMeters)
	assert.InDelta(t, 0.2, options.CloudCover, 1e-9)
	assert.True(t, options.Weather)
}

func TestSearchOptionsFromRequest_DefaultRadius(t *testing.T) {
	r := httptest.NewRequest("GET", "/discover/Sentinel2L1C?lon=14.426&lat=40.822", nil)

	options, err := searchOptionsFromRequest(r)

	assert.Nil(t, err)
	assert.Equal(t, 1000.0, options.RadiusMeters)
}

func TestSearchOptionsFromRequest_Bbox(t *testing.T) {
	r := httptest.NewRequest("GET", "/discover/Sentinel2L1C?bbox=14.3,40.7,14.5,40.9", nil)

	options, err := searchOptionsFromRequest(r)

	assert.Nil(t, err)
	assert.Nil(t, options.Point)
	assert.Len(t, options.Bbox, 4)
}

func TestSearchOptionsFromRequest_Invalid(t *testing.T) {
	for _, query := range []string{
		"",
		"lon=fourteen&lat=40.822",
		"lon=14.426&lat=40.822&radius=-10",
		"lon=14.426&lat=40.822&cloudCover=cloudy",
		"bbox=not-a-bbox",
	} {
		r := httptest.NewRequest("GET", "/discover/Sentinel2L1C?"+query, nil)
		_, err := searchOptionsFromRequest(r)
		assert.NotNil(t, err, "expected an error for query %q", query)
	}
}

func TestVisParamsFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/thumb/Sentinel2L1C/x.png?bands=nir&width=256&height=256&min=0&max=10000&palette=ffffff,006400", nil)

	visParams, err := visParamsFromRequest(r)

	assert.Nil(t, err)
	assert.Equal(t, []string{"nir"}, visParams.Bands)
	assert.Equal(t, 256, visParams.Width)
	assert.Equal(t, 10000.0, visParams.Max)
	assert.Equal(t, []string{"ffffff", "006400"}, visParams.Palette)
}

func TestVisParamsFromRequest_Invalid(t *testing.T) {
	for _, query := range []string{
		"width=wide",
		"min=low",
		"bands=red,nir",
		"width=9999",
	} {
		r := httptest.NewRequest("GET", "/thumb/Sentinel2L1C/x.png?"+query, nil)
		_, err := visParamsFromRequest(r)
		assert.NotNil(t, err, "expected an error for query %q", query)
	}
}

func TestDiscoverHandler_BadRequest(t *testing.T) {
	handler := DiscoverHandler{Context: Context{}}
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/discover/Sentinel2L1C", nil)

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDiscoverHandler_ProxiesSearch(t *testing.T) {
	// Mock
	server := mockCatalogServer(t, nil)
	defer server.Close()

	savedCheck := disablePermissionsCheck
	disablePermissionsCheck = true
	defer func() { disablePermissionsCheck = savedCheck }()

	handler := DiscoverHandler{Context: Context{BaseCatalogURL: server.URL, CatalogKey: "dummy-key"}}
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/discover/Sentinel2L1C?lon=14.426&lat=40.822&radius=2500", nil)
	r = mux.SetURLVars(r, map[string]string{"itemType": "Sentinel2L1C"})

	// Tested code
	handler.ServeHTTP(w, r)

	// Asserts
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "FeatureCollection")
}

func TestHTTPStatusForError(t *testing.T) {
	assert.Equal(t, http.StatusBadGateway, httpStatusForError(util.HTTPErr{Status: http.StatusBadGateway}))
	assert.Equal(t, http.StatusInternalServerError, httpStatusForError(assert.AnError))
}
