package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/geojson-go/geojson"
	"github.com/viventriglia/vesuvius-sentinel/model"
	"github.com/viventriglia/vesuvius-sentinel/util"
	"github.com/viventriglia/vesuvius-sentinel/weather"
)

const sampleSceneItemBody = `{
	"type": "Feature",
	"id": "S2A_MSIL1C_20230715T095031_N0509_R079_T33TVF_20230715T115052",
	"geometry": {"type": "Point", "coordinates": [14.426, 40.822]},
	"properties": {
		"acquired_ms": 1689414621024,
		"cloud_cover": 0.12,
		"gsd": 10,
		"satellite_id": "Sentinel-2A"
	}
}`

func mockCatalogServer(t *testing.T, capturedRequests *[]request) *httptest.Server {
	router := mux.NewRouter()
	router.HandleFunc("/catalog/v1/quick-search", func(w http.ResponseWriter, r *http.Request) {
		if capturedRequests != nil {
			var req request
			if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
				*capturedRequests = append(*capturedRequests, req)
			}
		}
		w.Write([]byte(sampleSearchResultsBody))
	})
	router.HandleFunc("/catalog/v1/item-types/{itemType}/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["id"] == "no-such-scene" {
			http.Error(w, "scene not found", http.StatusNotFound)
			return
		}
		w.Write([]byte(sampleSceneItemBody))
	})
	return httptest.NewServer(router)
}

func TestGetScenes_PointSearch(t *testing.T) {
	// Mock
	var capturedRequests []request
	server := mockCatalogServer(t, &capturedRequests)
	defer server.Close()

	savedCheck := disablePermissionsCheck
	disablePermissionsCheck = true
	defer func() { disablePermissionsCheck = savedCheck }()

	context := &Context{BaseCatalogURL: server.URL, CatalogKey: "dummy-key"}
	options := SearchOptions{
		ItemType:        "Sentinel2L1C",
		Point:           geojson.NewPoint([]float64{14.426, 40.822}),
		RadiusMeters:    2500,
		AcquiredDate:    "2023-07-01T00:00:00Z",
		MaxAcquiredDate: "2023-07-31T00:00:00Z",
		CloudCover:      0.2,
	}

	// Tested code
	featureCollection, err := GetScenes(options, context)

	// Asserts
	assert.Nil(t, err)
	assert.Len(t, featureCollection.Features, 2)
	assert.Equal(t, "S2A_MSIL1C_20230715T095031_N0509_R079_T33TVF_20230715T115052", featureCollection.Features[0].IDStr())

	assert.Len(t, capturedRequests, 1)
	sent := capturedRequests[0]
	assert.Equal(t, []string{"Sentinel2L1C"}, sent.ItemTypes)
	assert.Equal(t, "AndFilter", sent.Filter.Type)
	assert.Len(t, sent.Filter.Config, 3, "expected geometry, date range, and cloud cover filters")
}

func TestGetScenes_WeatherEnrichment(t *testing.T) {
	// Mock
	server := mockCatalogServer(t, nil)
	defer server.Close()

	savedCheck := disablePermissionsCheck
	disablePermissionsCheck = true
	defer func() { disablePermissionsCheck = savedCheck }()

	savedWeather := addWeatherToSearchResults
	defer func() { addWeatherToSearchResults = savedWeather }()
	addWeatherToSearchResults = func(context *weather.Context, results []model.SceneSearchResult) error {
		for i := range results {
			results[i].WeatherData = &model.WeatherData{TemperatureC: 28.5, CloudOpacity: 0.1}
		}
		return nil
	}

	context := &Context{BaseCatalogURL: server.URL, CatalogKey: "dummy-key"}
	options := SearchOptions{
		ItemType:     "Sentinel2L1C",
		Point:        geojson.NewPoint([]float64{14.426, 40.822}),
		RadiusMeters: 1000,
		Weather:      true,
	}

	// Tested code
	featureCollection, err := GetScenes(options, context)

	// Asserts
	assert.Nil(t, err)
	for _, feature := range featureCollection.Features {
		assert.Equal(t, 28.5, feature.Properties["temperatureCelsius"])
	}
}

func TestGetScenes_UpstreamClientError(t *testing.T) {
	// Mock
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad filter", http.StatusBadRequest)
	}))
	defer server.Close()

	context := &Context{BaseCatalogURL: server.URL, CatalogKey: "dummy-key"}
	options := SearchOptions{
		ItemType:     "Sentinel2L1C",
		Point:        geojson.NewPoint([]float64{14.426, 40.822}),
		RadiusMeters: 1000,
	}

	// Tested code
	_, err := GetScenes(options, context)

	// Asserts
	assert.NotNil(t, err)
	httpErr, ok := err.(util.HTTPErr)
	if assert.True(t, ok, "expected an HTTPErr, got %T", err) {
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	}
}

func TestGetSceneMetadata(t *testing.T) {
	// Mock
	server := mockCatalogServer(t, nil)
	defer server.Close()

	context := &Context{BaseCatalogURL: server.URL, CatalogKey: "dummy-key"}
	options := MetadataOptions{ID: goodSentinelID, ItemType: "Sentinel2L1C"}

	// Tested code
	feature, err := GetSceneMetadata(options, context)

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, goodSentinelID, feature.IDStr())
	assert.Equal(t, "2023-07-15T09:50:21.024", feature.Properties["acquiredDate"])
	assert.Equal(t, "jpeg2000", feature.Properties["fileFormat"])
	assert.Contains(t, feature.Properties, "bands")
}

func TestGetSceneMetadata_NotFound(t *testing.T) {
	// Mock
	server := mockCatalogServer(t, nil)
	defer server.Close()

	context := &Context{BaseCatalogURL: server.URL, CatalogKey: "dummy-key"}
	options := MetadataOptions{ID: "no-such-scene", ItemType: "Sentinel2L1C"}

	// Tested code
	_, err := GetSceneMetadata(options, context)

	// Asserts
	assert.NotNil(t, err)
	httpErr, ok := err.(util.HTTPErr)
	if assert.True(t, ok, "expected an HTTPErr, got %T", err) {
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	}
}
