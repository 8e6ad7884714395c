package weather

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/geojson-go/geojson"
	"github.com/viventriglia/vesuvius-sentinel/model"
)

var testFootprint = geojson.NewPolygon([][][]float64{[][]float64{
	[]float64{14.3, 40.7}, []float64{14.6, 40.7}, []float64{14.6, 40.95}, []float64{14.3, 40.95}, []float64{14.3, 40.7},
}})

func testSceneResult(id string) model.BasicSceneResult {
	return model.BasicSceneResult{
		ID:           id,
		Geometry:     testFootprint,
		CloudCover:   12.3,
		AcquiredDate: time.Date(2023, 7, 15, 9, 50, 0, 0, time.UTC),
		FileFormat:   model.JPEG2000,
		SensorName:   "Sentinel-2A",
	}
}

// mockWeatherServer echoes each requested location back with fixed conditions
func mockWeatherServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var input Input
		assert.Nil(t, json.NewDecoder(r.Body).Decode(&input))

		output := Output{}
		for _, location := range input.Locations {
			output.Locations = append(output.Locations, OutputLocation{
				Lat: location.Lat,
				Lon: location.Lon,
				Dtg: location.Dtg,
				Results: OutputData{
					TemperatureC:    25.5,
					PrecipitationMM: 0.2,
					CloudOpacity:    40,
				},
			})
		}
		json.NewEncoder(w).Encode(output)
	}))
}

func TestInputLocationForFeature_UsesCentroid(t *testing.T) {
	feature, err := testSceneResult("scene-1").GeoJSONFeature()
	assert.Nil(t, err)

	location := InputLocationForFeature(feature, time.Date(2023, 7, 15, 9, 50, 0, 0, time.UTC))

	assert.InDelta(t, 14.45, location.Lon, 1e-9)
	assert.InDelta(t, 40.825, location.Lat, 1e-9)
	assert.Equal(t, "2023-07-15-09-50", location.Dtg)
}

func TestAddWeatherToSearchResults(t *testing.T) {
	server := mockWeatherServer(t)
	defer server.Close()

	results := []model.SceneSearchResult{
		{BasicSceneResult: testSceneResult("scene-1")},
		{BasicSceneResult: testSceneResult("scene-2")},
	}

	err := AddWeatherToSearchResults(&Context{WeatherURL: server.URL}, results)

	assert.Nil(t, err)
	for _, result := range results {
		assert.NotNil(t, result.WeatherData)
		assert.Equal(t, 25.5, result.WeatherData.TemperatureC)
		assert.Equal(t, 0.2, result.WeatherData.PrecipitationMM)
		assert.Equal(t, 40.0, result.WeatherData.CloudOpacity)
	}
}

func TestAddWeatherToSearchResults_LengthMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Output{}) // always zero locations
	}))
	defer server.Close()

	results := []model.SceneSearchResult{{BasicSceneResult: testSceneResult("scene-1")}}

	err := AddWeatherToSearchResults(&Context{WeatherURL: server.URL}, results)
	assert.NotNil(t, err)
}

func TestGetSingleWeatherData(t *testing.T) {
	server := mockWeatherServer(t)
	defer server.Close()

	data, err := GetSingleWeatherData(&Context{WeatherURL: server.URL}, testSceneResult("scene-1"))

	assert.Nil(t, err)
	assert.NotNil(t, data)
	assert.Equal(t, 25.5, data.TemperatureC)
}

func TestGetWeather_AppliesProperties(t *testing.T) {
	server := mockWeatherServer(t)
	defer server.Close()

	feature, err := testSceneResult("scene-1").GeoJSONFeature()
	assert.Nil(t, err)
	fc := geojson.NewFeatureCollection([]*geojson.Feature{feature})

	fc, err = GetWeather(fc, &Context{WeatherURL: server.URL})

	assert.Nil(t, err)
	assert.Equal(t, 25.5, fc.Features[0].PropertyFloat("temperatureCelsius"))
	assert.Equal(t, 40.0, fc.Features[0].PropertyFloat("cloudOpacity"))
}

func TestQueryMultipleWeather_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := QueryMultipleWeather(&Context{WeatherURL: server.URL}, Input{})
	assert.NotNil(t, err)
}
