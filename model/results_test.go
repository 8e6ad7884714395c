package model

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/geojson-go/geojson"
)

// General test mocks and utils

var mockPolygon = geojson.NewPolygon([][][]float64{[][]float64{
	[]float64{14.3, 40.7}, []float64{14.6, 40.7}, []float64{14.6, 40.95}, []float64{14.3, 40.95}, []float64{14.3, 40.7},
}})

var mockBasicSceneResult = BasicSceneResult{
	AcquiredDate: time.Unix(123, 0),
	CloudCover:   50.123,
	FileFormat:   JPEG2000,
	Geometry:     mockPolygon,
	ID:           "test-id-123",
	Resolution:   10.123,
	SensorName:   "test-sensor",
}

var mockWeatherData = WeatherData{
	TemperatureC:    21.5,
	PrecipitationMM: 1.25,
	CloudOpacity:    33.3,
}

var mockNDVIStatistics = NDVIStatistics{
	Min:  -0.1,
	Max:  0.9,
	Mean: 0.42,
}

func mustMockSentinelBands(t *testing.T) SentinelS3Bands {
	bands, err := NewSentinelS3Bands("https://example.localdomain/tiles/33/T/VF/2023/7/15/0/")
	assert.Nil(t, err)
	return *bands
}

func assertFeatureContainsBasicSceneResult(t *testing.T, feature *geojson.Feature, result BasicSceneResult) {
	assert.Equal(t, result.ID, feature.IDStr())
	assert.Equal(t, result.SensorName, feature.PropertyString("sensorName"))
	assert.Equal(t, result.AcquiredDate.Format(SceneTimeFormat), feature.PropertyString("acquiredDate"))
	assert.Equal(t, result.CloudCover, feature.PropertyFloat("cloudCover"))
	assert.Equal(t, result.Resolution, feature.PropertyFloat("resolution"))
	assert.Equal(t, string(result.FileFormat), feature.PropertyString("fileFormat"))
}

func assertFeatureContainsWeatherData(t *testing.T, feature *geojson.Feature, weather WeatherData) {
	assert.Equal(t, weather.TemperatureC, feature.PropertyFloat("temperatureCelsius"))
	assert.Equal(t, weather.PrecipitationMM, feature.PropertyFloat("precipitationMillimeters"))
	assert.Equal(t, weather.CloudOpacity, feature.PropertyFloat("cloudOpacity"))
}

func assertFeatureContainsSentinelBands(t *testing.T, feature *geojson.Feature, bands SentinelS3Bands) {
	assert.IsType(t, map[string]string{}, feature.Properties["bands"])
	featureBands := feature.Properties["bands"].(map[string]string)

	assert.Equal(t, bands.Coastal.String(), featureBands["coastal"])
	assert.Equal(t, bands.Blue.String(), featureBands["blue"])
	assert.Equal(t, bands.Green.String(), featureBands["green"])
	assert.Equal(t, bands.Red.String(), featureBands["red"])
	assert.Equal(t, bands.RedEdge1.String(), featureBands["rededge1"])
	assert.Equal(t, bands.RedEdge2.String(), featureBands["rededge2"])
	assert.Equal(t, bands.RedEdge3.String(), featureBands["rededge3"])
	assert.Equal(t, bands.NIR.String(), featureBands["nir"])
	assert.Equal(t, bands.NarrowNIR.String(), featureBands["narrownir"])
	assert.Equal(t, bands.WaterVapor.String(), featureBands["watervapor"])
	assert.Equal(t, bands.Cirrus.String(), featureBands["cirrus"])
	assert.Equal(t, bands.SWIR1.String(), featureBands["swir1"])
	assert.Equal(t, bands.SWIR2.String(), featureBands["swir2"])
}

// Actual tests

func TestBasicSceneResult_GeoJSONFeature(t *testing.T) {
	// Mock
	result := mockBasicSceneResult

	// Tested code
	feature, err := result.GeoJSONFeature()

	// Asserts
	assert.Nil(t, err)
	assert.NotNil(t, feature)
	assertFeatureContainsBasicSceneResult(t, feature, mockBasicSceneResult)
	assert.Nil(t, feature.Bbox.Valid())
}

func TestSceneSearchResult_GeoJSONFeature_NoWeather(t *testing.T) {
	// Mock
	result := SceneSearchResult{BasicSceneResult: mockBasicSceneResult}

	// Tested code
	feature, err := result.GeoJSONFeature()

	// Asserts
	assert.Nil(t, err)
	assert.NotNil(t, feature)
	assertFeatureContainsBasicSceneResult(t, feature, mockBasicSceneResult)
	assert.Empty(t, feature.PropertyString("temperatureCelsius"))
	assert.Empty(t, feature.PropertyString("precipitationMillimeters"))
	assert.Empty(t, feature.PropertyString("cloudOpacity"))
}

func TestSceneSearchResult_GeoJSONFeature_WithWeather(t *testing.T) {
	// Mock
	result := SceneSearchResult{
		BasicSceneResult: mockBasicSceneResult,
		WeatherData:      &mockWeatherData,
	}

	// Tested code
	feature, err := result.GeoJSONFeature()

	// Asserts
	assert.Nil(t, err)
	assert.NotNil(t, feature)
	assertFeatureContainsBasicSceneResult(t, feature, mockBasicSceneResult)
	assertFeatureContainsWeatherData(t, feature, mockWeatherData)
}

func TestSentinelSceneResult_GeoJSONFeature(t *testing.T) {
	// Mock
	bands := mustMockSentinelBands(t)
	result := SentinelSceneResult{
		BasicSceneResult: mockBasicSceneResult,
		SentinelS3Bands:  bands,
	}

	// Tested code
	feature, err := result.GeoJSONFeature()

	// Asserts
	assert.Nil(t, err)
	assert.NotNil(t, feature)
	assertFeatureContainsBasicSceneResult(t, feature, mockBasicSceneResult)
	assertFeatureContainsSentinelBands(t, feature, bands)
}

func TestIndexedSceneResult_GeoJSONFeature_AllMixins(t *testing.T) {
	// Mock
	bands := mustMockSentinelBands(t)
	result := IndexedSceneResult{
		BasicSceneResult: mockBasicSceneResult,
		SentinelS3Bands:  bands,
		WeatherData:      &mockWeatherData,
		NDVIStatistics:   &mockNDVIStatistics,
	}

	// Tested code
	feature, err := result.GeoJSONFeature()

	// Asserts
	assert.Nil(t, err)
	assert.NotNil(t, feature)
	assertFeatureContainsBasicSceneResult(t, feature, mockBasicSceneResult)
	assertFeatureContainsSentinelBands(t, feature, bands)
	assertFeatureContainsWeatherData(t, feature, mockWeatherData)
	assert.Equal(t, mockNDVIStatistics.Mean, feature.PropertyFloat("ndviMean"))
}

func TestMultiSceneResult_GeoJSONFeatureCollection(t *testing.T) {
	// Mock
	multi := MultiSceneResult{
		FeatureCreators: []GeoJSONFeatureCreator{
			SceneSearchResult{BasicSceneResult: mockBasicSceneResult},
			SceneSearchResult{BasicSceneResult: mockBasicSceneResult, WeatherData: &mockWeatherData},
		},
	}

	// Tested code
	fc, err := multi.GeoJSONFeatureCollection()

	// Asserts
	assert.Nil(t, err)
	assert.NotNil(t, fc)
	assert.Len(t, fc.Features, 2)
	assertFeatureContainsWeatherData(t, fc.Features[1], mockWeatherData)
}

func TestNewSentinelS3Bands_BadURL(t *testing.T) {
	_, err := NewSentinelS3Bands("")
	assert.NotNil(t, err)
}

func TestNewSentinelS3Bands_ResolvesAgainstFolder(t *testing.T) {
	bands, err := NewSentinelS3Bands("https://example.localdomain/tiles/33/T/VF/2023/7/15/0/")
	assert.Nil(t, err)
	assert.Equal(t, url.URL{
		Scheme: "https",
		Host:   "example.localdomain",
		Path:   "/tiles/33/T/VF/2023/7/15/0/B08.jp2",
	}, bands.NIR)
	assert.Equal(t, "https://example.localdomain/tiles/33/T/VF/2023/7/15/0/B04.jp2", bands.Red.String())
}
