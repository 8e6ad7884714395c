package model

import (
	"time"

	"github.com/venicegeo/geojson-go/geojson"
)

// BasicSceneResult holds the fields common to all broker single results
type BasicSceneResult struct {
	ID           string
	Geometry     interface{}
	CloudCover   float64
	Resolution   float64
	AcquiredDate time.Time
	SensorName   string
	FileFormat   SceneFileFormat
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (sr BasicSceneResult) GeoJSONFeature() (*geojson.Feature, error) {
	f := geojson.NewFeature(sr.Geometry, sr.ID, map[string]interface{}{
		"cloudCover":   sr.CloudCover,
		"resolution":   sr.Resolution,
		"acquiredDate": sr.AcquiredDate.Format(SceneTimeFormat),
		"sensorName":   sr.SensorName,
		"fileFormat":   string(sr.FileFormat),
	})
	f.Bbox = f.ForceBbox()
	return f, nil
}

// SceneSearchResult contains a barebones broker search result -- basic
// data, plus optional weather data
type SceneSearchResult struct {
	BasicSceneResult
	*WeatherData
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (result SceneSearchResult) GeoJSONFeature() (*geojson.Feature, error) {
	feature, err := result.BasicSceneResult.GeoJSONFeature()
	if err != nil {
		return nil, err
	}

	if result.WeatherData != nil {
		if err = result.WeatherData.Apply(feature); err != nil {
			return nil, err
		}
	}

	return feature, nil
}

// SentinelSceneResult represents a catalog result referencing the external
// Sentinel-2 S3 archive for its band imagery
type SentinelSceneResult struct {
	BasicSceneResult
	SentinelS3Bands
	*WeatherData
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (result SentinelSceneResult) GeoJSONFeature() (*geojson.Feature, error) {
	feature, err := result.BasicSceneResult.GeoJSONFeature()
	if err != nil {
		return nil, err
	}

	if err = result.SentinelS3Bands.Apply(feature); err != nil {
		return nil, err
	}

	if result.WeatherData != nil {
		if err = result.WeatherData.Apply(feature); err != nil {
			return nil, err
		}
	}

	return feature, nil
}

// IndexedSceneResult represents a local-index result containing Sentinel-2
// data served from the broker's own scene database
type IndexedSceneResult struct {
	BasicSceneResult
	SentinelS3Bands
	*WeatherData
	*NDVIStatistics
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (result IndexedSceneResult) GeoJSONFeature() (*geojson.Feature, error) {
	feature, err := result.BasicSceneResult.GeoJSONFeature()
	if err != nil {
		return nil, err
	}

	if err = result.SentinelS3Bands.Apply(feature); err != nil {
		return nil, err
	}

	if result.WeatherData != nil {
		if err = result.WeatherData.Apply(feature); err != nil {
			return nil, err
		}
	}

	if result.NDVIStatistics != nil {
		if err = result.NDVIStatistics.Apply(feature); err != nil {
			return nil, err
		}
	}

	return feature, nil
}

// MultiSceneResult is a container type for bundling multiple results
// together, e.g. as results from a discovery endpoint
type MultiSceneResult struct {
	FeatureCreators []GeoJSONFeatureCreator
}

// GeoJSONFeatureCollection implements the GeoJSONFeatureCollectionCreator interface
func (result MultiSceneResult) GeoJSONFeatureCollection() (*geojson.FeatureCollection, error) {
	var err error
	features := make([]*geojson.Feature, len(result.FeatureCreators))
	for i, creator := range result.FeatureCreators {
		features[i], err = creator.GeoJSONFeature()
		if err != nil {
			return nil, err
		}
	}

	return geojson.NewFeatureCollection(features), nil
}
