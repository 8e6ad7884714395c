package model

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/venicegeo/geojson-go/geojson"
)

// SentinelS3Bands is a mixin containing per-band JP2 URLs for a Sentinel-2
// scene hosted on the public S3 archive
type SentinelS3Bands struct {
	Coastal    url.URL
	Blue       url.URL
	Green      url.URL
	Red        url.URL
	RedEdge1   url.URL
	RedEdge2   url.URL
	RedEdge3   url.URL
	NIR        url.URL
	NarrowNIR  url.URL
	WaterVapor url.URL
	Cirrus     url.URL
	SWIR1      url.URL
	SWIR2      url.URL
}

type sentinelBandDestination struct {
	Filename    string
	Destination *url.URL
}

// NewSentinelS3Bands builds the band URL set for a scene from the URL of its
// tile folder in the Sentinel-2 archive bucket
func NewSentinelS3Bands(tileFolderURL string) (*SentinelS3Bands, error) {
	baseURL, err := url.Parse(tileFolderURL)
	if baseURL == nil || baseURL.String() == "" {
		err = errors.New("No base Sentinel S3 tile folder could be parsed")
	}
	if err != nil {
		return nil, err
	}

	bands := SentinelS3Bands{}

	destinations := []sentinelBandDestination{
		{"B01.jp2", &bands.Coastal},
		{"B02.jp2", &bands.Blue},
		{"B03.jp2", &bands.Green},
		{"B04.jp2", &bands.Red},
		{"B05.jp2", &bands.RedEdge1},
		{"B06.jp2", &bands.RedEdge2},
		{"B07.jp2", &bands.RedEdge3},
		{"B08.jp2", &bands.NIR},
		{"B8A.jp2", &bands.NarrowNIR},
		{"B09.jp2", &bands.WaterVapor},
		{"B10.jp2", &bands.Cirrus},
		{"B11.jp2", &bands.SWIR1},
		{"B12.jp2", &bands.SWIR2},
	}

	for _, dest := range destinations {
		fileURL, _ := url.Parse("./" + dest.Filename)
		*dest.Destination = *baseURL.ResolveReference(fileURL)
	}

	return &bands, nil
}

// Map returns the band name to URL mapping in the shape used for the
// "bands" feature property
func (ssb SentinelS3Bands) Map() map[string]string {
	return map[string]string{
		"coastal":    ssb.Coastal.String(),
		"blue":       ssb.Blue.String(),
		"green":      ssb.Green.String(),
		"red":        ssb.Red.String(),
		"rededge1":   ssb.RedEdge1.String(),
		"rededge2":   ssb.RedEdge2.String(),
		"rededge3":   ssb.RedEdge3.String(),
		"nir":        ssb.NIR.String(),
		"narrownir":  ssb.NarrowNIR.String(),
		"watervapor": ssb.WaterVapor.String(),
		"cirrus":     ssb.Cirrus.String(),
		"swir1":      ssb.SWIR1.String(),
		"swir2":      ssb.SWIR2.String(),
	}
}

// Apply implements the GeoJSONFeatureMixin interface
func (ssb SentinelS3Bands) Apply(feature *geojson.Feature) error {
	feature.Properties["bands"] = ssb.Map()
	return nil
}

// WeatherData is a mixin containing acquisition-time weather conditions for
// a scene, retrieved from the weather service
type WeatherData struct {
	TemperatureC    float64
	PrecipitationMM float64
	CloudOpacity    float64
}

// Apply implements the GeoJSONFeatureMixin interface
func (wd WeatherData) Apply(feature *geojson.Feature) error {
	feature.Properties["temperatureCelsius"] = wd.TemperatureC
	feature.Properties["precipitationMillimeters"] = wd.PrecipitationMM
	feature.Properties["cloudOpacity"] = wd.CloudOpacity
	return nil
}

// NDVIStatistics is a mixin containing summary statistics of a scene's
// computed NDVI raster
type NDVIStatistics struct {
	Min  float64
	Max  float64
	Mean float64
}

// Apply implements the GeoJSONFeatureMixin interface
func (ns NDVIStatistics) Apply(feature *geojson.Feature) error {
	if ns.Min > ns.Max {
		return fmt.Errorf("Invalid NDVI statistics: min %v exceeds max %v", ns.Min, ns.Max)
	}
	feature.Properties["ndviMin"] = ns.Min
	feature.Properties["ndviMax"] = ns.Max
	feature.Properties["ndviMean"] = ns.Mean
	return nil
}
