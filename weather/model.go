package weather

import (
	"time"

	"github.com/google/uuid"
	"github.com/venicegeo/geojson-go/geojson"
	"github.com/viventriglia/vesuvius-sentinel/model"
)

// Context is the context for a weather service operation
type Context struct {
	WeatherURL string
	sessionID  string
}

// AppName returns the name of this application
func (c *Context) AppName() string {
	return "vesuvius-sentinel"
}

// SessionID returns a Session ID, creating one if needed
func (c *Context) SessionID() string {
	if c.sessionID == "" {
		c.sessionID = uuid.NewString()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *Context) LogRootDir() string {
	return ""
}

// InputLocation is one point-in-time location a weather lookup is requested for
type InputLocation struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Dtg string  `json:"dtg"`
}

// Input is the weather service request body
type Input struct {
	Locations []InputLocation `json:"locations"`
}

// OutputData is the conditions block of one weather service result
type OutputData struct {
	TemperatureC    float64 `json:"temperatureCelsius"`
	PrecipitationMM float64 `json:"precipitationMillimeters"`
	CloudOpacity    float64 `json:"cloudOpacity"`
}

// OutputLocation is one location of the weather service response
type OutputLocation struct {
	Lat     float64    `json:"lat"`
	Lon     float64    `json:"lon"`
	Dtg     string     `json:"dtg"`
	Results OutputData `json:"results"`
}

// Output is the weather service response body
type Output struct {
	Locations []OutputLocation `json:"locations"`
}

// InputLocationForFeature builds the weather lookup location for a scene
// feature from its footprint centroid and acquisition time
func InputLocationForFeature(feature *geojson.Feature, acquiredDate time.Time) InputLocation {
	center := feature.ForceBbox().Centroid()
	return InputLocation{
		Lon: center.Coordinates[0],
		Lat: center.Coordinates[1],
		Dtg: acquiredDate.Format("2006-01-02-15-04"),
	}
}

// InputForBasicSceneResults builds one weather request covering all of the
// given scene results
func InputForBasicSceneResults(results []model.BasicSceneResult) (*Input, error) {
	locations := make([]InputLocation, len(results))
	for i, result := range results {
		feature, err := result.GeoJSONFeature()
		if err != nil {
			return nil, err
		}
		locations[i] = InputLocationForFeature(feature, result.AcquiredDate)
	}
	return &Input{Locations: locations}, nil
}

// OutputToWeatherData flattens a weather response into per-scene mixins
func OutputToWeatherData(output Output) []model.WeatherData {
	weatherData := make([]model.WeatherData, len(output.Locations))
	for i, location := range output.Locations {
		weatherData[i] = model.WeatherData{
			TemperatureC:    location.Results.TemperatureC,
			PrecipitationMM: location.Results.PrecipitationMM,
			CloudOpacity:    location.Results.CloudOpacity,
		}
	}
	return weatherData
}
