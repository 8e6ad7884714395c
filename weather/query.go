package weather

import (
	"fmt"

	"github.com/venicegeo/geojson-go/geojson"
	"github.com/viventriglia/vesuvius-sentinel/model"
	"github.com/viventriglia/vesuvius-sentinel/util"
)

var httpRequestKnownJSONWithObject = util.ReqByObjJSON

// QueryMultipleWeather retrieves acquisition-time conditions for a batch of
// locations from the weather service
func QueryMultipleWeather(context *Context, input Input) (*Output, error) {
	var out Output

	util.LogAudit(context, util.LogAuditInput{
		Actor: "anon user", Action: "POST", Actee: context.WeatherURL, Message: "Requesting weather information", Severity: util.INFO,
	})
	if _, err := httpRequestKnownJSONWithObject("POST", context.WeatherURL, "", input, &out); err != nil {
		return nil, err
	}
	util.LogAudit(context, util.LogAuditInput{
		Actor: context.WeatherURL, Action: "POST response", Actee: "anon user", Message: "Retrieving weather information", Severity: util.INFO,
	})

	return &out, nil
}

// AddWeatherToSearchResults does an *in-place* modification of the input
// scene search results to augment them with weather data
func AddWeatherToSearchResults(context *Context, results []model.SceneSearchResult) error {
	basicResults := make([]model.BasicSceneResult, len(results))
	for i, result := range results {
		basicResults[i] = result.BasicSceneResult
	}

	input, err := InputForBasicSceneResults(basicResults)
	if err != nil {
		return err
	}

	output, err := QueryMultipleWeather(context, *input)
	if err != nil {
		return err
	}

	weatherDataArr := OutputToWeatherData(*output)
	if len(weatherDataArr) != len(results) {
		return fmt.Errorf("Length mismatch between weather output and input data;\ninput(len:%d)=%v\noutput(len:%d)=%v",
			len(input.Locations), input, len(output.Locations), output,
		)
	}

	for i := range results {
		results[i].WeatherData = &weatherDataArr[i]
	}

	return nil
}

// GetWeather augments every feature of a broker FeatureCollection with
// acquisition-time weather properties
func GetWeather(fc *geojson.FeatureCollection, context *Context) (*geojson.FeatureCollection, error) {
	input := Input{Locations: make([]InputLocation, len(fc.Features))}
	for i, feature := range fc.Features {
		acquired, err := model.ParseSceneTime(feature.PropertyString("acquiredDate"))
		if err != nil {
			return nil, err
		}
		input.Locations[i] = InputLocationForFeature(feature, acquired)
	}

	output, err := QueryMultipleWeather(context, input)
	if err != nil {
		return nil, err
	}

	weatherDataArr := OutputToWeatherData(*output)
	if len(weatherDataArr) != len(fc.Features) {
		return nil, fmt.Errorf("Length mismatch between weather output and features: %d != %d",
			len(weatherDataArr), len(fc.Features))
	}

	for i, feature := range fc.Features {
		if err = weatherDataArr[i].Apply(feature); err != nil {
			return nil, err
		}
	}

	return fc, nil
}

// GetSingleWeatherData retrieves the weather mixin for one scene result
func GetSingleWeatherData(context *Context, target model.BasicSceneResult) (*model.WeatherData, error) {
	input, err := InputForBasicSceneResults([]model.BasicSceneResult{target})
	if err != nil {
		return nil, err
	}

	output, err := QueryMultipleWeather(context, *input)
	if err != nil {
		return nil, err
	}
	if len(output.Locations) != 1 {
		return nil, fmt.Errorf("Expected exactly one weather result, got %d", len(output.Locations))
	}

	weatherData := OutputToWeatherData(*output)[0]
	return &weatherData, nil
}
