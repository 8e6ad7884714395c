package catalog

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/venicegeo/geojson-go/geojson"
	"github.com/viventriglia/vesuvius-sentinel/model"
	"github.com/viventriglia/vesuvius-sentinel/util"
	"github.com/viventriglia/vesuvius-sentinel/weather"
)

var addWeatherToSearchResults = weather.AddWeatherToSearchResults

// GetScenes returns a FeatureCollection containing the scenes requested
func GetScenes(options SearchOptions, context *Context) (*geojson.FeatureCollection, error) {
	var (
		err          error
		response     *http.Response
		requestBody  []byte
		responseBody []byte
		req          request
	)

	req.ItemTypes = append(req.ItemTypes, options.ItemType)
	req.Filter.Type = "AndFilter"
	req.Filter.Config = make([]interface{}, 0)
	if options.Point != nil {
		aoi, err := BufferPoint(options.Point, options.RadiusMeters)
		if err != nil {
			return nil, util.LogSimpleErr(context, "Failed to buffer the search point into an AOI.", err)
		}
		req.Filter.Config = append(req.Filter.Config, objectFilter{Type: "GeometryFilter", FieldName: "geometry", Config: aoi})
	} else if options.Bbox != nil {
		req.Filter.Config = append(req.Filter.Config, objectFilter{Type: "GeometryFilter", FieldName: "geometry", Config: options.Bbox.Polygon()})
	}
	if options.AcquiredDate != "" || options.MaxAcquiredDate != "" {
		dc := dateConfig{GTE: options.AcquiredDate, LTE: options.MaxAcquiredDate}
		req.Filter.Config = append(req.Filter.Config, objectFilter{Type: "DateRangeFilter", FieldName: "acquired", Config: dc})
	}
	if options.CloudCover > 0 {
		cc := rangeConfig{LTE: options.CloudCover}
		req.Filter.Config = append(req.Filter.Config, objectFilter{Type: "RangeFilter", FieldName: "cloud_cover", Config: cc})
	}
	if requestBody, err = json.Marshal(req); err != nil {
		err = util.LogSimpleErr(context, fmt.Sprintf("Failed to marshal request object %#v.", req), err)
		return nil, err
	}
	if response, err = catalogRequest(catalogRequestInput{method: "POST", inputURL: "catalog/v1/quick-search", body: requestBody, contentType: "application/json"}, context); err != nil {
		err = util.LogSimpleErr(context, fmt.Sprintf("Failed to complete catalog API request %#v.", string(requestBody)), err)
		return nil, err
	}
	switch {
	case (response.StatusCode >= 400) && (response.StatusCode < 500):
		message := fmt.Sprintf("Failed to discover scenes from the catalog API: %v. ", response.Status)
		err := util.HTTPErr{Status: response.StatusCode, Message: message}
		util.LogAlert(context, message)
		return nil, err
	case response.StatusCode >= 500:
		err = util.LogSimpleErr(context, "Failed to discover scenes from the catalog API.", errors.New(response.Status))
		return nil, err
	default:
		//no op
	}

	defer response.Body.Close()
	responseBody, _ = ioutil.ReadAll(response.Body)

	results, err := parseSearchResults(context, responseBody)
	if err != nil {
		return nil, err
	}
	if options.Weather {
		weatherContext := weather.Context{WeatherURL: context.BaseWeatherURL}
		if err = addWeatherToSearchResults(&weatherContext, results); err != nil {
			return nil, err
		}
	}

	featureCreators := make([]model.GeoJSONFeatureCreator, len(results))
	for i, result := range results {
		featureCreators[i] = result
	}

	return model.MultiSceneResult{FeatureCreators: featureCreators}.GeoJSONFeatureCollection()
}

// GetSceneMetadata returns the broker metadata for a single scene
func GetSceneMetadata(options MetadataOptions, context *Context) (*geojson.Feature, error) {
	var (
		response *http.Response
		err      error
		body     []byte
		feature  geojson.Feature
	)
	inputURL := "catalog/v1/item-types/" + options.ItemType + "/items/" + options.ID
	input := catalogRequestInput{method: "GET", inputURL: inputURL}
	if response, err = catalogRequest(input, context); err != nil {
		return nil, err
	}
	defer response.Body.Close()
	body, _ = ioutil.ReadAll(response.Body)
	switch {
	case (response.StatusCode >= 400) && (response.StatusCode < 500):
		message := fmt.Sprintf("Failed to find metadata for scene %v: %v. ", options.ID, response.Status)
		err := util.HTTPErr{Status: response.StatusCode, Message: message}
		util.LogAlert(context, message)
		return nil, err
	case response.StatusCode >= 500:
		err = util.LogSimpleErr(context, fmt.Sprintf("Failed to retrieve metadata for scene %v. ", options.ID), errors.New(response.Status))
		return nil, err
	default:
		//no op
	}
	if err = json.Unmarshal(body, &feature); err != nil {
		ctErr := util.Error{LogMsg: "Failed to Unmarshal response from the catalog API item request: " + err.Error(),
			SimpleMsg:  "The scene catalog returned an unexpected response for this request. See log for further details.",
			Response:   string(body),
			URL:        inputURL,
			HTTPStatus: response.StatusCode}
		err = ctErr.Log(context, "")
		return nil, err
	}

	feature = *transformSearchFeature(&feature, context)
	if options.Weather {
		wc := weather.Context{WeatherURL: context.BaseWeatherURL}
		fc := geojson.NewFeatureCollection([]*geojson.Feature{&feature})
		if fc, err = weather.GetWeather(fc, &wc); err != nil {
			return nil, err
		}
		feature = *fc.Features[0]
	}

	return &feature, nil
}

// catalogRequest performs the request
func catalogRequest(input catalogRequestInput, context *Context) (*http.Response, error) {
	var (
		request   *http.Request
		parsedURL *url.URL
		inputURL  string
		err       error
	)
	inputURL = input.inputURL
	if !strings.Contains(inputURL, context.BaseCatalogURL) {
		baseURL, _ := url.Parse(context.BaseCatalogURL)
		parsedRelativeURL, _ := url.Parse(input.inputURL)
		resolvedURL := baseURL.ResolveReference(parsedRelativeURL)

		if parsedURL, err = url.Parse(resolvedURL.String()); err != nil {
			err = util.LogSimpleErr(context, fmt.Sprintf("Failed to parse %v into a URL.", resolvedURL.String()), err)
			return nil, err
		}
		inputURL = parsedURL.String()
	}
	message := "Requesting data from the scene catalog"
	bodyStr := string(input.body)
	if bodyStr != "" {
		message += ": " + bodyStr
	}
	if request, err = http.NewRequest(input.method, inputURL, bytes.NewBuffer(input.body)); err != nil {
		err = util.LogSimpleErr(context, fmt.Sprintf("Failed to make a new HTTP request for %v.", inputURL), err)
		return nil, err
	}
	if input.contentType != "" {
		request.Header.Set("Content-Type", input.contentType)
	}

	request.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(context.CatalogKey+":")))
	util.LogAudit(context, util.LogAuditInput{Actor: "catalog/doRequest", Action: input.method, Actee: inputURL, Message: message, Severity: util.INFO})
	util.LogAudit(context, util.LogAuditInput{Actor: inputURL, Action: input.method + " response", Actee: "catalog/doRequest", Message: "Receiving data from the scene catalog", Severity: util.INFO})
	return util.HTTPClient().Do(request)
}

func scontains(input []string, check string) bool {
	for _, curr := range input {
		if curr == check {
			return true
		}
	}
	return false
}

// transformSearchFeature normalizes one upstream feature into the broker's
// property vocabulary
func transformSearchFeature(feature *geojson.Feature, context util.LogContext) *geojson.Feature {
	properties := make(map[string]interface{})
	properties["cloudCover"] = cloudCoverPercent(feature)
	id := feature.IDStr()
	properties["resolution"], _ = feature.Properties["gsd"].(float64)
	properties["acquiredDate"] = acquiredDateString(feature)
	properties["fileFormat"] = "geotiff"
	properties["sensorName"], _ = feature.Properties["satellite_id"].(string)

	if isSentinelFeature(id) {
		properties["fileFormat"] = "jpeg2000"
		err := addSentinelS3BandsToProperties(id, &properties)
		if err != nil {
			util.LogAlert(context, err.Error()+" :: in Sentinel-2 feature: "+feature.String())
		}
	}

	result := geojson.NewFeature(feature.Geometry, id, properties)
	result.Bbox = result.ForceBbox()
	return result
}
