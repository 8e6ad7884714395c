package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/venicegeo/geojson-go/geojson"
	"github.com/viventriglia/vesuvius-sentinel/model"
	"github.com/viventriglia/vesuvius-sentinel/util"
)

// downloadPermission is the permission a scene must carry for the broker to
// surface it in search results
const downloadPermission = "assets:download"

func parseSearchResults(context *Context, body []byte) ([]model.SceneSearchResult, error) {
	catalogFeatureCollection, err := rawBytesToFeatureCollection(context, body)
	if err != nil {
		return nil, err
	}

	var rawResults searchResults
	if err = json.Unmarshal(body, &rawResults); err != nil {
		return nil, util.LogSimpleErr(context, "Failed to parse search result permissions.", err)
	}

	results := make([]model.SceneSearchResult, 0, len(catalogFeatureCollection.Features))
	for i, feature := range catalogFeatureCollection.Features {
		// Suppress scenes the API key has no download rights to
		if !disablePermissionsCheck && i < len(rawResults.Features) &&
			!scontains(rawResults.Features[i].Permissions, downloadPermission) {
			continue
		}
		result, err := sceneSearchResultFromFeature(feature)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	return results, nil
}

func rawBytesToFeatureCollection(context *Context, body []byte) (*geojson.FeatureCollection, error) {
	var (
		catalogFeatureCollection *geojson.FeatureCollection
		geoJSONParsedData        interface{}
		ok                       bool
		err                      error
	)
	if geoJSONParsedData, err = geojson.Parse(body); err != nil {
		err = util.LogSimpleErr(context, fmt.Sprintf("Failed to parse GeoJSON.\n%v", string(body)), err)
		return nil, err
	}

	if catalogFeatureCollection, ok = geoJSONParsedData.(*geojson.FeatureCollection); !ok {
		ctErr := util.Error{SimpleMsg: fmt.Sprintf("Expected a FeatureCollection and got %T", geoJSONParsedData), Response: string(body)}
		err = ctErr.Log(context, "")
		return nil, err
	}

	return catalogFeatureCollection, nil
}

// acquiredTime recovers a scene's acquisition time, preferring the upstream
// generation timestamp in epoch milliseconds over the string datetime forms
func acquiredTime(feature *geojson.Feature) (time.Time, error) {
	if millis, ok := feature.Properties["acquired_ms"].(float64); ok {
		return model.TimeFromEpochMillis(int64(millis)), nil
	}
	return model.ParseSceneTime(feature.PropertyString("acquired"))
}

func acquiredDateString(feature *geojson.Feature) string {
	acquired, err := acquiredTime(feature)
	if err != nil {
		return feature.PropertyString("acquired")
	}
	return acquired.Format(model.SceneTimeFormat)
}

// cloudCoverPercent normalizes the upstream cloud_cover fraction to a
// percentage. Scenes that do not report one read as -1.
func cloudCoverPercent(feature *geojson.Feature) float64 {
	cloudCover := feature.PropertyFloat("cloud_cover")
	if math.IsNaN(cloudCover) {
		return -1
	}
	return cloudCover * 100
}

func sceneSearchResultFromFeature(feature *geojson.Feature) (*model.SceneSearchResult, error) {
	acquiredDate, err := acquiredTime(feature)
	if err != nil {
		return nil, err
	}
	cloudCover := cloudCoverPercent(feature)

	fileFormat := model.GeoTIFF
	if isSentinelFeature(feature.IDStr()) {
		fileFormat = model.JPEG2000
	}

	basicSceneResult := model.BasicSceneResult{
		AcquiredDate: acquiredDate,
		CloudCover:   cloudCover,
		FileFormat:   fileFormat,
		Geometry:     feature.Geometry,
		ID:           feature.IDStr(),
		Resolution:   feature.PropertyFloat("gsd"),
		SensorName:   feature.PropertyString("satellite_id"),
	}

	return &model.SceneSearchResult{BasicSceneResult: basicSceneResult}, nil
}
