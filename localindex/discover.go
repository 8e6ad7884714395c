package localindex

import (
	"database/sql"
	"time"

	"github.com/venicegeo/geojson-go/geojson"
	"github.com/viventriglia/vesuvius-sentinel/localindex/db"
	"github.com/viventriglia/vesuvius-sentinel/model"
	"github.com/viventriglia/vesuvius-sentinel/weather"
)

func discoverScenes(tx *sql.Tx, ctx Context, bbox geojson.BoundingBox,
	maxCloudCover float64, minAcquiredDate time.Time, maxAcquiredDate time.Time, withWeather bool) (model.GeoJSONFeatureCollectionCreator, error) {
	scenes, err := db.SearchScenes(tx, bbox, maxCloudCover, minAcquiredDate, maxAcquiredDate)
	if err != nil {
		return nil, err
	}

	searchResults := make([]model.SceneSearchResult, len(scenes))
	for i, scene := range scenes {
		searchResults[i] = sceneSearchResultFromIndexedScene(scene)
	}

	if withWeather {
		weatherContext := &weather.Context{WeatherURL: ctx.BaseWeatherURL}
		if err = weather.AddWeatherToSearchResults(weatherContext, searchResults); err != nil {
			return nil, err
		}
	}

	multiResult := model.MultiSceneResult{
		FeatureCreators: make([]model.GeoJSONFeatureCreator, len(searchResults)),
	}

	for i, result := range searchResults {
		if multiResult.FeatureCreators[i], err = indexedSceneResultFromSearchResult(result, scenes[i].SceneURLString); err != nil {
			return nil, err
		}
	}

	return multiResult, nil
}
