package localindex

import (
	"database/sql"

	"github.com/viventriglia/vesuvius-sentinel/localindex/db"
	"github.com/viventriglia/vesuvius-sentinel/model"
	"github.com/viventriglia/vesuvius-sentinel/weather"
)

func getMetadata(tx *sql.Tx, ctx Context, sceneID string, withWeather bool) (model.GeoJSONFeatureCreator, error) {
	scene, err := db.GetSceneByID(tx, sceneID)
	if err != nil {
		return nil, err
	}

	searchResult := sceneSearchResultFromIndexedScene(*scene)

	if withWeather {
		weatherContext := &weather.Context{WeatherURL: ctx.BaseWeatherURL}
		inPlaceEditableSearchResults := []model.SceneSearchResult{searchResult}
		if err = weather.AddWeatherToSearchResults(weatherContext, inPlaceEditableSearchResults); err == nil {
			searchResult = inPlaceEditableSearchResults[0]
		} else {
			return nil, err
		}
	}

	result, err := indexedSceneResultFromSearchResult(searchResult, scene.SceneURLString)
	if err != nil {
		return nil, err
	}

	return result, nil
}
