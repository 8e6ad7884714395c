package localindex

import (
	"github.com/viventriglia/vesuvius-sentinel/localindex/db"
	"github.com/viventriglia/vesuvius-sentinel/model"
)

func sceneSearchResultFromIndexedScene(scene db.IndexedScene) model.SceneSearchResult {
	return model.SceneSearchResult{
		BasicSceneResult: model.BasicSceneResult{
			ID:       scene.ProductID,
			Geometry: scene.Bounds,
			// Stored as a 0-1 fraction, reported as percent like the catalog results
			CloudCover:   scene.CloudCover * 100,
			Resolution:   sentinelResolutionMeters,
			AcquiredDate: scene.AcquisitionDate,
			SensorName:   sensorNameForProductID(scene.ProductID),
			FileFormat:   model.JPEG2000,
		},
	}
}

func indexedSceneResultFromSearchResult(result model.SceneSearchResult, sceneURL string) (model.IndexedSceneResult, error) {
	bands, err := model.NewSentinelS3Bands(sceneURL)
	if err != nil {
		return model.IndexedSceneResult{}, err
	}

	return model.IndexedSceneResult{
		BasicSceneResult: result.BasicSceneResult,
		SentinelS3Bands:  *bands,
		WeatherData:      result.WeatherData,
	}, nil
}

// sentinelResolutionMeters is the ground sample distance of the visible and
// NIR Sentinel-2 bands
const sentinelResolutionMeters = 10

func sensorNameForProductID(productID string) string {
	if len(productID) >= 3 {
		switch productID[:3] {
		case "S2A":
			return "Sentinel-2A"
		case "S2B":
			return "Sentinel-2B"
		}
	}
	return "Sentinel-2"
}
