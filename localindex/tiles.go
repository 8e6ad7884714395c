package localindex

import (
	"database/sql"
	"net/url"

	"github.com/viventriglia/vesuvius-sentinel/localindex/db"
)

// previewFileName is the reduced-resolution true-color render present in
// every Sentinel-2 tile folder
const previewFileName = "preview.jpg"

func getPreviewURLForSceneID(tx *sql.Tx, sceneID string) (*url.URL, error) {
	scene, err := db.GetSceneByID(tx, sceneID)
	if err != nil {
		return nil, err
	}

	sceneURL, err := url.Parse(scene.SceneURLString)
	if err != nil {
		return nil, err
	}
	previewURL, _ := url.Parse("./" + previewFileName)
	return sceneURL.ResolveReference(previewURL), nil
}
