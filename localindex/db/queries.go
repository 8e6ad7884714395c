package db

import (
	"database/sql"
	"time"

	"github.com/venicegeo/geojson-go/geojson"
)

// GetSceneByID returns the indexed scene with the given product ID, or
// sql.ErrNoRows when the index does not contain it
func GetSceneByID(tx *sql.Tx, productID string) (*IndexedScene, error) {
	var boundsBytes []byte
	scene := IndexedScene{}

	rows, err := tx.Query(`
		SELECT product_id, acquisition_date, cloud_cover, mgrs_tile, scene_url, ST_AsGeoJSON(bounds)
		FROM public.scenes
		WHERE product_id=$1
		LIMIT 1`,
		productID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, sql.ErrNoRows
	}

	err = rows.Scan(&scene.ProductID, &scene.AcquisitionDate, &scene.CloudCover, &scene.MGRSTile, &scene.SceneURLString, &boundsBytes)
	if err != nil {
		return nil, err
	}

	scene.Bounds, err = geojson.PolygonFromBytes(boundsBytes)
	if err != nil {
		return nil, err
	}

	return &scene, nil
}

// SearchScenes returns the indexed scenes intersecting the bounding box,
// filtered by cloud cover fraction and acquisition date range
func SearchScenes(tx *sql.Tx, bbox geojson.BoundingBox, maxCloudCover float64,
	minAcquiredDate time.Time, maxAcquiredDate time.Time) ([]IndexedScene, error) {
	rows, err := tx.Query(`
		SELECT product_id, acquisition_date, cloud_cover, mgrs_tile, scene_url, ST_AsGeoJSON(bounds)
		FROM public.scenes
		WHERE ST_Intersects(bounds, ST_MakeEnvelope($1, $2, $3, $4, 4326))
			AND cloud_cover <= $5
			AND acquisition_date >= $6
			AND acquisition_date <= $7
		ORDER BY acquisition_date`,
		bbox[0], bbox[1], bbox[2], bbox[3],
		maxCloudCover,
		minAcquiredDate, maxAcquiredDate,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scenes := []IndexedScene{}
	for rows.Next() {
		var boundsBytes []byte
		scene := IndexedScene{}
		if err = rows.Scan(&scene.ProductID, &scene.AcquisitionDate, &scene.CloudCover, &scene.MGRSTile, &scene.SceneURLString, &boundsBytes); err != nil {
			return nil, err
		}
		if scene.Bounds, err = geojson.PolygonFromBytes(boundsBytes); err != nil {
			return nil, err
		}
		scenes = append(scenes, scene)
	}

	return scenes, rows.Err()
}
