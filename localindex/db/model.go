package db

import (
	"time"

	"github.com/venicegeo/geojson-go/geojson"
)

// IndexedScene is one row of the local Sentinel-2 scene index
type IndexedScene struct {
	ProductID       string
	AcquisitionDate time.Time
	CloudCover      float64
	MGRSTile        string
	SceneURLString  string
	Bounds          *geojson.Polygon
}
