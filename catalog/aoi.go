package catalog

import (
	"fmt"
	"math"

	"github.com/venicegeo/geojson-go/geojson"
)

const metersPerDegreeLat = 111320.0

// bufferSegments is the number of vertices used to approximate a circular AOI
const bufferSegments = 32

// BufferPoint approximates the circular buffer of radiusMeters around a
// lon/lat point as a closed GeoJSON polygon ring. Longitude spacing shrinks
// with latitude; near the poles the buffer degenerates and is rejected.
func BufferPoint(point *geojson.Point, radiusMeters float64) (*geojson.Polygon, error) {
	if point == nil || len(point.Coordinates) < 2 {
		return nil, fmt.Errorf("A lon/lat point is required to buffer")
	}
	if radiusMeters <= 0 {
		return nil, fmt.Errorf("Buffer radius must be positive, got %v", radiusMeters)
	}

	lon := point.Coordinates[0]
	lat := point.Coordinates[1]
	if math.Abs(lat) > 89 {
		return nil, fmt.Errorf("Cannot buffer a point at latitude %v", lat)
	}

	dLat := radiusMeters / metersPerDegreeLat
	dLon := radiusMeters / (metersPerDegreeLat * math.Cos(lat*math.Pi/180))

	ring := make([][]float64, 0, bufferSegments+1)
	for i := 0; i < bufferSegments; i++ {
		theta := 2 * math.Pi * float64(i) / bufferSegments
		ring = append(ring, []float64{
			lon + dLon*math.Cos(theta),
			lat + dLat*math.Sin(theta),
		})
	}
	// Close the ring
	ring = append(ring, append([]float64{}, ring[0]...))

	return geojson.NewPolygon([][][]float64{ring}), nil
}
