package spatial

import (
	"github.com/jengzang/fleetmap-backend-go/internal/models"
)

// Centroid calculates the arithmetic centroid of a set of coordinates.
// Good enough for representative points of regions that do not cross the antimeridian.
func Centroid(points []models.Coordinate) models.Coordinate {
	if len(points) == 0 {
		return models.Coordinate{}
	}

	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}

	return models.Coordinate{
		Lat: sumLat / float64(len(points)),
		Lng: sumLng / float64(len(points)),
	}
}

// Bounds is a lat/lng bounding box
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MinLng float64 `json:"minLng"`
	MaxLat float64 `json:"maxLat"`
	MaxLng float64 `json:"maxLng"`
}

// BoundingBox calculates the bounding box of a set of paths.
// ok is false when there are no points.
func BoundingBox(paths []models.Path) (b Bounds, ok bool) {
	for _, path := range paths {
		for _, p := range path {
			if !ok {
				b = Bounds{MinLat: p.Lat, MinLng: p.Lng, MaxLat: p.Lat, MaxLng: p.Lng}
				ok = true
				continue
			}
			if p.Lat < b.MinLat {
				b.MinLat = p.Lat
			}
			if p.Lat > b.MaxLat {
				b.MaxLat = p.Lat
			}
			if p.Lng < b.MinLng {
				b.MinLng = p.Lng
			}
			if p.Lng > b.MaxLng {
				b.MaxLng = p.Lng
			}
		}
	}
	return b, ok
}

// PathLength calculates the total length of a path in meters
func PathLength(path models.Path) float64 {
	if len(path) < 2 {
		return 0
	}

	var total float64
	for i := 1; i < len(path); i++ {
		total += HaversineDistance(path[i-1].Lat, path[i-1].Lng, path[i].Lat, path[i].Lng)
	}
	return total
}
