package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
)

func TestCentroid(t *testing.T) {
	assert.Equal(t, models.Coordinate{}, Centroid(nil))

	c := Centroid([]models.Coordinate{{Lat: 30, Lng: -97}, {Lat: 32, Lng: -95}})
	assert.InDelta(t, 31.0, c.Lat, 1e-9)
	assert.InDelta(t, -96.0, c.Lng, 1e-9)
}

func TestBoundingBox(t *testing.T) {
	_, ok := BoundingBox(nil)
	assert.False(t, ok)

	b, ok := BoundingBox([]models.Path{
		{{Lat: 30.2, Lng: -97.1}, {Lat: 30.4, Lng: -97.3}},
		{{Lat: 29.0, Lng: -95.0}},
	})
	assert.True(t, ok)
	assert.Equal(t, Bounds{MinLat: 29.0, MinLng: -97.3, MaxLat: 30.4, MaxLng: -95.0}, b)
}

func TestPathLength(t *testing.T) {
	assert.Zero(t, PathLength(models.Path{{Lat: 1, Lng: 1}}))

	// one degree of latitude is roughly 111.2 km on a spherical earth
	got := PathLength(models.Path{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 0}})
	assert.InDelta(t, EarthRadiusMeters*math.Pi/180, got, 1)
}

func TestValidCoordinate(t *testing.T) {
	assert.True(t, ValidCoordinate(30.2, -97.1))
	assert.False(t, ValidCoordinate(95, 0))
	assert.False(t, ValidCoordinate(0, 190))
}
