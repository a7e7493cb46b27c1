package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
)

func TestSimplify(t *testing.T) {
	path := models.Path{
		{Lat: 0, Lng: 0},
		{Lat: 0.0001, Lng: 1},
		{Lat: 0, Lng: 2},
		{Lat: 1, Lng: 3},
	}

	out := Simplify([]models.Path{path}, 0.01)
	require.Len(t, out, 1)
	assert.Equal(t, models.Path{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 2}, {Lat: 1, Lng: 3}}, out[0])

	// the input is not modified
	assert.Len(t, path, 4)
}

func TestSimplify_NoTolerance(t *testing.T) {
	paths := []models.Path{{{Lat: 0, Lng: 0}, {Lat: 0.0001, Lng: 1}, {Lat: 0, Lng: 2}}}
	assert.Equal(t, paths, Simplify(paths, 0))
}

func TestSimplify_ShortPaths(t *testing.T) {
	paths := []models.Path{{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}}, {{Lat: 5, Lng: 5}}}
	assert.Equal(t, paths, Simplify(paths, 1))
}
