package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
)

// Simplify reduces each path with Douglas-Peucker. tolerance is in degrees;
// tolerance <= 0 returns paths unchanged. Endpoints are always kept.
func Simplify(paths []models.Path, tolerance float64) []models.Path {
	if tolerance <= 0 {
		return paths
	}

	s := simplify.DouglasPeucker(tolerance)
	out := make([]models.Path, 0, len(paths))
	for _, p := range paths {
		if len(p) < 3 {
			out = append(out, p)
			continue
		}
		ls, ok := s.Simplify(toLineString(p)).(orb.LineString)
		if !ok {
			out = append(out, p)
			continue
		}
		out = append(out, fromLineString(ls))
	}
	return out
}

func toLineString(p models.Path) orb.LineString {
	ls := make(orb.LineString, len(p))
	for i, c := range p {
		ls[i] = orb.Point{c.Lng, c.Lat}
	}
	return ls
}

func fromLineString(ls orb.LineString) models.Path {
	p := make(models.Path, len(ls))
	for i, pt := range ls {
		p[i] = models.Coordinate{Lat: pt.Lat(), Lng: pt.Lon()}
	}
	return p
}
