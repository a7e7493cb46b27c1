// Package gazetteer resolves place names to coordinates from closed, static
// tables. It never geocodes and never touches the network: a place that is not
// in the tables does not resolve.
package gazetteer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
	"github.com/jengzang/fleetmap-backend-go/internal/spatial"
)

// ErrInvalidTable is returned when a gazetteer table is inconsistent
var ErrInvalidTable = errors.New("invalid gazetteer table")

// StateEntry is one row of the state centroid table. Centroid may be omitted,
// in which case the centroid of the state's cities is used.
type StateEntry struct {
	Code     string             `yaml:"code" validate:"required,len=2"`
	Name     string             `yaml:"name" validate:"required"`
	Centroid *models.Coordinate `yaml:"centroid,omitempty"`
}

// CityEntry is one row of the city gazetteer. State may be a code or a full name.
type CityEntry struct {
	City  string  `yaml:"city" validate:"required"`
	State string  `yaml:"state" validate:"required"`
	Lat   float64 `yaml:"lat" validate:"gte=-90,lte=90"`
	Lng   float64 `yaml:"lng" validate:"gte=-180,lte=180"`
}

// Tables is the configuration data behind a Gazetteer
type Tables struct {
	States []StateEntry `yaml:"states" validate:"dive"`
	Cities []CityEntry  `yaml:"cities" validate:"dive"`
}

// Gazetteer is a read-only lookup built once from Tables. It is safe for
// concurrent use.
type Gazetteer struct {
	codes  map[string]string            // normalized code or name -> code
	states map[string]models.Coordinate // code -> centroid
	names  map[string]string            // code -> display name
	cities map[string]models.Coordinate // "city,CODE" -> coordinate
}

// New builds a Gazetteer from tables
func New(t Tables) (*Gazetteer, error) {
	g := &Gazetteer{
		codes:  make(map[string]string, len(t.States)*2),
		states: make(map[string]models.Coordinate, len(t.States)),
		names:  make(map[string]string, len(t.States)),
		cities: make(map[string]models.Coordinate, len(t.Cities)),
	}

	for _, s := range t.States {
		code := strings.ToUpper(strings.TrimSpace(s.Code))
		if code == "" {
			return nil, fmt.Errorf("%w: state %q has no code", ErrInvalidTable, s.Name)
		}
		g.codes[normalize(code)] = code
		g.codes[normalize(s.Name)] = code
		g.names[code] = s.Name
		if s.Centroid != nil {
			if !spatial.ValidCoordinate(s.Centroid.Lat, s.Centroid.Lng) {
				return nil, fmt.Errorf("%w: state %s centroid out of range", ErrInvalidTable, code)
			}
			g.states[code] = *s.Centroid
		}
	}

	byState := make(map[string][]models.Coordinate)
	for _, c := range t.Cities {
		code, ok := g.codes[normalize(c.State)]
		if !ok {
			return nil, fmt.Errorf("%w: city %q references unknown state %q", ErrInvalidTable, c.City, c.State)
		}
		if !spatial.ValidCoordinate(c.Lat, c.Lng) {
			return nil, fmt.Errorf("%w: city %q coordinate out of range", ErrInvalidTable, c.City)
		}
		coord := models.Coordinate{Lat: c.Lat, Lng: c.Lng}
		g.cities[cityKey(c.City, code)] = coord
		byState[code] = append(byState[code], coord)
	}

	// States without an explicit centroid fall back to the mean of their cities
	for code := range g.names {
		if _, ok := g.states[code]; ok {
			continue
		}
		if pts := byState[code]; len(pts) > 0 {
			g.states[code] = spatial.Centroid(pts)
		}
	}

	return g, nil
}

// Resolve looks up a (city, state) pair. Unknown pairs return false.
func (g *Gazetteer) Resolve(city, state string) (models.Coordinate, bool) {
	code, ok := g.CanonicalState(state)
	if !ok {
		return models.Coordinate{}, false
	}
	c, ok := g.cities[cityKey(city, code)]
	return c, ok
}

// StateCentroid returns the representative coordinate of a state given its
// code or full name.
func (g *Gazetteer) StateCentroid(state string) (models.Coordinate, bool) {
	code, ok := g.CanonicalState(state)
	if !ok {
		return models.Coordinate{}, false
	}
	c, ok := g.states[code]
	return c, ok
}

// CanonicalState maps a state code or name to its two-letter code
func (g *Gazetteer) CanonicalState(state string) (string, bool) {
	code, ok := g.codes[normalize(state)]
	return code, ok
}

// StateName returns the display name for a state code
func (g *Gazetteer) StateName(code string) string {
	return g.names[strings.ToUpper(code)]
}

// Len returns the number of cities and states in the gazetteer
func (g *Gazetteer) Len() (cities, states int) {
	return len(g.cities), len(g.states)
}

func cityKey(city, code string) string {
	return normalize(city) + "," + code
}

// normalize folds case and collapses whitespace
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
