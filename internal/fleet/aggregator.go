// Package fleet groups vehicle records into location, state and grid bins.
package fleet

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
)

// UnclassifiedClass is the ByClass key used for records without a vehicle class
const UnclassifiedClass = "unclassified"

// Resolver resolves place names to coordinates
type Resolver interface {
	Resolve(city, state string) (models.Coordinate, bool)
	StateCentroid(state string) (models.Coordinate, bool)
	CanonicalState(state string) (string, bool)
}

// LocationResult is the outcome of ByLocation
type LocationResult struct {
	Bins    []models.LocationBin
	Dropped models.DropStats
}

// StateResult is the outcome of ByState
type StateResult struct {
	Bins    []models.StateBin
	Dropped models.DropStats
}

// Aggregator bins vehicle records. It holds no mutable state.
type Aggregator struct {
	resolver Resolver
	log      logrus.FieldLogger
}

// NewAggregator creates a new aggregator
func NewAggregator(resolver Resolver, log logrus.FieldLogger) *Aggregator {
	return &Aggregator{resolver: resolver, log: log}
}

// ByLocation groups records by resolvable (city, state). Records whose
// location is not in the gazetteer, or whose count is negative, are dropped
// and reported in Dropped. Bins are ordered by first appearance.
func (a *Aggregator) ByLocation(records []models.VehicleRecord) LocationResult {
	var res LocationResult
	index := make(map[string]int)

	for _, r := range records {
		if r.VehicleCount < 0 {
			res.Dropped.Records++
			continue
		}
		coord, ok := a.resolver.Resolve(r.City, r.State)
		if !ok {
			res.Dropped.Records++
			res.Dropped.Vehicles += r.VehicleCount
			continue
		}
		code, _ := a.resolver.CanonicalState(r.State)
		key := normalizeKey(r.City) + "," + code

		i, exists := index[key]
		if !exists {
			i = len(res.Bins)
			index[key] = i
			res.Bins = append(res.Bins, models.LocationBin{
				City:    r.City,
				State:   code,
				Lat:     coord.Lat,
				Lng:     coord.Lng,
				ByClass: make(map[string]int),
			})
		}
		bin := &res.Bins[i]
		bin.ByClass[classKey(r.VehicleClass)] += r.VehicleCount
		bin.TotalVehicles += r.VehicleCount
	}

	a.reportDrops("location", len(records), res.Dropped)
	return res
}

// ByState groups records by state, positioned at the state centroid. Bins
// carry the canonical two-letter code. Records with an unknown state are
// dropped.
func (a *Aggregator) ByState(records []models.VehicleRecord) StateResult {
	var res StateResult
	index := make(map[string]int)

	for _, r := range records {
		if r.VehicleCount < 0 {
			res.Dropped.Records++
			continue
		}
		code, ok := a.resolver.CanonicalState(r.State)
		if !ok {
			res.Dropped.Records++
			res.Dropped.Vehicles += r.VehicleCount
			continue
		}
		coord, ok := a.resolver.StateCentroid(code)
		if !ok {
			res.Dropped.Records++
			res.Dropped.Vehicles += r.VehicleCount
			continue
		}

		i, exists := index[code]
		if !exists {
			i = len(res.Bins)
			index[code] = i
			res.Bins = append(res.Bins, models.StateBin{State: code, Lat: coord.Lat, Lng: coord.Lng})
		}
		res.Bins[i].TotalVehicles += r.VehicleCount
	}

	a.reportDrops("state", len(records), res.Dropped)
	return res
}

// FilterState keeps records whose state matches state by code or name. An
// empty state keeps everything.
func (a *Aggregator) FilterState(records []models.VehicleRecord, state string) []models.VehicleRecord {
	if strings.TrimSpace(state) == "" {
		return records
	}
	want, ok := a.resolver.CanonicalState(state)
	if !ok {
		return nil
	}

	out := make([]models.VehicleRecord, 0, len(records))
	for _, r := range records {
		if code, ok := a.resolver.CanonicalState(r.State); ok && code == want {
			out = append(out, r)
		}
	}
	return out
}

func (a *Aggregator) reportDrops(level string, total int, d models.DropStats) {
	if d.Records == 0 || a.log == nil {
		return
	}
	a.log.WithFields(logrus.Fields{
		"level":            level,
		"records":          total,
		"dropped_records":  d.Records,
		"dropped_vehicles": d.Vehicles,
	}).Warn("records excluded from aggregation")
}

func classKey(class string) string {
	class = strings.TrimSpace(class)
	if class == "" {
		return UnclassifiedClass
	}
	return class
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
