// Package heatmap turns vehicle records into a weighted point layer.
package heatmap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jengzang/fleetmap-backend-go/internal/fleet"
	"github.com/jengzang/fleetmap-backend-go/internal/intensity"
	"github.com/jengzang/fleetmap-backend-go/internal/jitter"
	"github.com/jengzang/fleetmap-backend-go/internal/models"
	"github.com/jengzang/fleetmap-backend-go/internal/stats"
)

// LayerID identifies the fleet heat layer on the client
const LayerID = "fleet-heatmap"

// ErrUnknownLevel is returned for an aggregation level other than city, state or grid
var ErrUnknownLevel = errors.New("unknown aggregation level")

// DefaultColorRange runs from pale yellow to deep red
var DefaultColorRange = [][3]uint8{
	{255, 255, 178},
	{254, 217, 118},
	{254, 178, 76},
	{253, 141, 60},
	{240, 59, 32},
	{189, 0, 38},
}

// LayerStyle is the presentation part of a point layer
type LayerStyle struct {
	RadiusPixels int        `validate:"gt=0"`
	ColorRange   [][3]uint8 `validate:"min=2"`
}

// DefaultLayerStyle returns a 40px radius with DefaultColorRange
func DefaultLayerStyle() LayerStyle {
	return LayerStyle{RadiusPixels: 40, ColorRange: DefaultColorRange}
}

// Bins holds the aggregation for one level; only the field for that level
// is set.
type Bins struct {
	Level    string               `json:"level"`
	Location []models.LocationBin `json:"location,omitempty"`
	State    []models.StateBin    `json:"state,omitempty"`
	Grid     []models.GridBin     `json:"grid,omitempty"`
	Dropped  models.DropStats     `json:"dropped"`
}

type site struct {
	lat, lng float64
	count    int
}

// Builder composes aggregation, normalization and jitter
type Builder struct {
	aggregator *fleet.Aggregator
	jitter     *jitter.Generator
	style      LayerStyle
}

// NewBuilder creates a new builder
func NewBuilder(aggregator *fleet.Aggregator, gen *jitter.Generator, style LayerStyle) *Builder {
	if style.RadiusPixels <= 0 {
		style.RadiusPixels = DefaultLayerStyle().RadiusPixels
	}
	if len(style.ColorRange) == 0 {
		style.ColorRange = DefaultColorRange
	}
	return &Builder{aggregator: aggregator, jitter: gen, style: style}
}

// Level normalizes a requested level; empty means city.
func Level(level string) (string, error) {
	switch l := strings.ToLower(strings.TrimSpace(level)); l {
	case "":
		return models.LevelCity, nil
	case models.LevelCity, models.LevelState, models.LevelGrid:
		return l, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}
}

// DefaultScale is linear for city and grid and logarithmic for state,
// where a few large states would otherwise wash out the rest.
func DefaultScale(level string) intensity.Scale {
	if level == models.LevelState {
		return intensity.Logarithmic
	}
	return intensity.Linear
}

// Aggregate bins records at the filter's level. The state filter is applied
// here so codes and full names match alike.
func (b *Builder) Aggregate(records []models.VehicleRecord, filter models.FleetFilter) (Bins, error) {
	level, err := Level(filter.Level)
	if err != nil {
		return Bins{}, err
	}
	records = b.aggregator.FilterState(records, filter.State)

	out := Bins{Level: level}
	switch level {
	case models.LevelState:
		res := b.aggregator.ByState(records)
		out.State, out.Dropped = res.Bins, res.Dropped
	case models.LevelGrid:
		res := b.aggregator.ByLocation(records)
		out.Grid = fleet.ByGrid(res.Bins, filter.Precision)
		out.Dropped = res.Dropped
	default:
		res := b.aggregator.ByLocation(records)
		out.Location, out.Dropped = res.Bins, res.Dropped
	}
	return out, nil
}

// Build produces the point layer and its summary. The layer is nil when
// there is nothing to draw.
func (b *Builder) Build(records []models.VehicleRecord, filter models.FleetFilter) (*models.PointLayer, models.HeatmapSummary, error) {
	bins, err := b.Aggregate(records, filter)
	if err != nil {
		return nil, models.HeatmapSummary{}, err
	}
	scale, err := intensity.ParseScale(filter.Scale, DefaultScale(bins.Level))
	if err != nil {
		return nil, models.HeatmapSummary{}, err
	}

	sites := sitesOf(bins)
	counts := make([]int, len(sites))
	summary := models.HeatmapSummary{
		Level:   bins.Level,
		Scale:   string(scale),
		Bins:    len(sites),
		Dropped: bins.Dropped,
	}
	for i, s := range sites {
		counts[i] = s.count
		summary.TotalVehicles += s.count
	}

	summary.Distribution = stats.Describe(counts)

	norm := intensity.NewNormalizer(scale, counts)
	if len(sites) > 0 {
		summary.MinValue, summary.MaxValue = norm.Min, norm.Max
	}

	var data []models.PointDatum
	for _, s := range sites {
		for _, p := range b.jitter.Sample(s.lat, s.lng, norm.Weight(s.count)) {
			data = append(data, models.PointDatum{Position: [2]float64{p.Lng, p.Lat}, Weight: p.Weight})
		}
	}
	summary.Points = len(data)

	if len(data) == 0 {
		return nil, summary, nil
	}
	return &models.PointLayer{
		ID:           LayerID,
		Data:         data,
		RadiusPixels: b.style.RadiusPixels,
		ColorRange:   b.style.ColorRange,
		Aggregation:  "SUM",
	}, summary, nil
}

func sitesOf(bins Bins) []site {
	var sites []site
	switch bins.Level {
	case models.LevelState:
		for _, b := range bins.State {
			sites = append(sites, site{lat: b.Lat, lng: b.Lng, count: b.TotalVehicles})
		}
	case models.LevelGrid:
		for _, b := range bins.Grid {
			sites = append(sites, site{lat: b.Lat, lng: b.Lng, count: b.TotalVehicles})
		}
	default:
		for _, b := range bins.Location {
			sites = append(sites, site{lat: b.Lat, lng: b.Lng, count: b.TotalVehicles})
		}
	}
	return sites
}
