// Package jitter expands a weighted bin into several nearby sample points so
// dense regions read as dense on a heatmap.
//
// Offsets come from a sine-based pseudo-random function seeded only by the
// bin's coordinates and the sample index. The same input always produces the
// same points, so re-rendering an unchanged selection does not flicker. The
// function is not random in any statistical or cryptographic sense and must
// not be used for anything but visual spreading.
package jitter

import (
	"math"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
)

// Config holds the visual tuning constants
type Config struct {
	// Density is the number of samples emitted at weight 1
	Density float64 `validate:"gt=0"`
	// Radius is the full width, in degrees, of the offset window
	Radius float64 `validate:"gte=0"`
	// WeightScale rescales [0,1] weights to the renderer's range
	WeightScale float64 `validate:"gt=0"`
}

// DefaultConfig returns the hand-tuned defaults: 8 samples at full weight,
// a 0.1 degree window and a 0-100 weight range.
func DefaultConfig() Config {
	return Config{Density: 8, Radius: 0.1, WeightScale: 100}
}

// Generator produces jittered sample points
type Generator struct {
	cfg Config
}

// New creates a Generator. A non-positive Density or WeightScale, or a negative
// Radius, falls back to DefaultConfig. A zero Radius disables offsets.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.Density <= 0 {
		cfg.Density = def.Density
	}
	if cfg.Radius < 0 {
		cfg.Radius = def.Radius
	}
	if cfg.WeightScale <= 0 {
		cfg.WeightScale = def.WeightScale
	}
	return &Generator{cfg: cfg}
}

// Config returns the effective configuration
func (g *Generator) Config() Config {
	return g.cfg
}

// PointCount returns max(1, round(weight*Density))
func (g *Generator) PointCount(weight float64) int {
	n := int(math.Round(weight * g.cfg.Density))
	if n < 1 {
		return 1
	}
	return n
}

// Sample expands (lat, lng, weight) into PointCount(weight) points. The
// output is a pure function of its arguments.
func (g *Generator) Sample(lat, lng, weight float64) []models.WeightedPoint {
	n := g.PointCount(weight)
	out := make([]models.WeightedPoint, n)

	seed := lat*1000 + lng*1000
	w := weight * g.cfg.WeightScale
	for i := 0; i < n; i++ {
		offsetSeed := seed + float64(i)*0.1
		out[i] = models.WeightedPoint{
			Lat:    lat + (pseudoRandom(offsetSeed)-0.5)*g.cfg.Radius,
			Lng:    lng + (pseudoRandom(offsetSeed+0.5)-0.5)*g.cfg.Radius,
			Weight: w,
		}
	}
	return out
}

// SampleBin is Sample positioned at a location bin
func (g *Generator) SampleBin(bin models.LocationBin, weight float64) []models.WeightedPoint {
	return g.Sample(bin.Lat, bin.Lng, weight)
}

// pseudoRandom returns the fractional part of sin(x)*10000, in [0, 1).
// Deterministic and stateless; not suitable where unpredictability matters.
func pseudoRandom(x float64) float64 {
	v := math.Sin(x) * 10000
	return v - math.Floor(v)
}
