// Package intensity maps raw counts onto bounded heatmap weights.
package intensity

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Scale selects how counts are mapped onto weights
type Scale string

const (
	// Linear suits flat distributions such as city-level bins
	Linear Scale = "linear"
	// Logarithmic suits high-variance distributions such as state aggregates
	Logarithmic Scale = "logarithmic"
)

// LogFloor is the lowest weight the logarithmic scale produces, so sparse
// regions stay visible on the color ramp.
const LogFloor = 0.3

// ErrUnknownScale is returned by ParseScale for unsupported names
var ErrUnknownScale = errors.New("unknown intensity scale")

// ParseScale parses a scale name. The empty string yields def.
func ParseScale(s string, def Scale) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, nil
	case "linear", "lin":
		return Linear, nil
	case "logarithmic", "log", "log10":
		return Logarithmic, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScale, s)
	}
}

// LinearWeight returns min(count/max, 1). A non-positive max is treated as 1.
func LinearWeight(count, max int) float64 {
	if max <= 0 {
		max = 1
	}
	if count <= 0 {
		return 0
	}
	return math.Min(float64(count)/float64(max), 1)
}

// LogWeight normalizes log10(count+1) between log10(min+1) and log10(max+1)
// and remaps the result into [LogFloor, 1].
func LogWeight(count, min, max int) float64 {
	if count < 0 {
		count = 0
	}
	if min < 0 {
		min = 0
	}
	lo := math.Log10(float64(min) + 1)
	hi := math.Log10(float64(max) + 1)

	norm := 1.0
	if hi > lo {
		norm = (math.Log10(float64(count)+1) - lo) / (hi - lo)
		norm = math.Max(0, math.Min(1, norm))
	}
	return LogFloor + norm*(1-LogFloor)
}

// Normalizer carries the observed range of a dataset
type Normalizer struct {
	Scale Scale
	Min   int
	Max   int
}

// NewNormalizer derives the range from counts. An empty dataset gets
// Min 0 / Max 1 so weights never divide by zero.
func NewNormalizer(scale Scale, counts []int) Normalizer {
	n := Normalizer{Scale: scale, Min: 0, Max: 1}
	if len(counts) == 0 {
		return n
	}

	n.Min, n.Max = counts[0], counts[0]
	for _, c := range counts[1:] {
		if c < n.Min {
			n.Min = c
		}
		if c > n.Max {
			n.Max = c
		}
	}
	if n.Max <= 0 {
		n.Max = 1
	}
	return n
}

// Weight maps count onto [0, 1]
func (n Normalizer) Weight(count int) float64 {
	if n.Scale == Logarithmic {
		return LogWeight(count, n.Min, n.Max)
	}
	return LinearWeight(count, n.Max)
}
